package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"survey-builder-service/internal/app"
	"survey-builder-service/internal/builder"
	"survey-builder-service/internal/domain"
	"survey-builder-service/internal/infra/memory"
)

type stateMessage struct {
	Type    string       `json:"type"`
	Payload app.Snapshot `json:"payload"`
}

func TestWebSocketEditingFlow(t *testing.T) {
	server := httptest.NewServer(NewRouter(newTestService(), nil))
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws?sessionId=draft-1"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Initial state from the subscription.
	initial := readState(t, conn, "state")
	if len(initial.Payload.Questions) != 0 {
		t.Fatalf("expected empty session, got %+v", initial.Payload.Questions)
	}

	send(t, conn, map[string]any{"type": "addQuestion"})
	added := readState(t, conn, "state")
	if len(added.Payload.Questions) != 1 {
		t.Fatalf("expected one question, got %+v", added.Payload.Questions)
	}
	qid := added.Payload.Questions[0].ID
	if added.Payload.SelectedID != qid {
		t.Fatalf("expected new question selected, got %q", added.Payload.SelectedID)
	}

	// Draft question blocks the next add: a state with the notice plus an error, in either order.
	send(t, conn, map[string]any{"type": "addQuestion"})
	var sawNotice, sawError bool
	for i := 0; i < 2; i++ {
		msg := readState(t, conn, "")
		switch msg.Type {
		case "state":
			sawNotice = msg.Payload.Notice != nil
		case "error":
			sawError = true
		}
	}
	if !sawNotice || !sawError {
		t.Fatalf("expected notice state and error, got notice=%v error=%v", sawNotice, sawError)
	}

	send(t, conn, map[string]any{
		"type":    "changeType",
		"payload": map[string]any{"questionId": qid, "type": "multipleChoice"},
	})
	changed := readState(t, conn, "state")
	if len(changed.Payload.Questions[0].Options) != 2 {
		t.Fatalf("expected two blank options, got %+v", changed.Payload.Questions[0].Options)
	}

	send(t, conn, map[string]any{"type": "teleport"})
	readState(t, conn, "error")

	// A watched session survives DELETE.
	req, _ := http.NewRequest(http.MethodDelete, server.URL+"/sessions/draft-1", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", resp.StatusCode)
	}
	resp, err = http.Get(server.URL + "/sessions/draft-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected subscribed session kept, got %d", resp.StatusCode)
	}
}

func TestWebSocketRequiresSessionID(t *testing.T) {
	server := httptest.NewServer(NewRouter(newTestService(), nil))
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(u, nil)
	if err == nil {
		t.Fatalf("expected dial to fail without sessionId")
	}
	if resp == nil || resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %+v", resp)
	}
}

func send(t *testing.T, conn *websocket.Conn, msg map[string]any) {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func readState(t *testing.T, conn *websocket.Conn, expect string) stateMessage {
	t.Helper()
	var msg stateMessage
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s", expect, msg.Type)
	}
	return msg
}

func newTestService() *app.EditorService {
	templates := memory.NewTemplateRepository(memory.NewStaticTemplateLoader(sampleTemplates()), time.Minute)
	return app.NewEditorService(memory.NewSessionStore(), templates, builder.NewSequenceGenerator(), app.SessionOptions{})
}

func sampleTemplates() map[string]domain.Template {
	return map[string]domain.Template{
		"onboarding": {
			ID:    "onboarding",
			Title: "Onboarding",
			Questions: []domain.Question{
				{ID: "t1", Label: "Your name", Type: domain.QuestionTypeText, Options: []domain.Option{}},
				{
					ID:    "t2",
					Label: "Team",
					Type:  domain.QuestionTypeMultipleChoice,
					Options: []domain.Option{
						{ID: "a", Text: "Platform"},
						{ID: "b", Text: "Product"},
					},
				},
			},
		},
	}
}
