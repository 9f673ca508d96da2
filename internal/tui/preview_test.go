package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"survey-builder-service/internal/domain"
)

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{ID: "q1", Label: "Your name", Type: domain.QuestionTypeText, Required: true, Options: []domain.Option{}},
		{
			ID:    "q2",
			Label: "Favourite colour",
			Type:  domain.QuestionTypeMultipleChoice,
			Options: []domain.Option{
				{ID: "o1", Text: "Red"},
				{ID: "o2", Text: "Blue"},
			},
		},
	}
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestAnsweringEveryQuestionSubmits(t *testing.T) {
	m := NewModel("Survey", sampleQuestions(), nil)

	m, _ = press(t, m, typed("Ada"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.current != 1 {
		t.Fatalf("expected to advance to the choice question, at %d", m.current)
	}
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.Submitted() || !isQuit(cmd) {
		t.Fatalf("expected submit and quit, submitted=%v", m.Submitted())
	}
	got := m.Responses()
	if text, ok := got["q1"].Text(); !ok || text != "Ada" {
		t.Fatalf("unexpected text answer %+v", got["q1"])
	}
	if choice, ok := got["q2"].Choice(); !ok || choice != (domain.Choice{OptionID: "o2", OptionText: "Blue"}) {
		t.Fatalf("unexpected choice answer %+v", got["q2"])
	}
}

func TestRequiredQuestionBlocksSubmit(t *testing.T) {
	m := NewModel("Survey", sampleQuestions(), nil)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	if m.Submitted() || isQuit(cmd) {
		t.Fatalf("expected submit to be refused")
	}
	if m.current != 0 || !strings.Contains(m.err, "Your name") {
		t.Fatalf("expected focus back on the required question, current=%d err=%q", m.current, m.err)
	}
}

func TestOptionalQuestionMaySkip(t *testing.T) {
	m := NewModel("Survey", sampleQuestions(), nil)

	m, cmd := press(t, m, typed("Ada"), tea.KeyMsg{Type: tea.KeyCtrlS})
	if !m.Submitted() || !isQuit(cmd) {
		t.Fatalf("expected submit without the optional answer")
	}
	if _, ok := m.Responses().Lookup("q2"); ok {
		t.Fatalf("optional question should stay unanswered")
	}
}

func TestClearAnswer(t *testing.T) {
	m := NewModel("Survey", sampleQuestions(), nil)

	m, _ = press(t, m,
		tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	if _, ok := m.Responses().Lookup("q2"); !ok {
		t.Fatalf("expected q2 answered")
	}
	// The refused submit jumped back to the required name question.
	if m.current != 0 {
		t.Fatalf("expected focus on q1, got %d", m.current)
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyCtrlX})
	if _, ok := m.Responses().Lookup("q2"); ok {
		t.Fatalf("expected q2 cleared")
	}
}

func TestSeedResponsesRestoreAndFilter(t *testing.T) {
	seed := domain.Responses{
		"q1":    domain.TextResponse("Grace"),
		"q2":    domain.ChoiceResponse(domain.Option{ID: "o2", Text: "Blue"}),
		"ghost": domain.TextResponse("nobody asked"),
	}
	m := NewModel("Survey", sampleQuestions(), seed)
	if m.input.Value() != "Grace" {
		t.Fatalf("expected seeded text in input, got %q", m.input.Value())
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.option != 1 {
		t.Fatalf("expected cursor on the seeded option, got %d", m.option)
	}
	if _, ok := m.Responses().Lookup("ghost"); ok {
		t.Fatalf("expected unknown question dropped")
	}

	mismatched := domain.Responses{"q1": domain.ChoiceResponse(domain.Option{ID: "o1", Text: "Red"})}
	if _, ok := NewModel("Survey", sampleQuestions(), mismatched).Responses().Lookup("q1"); ok {
		t.Fatalf("expected mismatched shape dropped")
	}
}

func TestQuitAborts(t *testing.T) {
	m, cmd := press(t, NewModel("Survey", sampleQuestions(), nil), tea.KeyMsg{Type: tea.KeyEsc})
	if !m.Aborted() || m.Submitted() || !isQuit(cmd) {
		t.Fatalf("expected abort and quit")
	}
}

func TestViewShowsQuestions(t *testing.T) {
	m := NewModel("Team survey", sampleQuestions(), nil)
	view := m.View()
	for _, want := range []string{"Team survey", "Your name", "Favourite colour", "unanswered"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
