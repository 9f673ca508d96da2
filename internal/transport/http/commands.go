package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"survey-builder-service/internal/app"
	"survey-builder-service/internal/builder"
	"survey-builder-service/internal/domain"
)

var errBadPayload = errors.New("bad payload")

// inboundMessage is the envelope clients send over the websocket and to POST /sessions/{id}/commands.
type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type questionPayload struct {
	QuestionID string `json:"questionId"`
}

type updateQuestionPayload struct {
	QuestionID string  `json:"questionId"`
	Label      *string `json:"label"`
	Required   *bool   `json:"required"`
}

type changeTypePayload struct {
	QuestionID string              `json:"questionId"`
	Type       domain.QuestionType `json:"type"`
}

type optionPayload struct {
	QuestionID string `json:"questionId"`
	OptionID   string `json:"optionId"`
	Text       string `json:"text"`
}

type respondPayload struct {
	QuestionID string          `json:"questionId"`
	Value      domain.Response `json:"value"`
}

// decodeAction maps a wire message onto the closed action set. The second
// return is false for messages that are not list mutations.
func decodeAction(msg inboundMessage) (builder.Action, bool, error) {
	switch msg.Type {
	case "addQuestion":
		return builder.AddQuestion{}, true, nil
	case "removeQuestion", "moveUp", "moveDown":
		var p questionPayload
		if err := unmarshalPayload(msg, &p); err != nil {
			return nil, true, err
		}
		switch msg.Type {
		case "removeQuestion":
			return builder.RemoveQuestion{ID: p.QuestionID}, true, nil
		case "moveUp":
			return builder.MoveUp{ID: p.QuestionID}, true, nil
		default:
			return builder.MoveDown{ID: p.QuestionID}, true, nil
		}
	case "updateQuestion":
		var p updateQuestionPayload
		if err := unmarshalPayload(msg, &p); err != nil {
			return nil, true, err
		}
		return builder.UpdateQuestion{ID: p.QuestionID, Patch: builder.QuestionPatch{Label: p.Label, Required: p.Required}}, true, nil
	case "changeType":
		var p changeTypePayload
		if err := unmarshalPayload(msg, &p); err != nil {
			return nil, true, err
		}
		if !p.Type.Valid() {
			return nil, true, fmt.Errorf("%w: unsupported question type %q", errBadPayload, p.Type)
		}
		return builder.ChangeType{ID: p.QuestionID, Type: p.Type}, true, nil
	case "addOption", "updateOption", "removeOption":
		var p optionPayload
		if err := unmarshalPayload(msg, &p); err != nil {
			return nil, true, err
		}
		switch msg.Type {
		case "addOption":
			// Option ids are always generated server side.
			return builder.AddOption{QuestionID: p.QuestionID}, true, nil
		case "updateOption":
			return builder.UpdateOption{QuestionID: p.QuestionID, OptionID: p.OptionID, Text: p.Text}, true, nil
		default:
			return builder.RemoveOption{QuestionID: p.QuestionID, OptionID: p.OptionID}, true, nil
		}
	default:
		return nil, false, nil
	}
}

// execute runs one inbound message against the session.
func execute(ctx context.Context, service *app.EditorService, sessionID string, msg inboundMessage) (app.Snapshot, error) {
	action, isAction, err := decodeAction(msg)
	if err != nil {
		return app.Snapshot{}, err
	}
	if isAction {
		return service.Dispatch(ctx, sessionID, action)
	}

	switch msg.Type {
	case "select":
		var p questionPayload
		if err := unmarshalPayload(msg, &p); err != nil {
			return app.Snapshot{}, err
		}
		return service.Select(ctx, sessionID, p.QuestionID)
	case "respond":
		var p respondPayload
		if err := unmarshalPayload(msg, &p); err != nil {
			return app.Snapshot{}, err
		}
		return service.Respond(ctx, sessionID, p.QuestionID, p.Value)
	case "clearResponse":
		var p questionPayload
		if err := unmarshalPayload(msg, &p); err != nil {
			return app.Snapshot{}, err
		}
		return service.ClearResponse(ctx, sessionID, p.QuestionID)
	case "dismissNotice":
		return service.DismissNotice(ctx, sessionID)
	default:
		return app.Snapshot{}, fmt.Errorf("%w: %q", domain.ErrUnknownAction, msg.Type)
	}
}

func unmarshalPayload(msg inboundMessage, v any) error {
	if len(msg.Payload) == 0 {
		return fmt.Errorf("%w: missing %s payload", errBadPayload, msg.Type)
	}
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return fmt.Errorf("%w: invalid %s payload: %v", errBadPayload, msg.Type, err)
	}
	return nil
}
