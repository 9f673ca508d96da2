package domain

import "errors"

var (
	// ErrSessionNotFound is returned when an editing session has not been opened.
	ErrSessionNotFound = errors.New("editing session not found")
	// ErrTemplateNotFound indicates the seed template could not be loaded.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrQuestionNotFound indicates a response targets a question that is not in the list.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrOptionNotFound indicates a choice response names an option the question does not have.
	ErrOptionNotFound = errors.New("option not found")
	// ErrIncompleteQuestions is the policy rejection for adding a question while another is still a draft.
	ErrIncompleteQuestions = errors.New("please complete all questions before adding a new one")
	// ErrUnknownAction indicates an inbound action name outside the supported set.
	ErrUnknownAction = errors.New("unknown action")
	// ErrInvalidResponse indicates a response whose shape does not match its question type.
	ErrInvalidResponse = errors.New("response does not match question type")
	// ErrInvalidDocument indicates a survey document that cannot be loaded.
	ErrInvalidDocument = errors.New("invalid survey document")
)
