package engine

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownAction is returned when the wire type names no action
var ErrUnknownAction = errors.New("unknown action type")

// Envelope is the wire form of an action
type Envelope struct {
	Type    ActionType      `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MarshalJSON encodes only the value; an unset field is dropped by omitzero
func (f Field[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Value)
}

// UnmarshalJSON marks the field as set, including for an explicit null
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		var zero T
		f.Value = zero
		return nil
	}
	return json.Unmarshal(data, &f.Value)
}

var decoders = map[ActionType]func(json.RawMessage) (Action, error){
	ActionUpdateBlockTitle:    decodeAs[UpdateBlockTitle],
	ActionUpdateBlock:         decodeAs[UpdateBlock],
	ActionAddBlock:            decodeAs[AddBlock],
	ActionDeleteBlock:         decodeAs[DeleteBlock],
	ActionCopyBlock:           decodeAs[CopyBlock],
	ActionReorderBlock:        decodeAs[ReorderBlock],
	ActionMoveBlockUp:         decodeAs[MoveBlockUp],
	ActionMoveBlockDown:       decodeAs[MoveBlockDown],
	ActionAddBlockFromToolbox: decodeAs[AddBlockFromToolbox],
	ActionAddBlockFromAI:      decodeAs[AddBlockFromAI],

	ActionAddQuestion:       decodeAs[AddQuestion],
	ActionUpdateQuestion:    decodeAs[UpdateQuestion],
	ActionDeleteQuestion:    decodeAs[DeleteQuestion],
	ActionCopyQuestion:      decodeAs[CopyQuestion],
	ActionMoveQuestion:      decodeAs[MoveQuestion],
	ActionAddPageBreakAfter: decodeAs[AddPageBreakAfter],
	ActionAddChoice:         decodeAs[AddChoice],
	ActionUpdateChoice:      decodeAs[UpdateChoice],
	ActionDeleteChoice:      decodeAs[DeleteChoice],

	ActionBulkDeleteQuestions:    decodeAs[BulkDeleteQuestions],
	ActionBulkUpdateQuestions:    decodeAs[BulkUpdateQuestions],
	ActionBulkDuplicateQuestions: decodeAs[BulkDuplicateQuestions],
	ActionBulkMoveToNewBlock:     decodeAs[BulkMoveToNewBlock],

	ActionUpdateSurveyTitle:           decodeAs[UpdateSurveyTitle],
	ActionUpdateDisplayTitle:          decodeAs[UpdateDisplayTitle],
	ActionSetPagingMode:               decodeAs[SetPagingMode],
	ActionReplaceSurvey:               decodeAs[ReplaceSurvey],
	ActionRestoreState:                decodeAs[RestoreState],
	ActionSetGlobalAutoAdvance:        decodeAs[SetGlobalAutoAdvance],
	ActionSetLogicValidationMessage:   decodeAs[SetLogicValidationMessage],
	ActionClearLogicValidationMessage: decodeAs[ClearLogicValidationMessage],
}

func decodeAs[T Action](raw json.RawMessage) (Action, error) {
	var a T
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// DecodeAction parses a {"type", "payload"} envelope into a typed action
func DecodeAction(data []byte) (Action, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode action envelope: %w", err)
	}
	return env.Decode()
}

// Decode converts the envelope into a typed action
func (e Envelope) Decode() (Action, error) {
	decode, ok := decoders[e.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, e.Type)
	}
	a, err := decode(e.Payload)
	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", e.Type, err)
	}
	return a, nil
}

// EncodeAction renders an action in its wire form
func EncodeAction(a Action) ([]byte, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", a.Type(), err)
	}
	return json.Marshal(Envelope{Type: a.Type(), Payload: payload})
}
