package service

import "errors"

var (
	ErrSurveyNotFound   = errors.New("survey not found")
	ErrBlockNotFound    = errors.New("block not found")
	ErrNothingToUndo    = errors.New("nothing to undo")
	ErrNothingToRedo    = errors.New("nothing to redo")
	ErrActionNotAllowed = errors.New("action cannot be dispatched by clients")
)
