package engine

import "github.com/TamyresLucas/New-Survey-builder-sub002/internal/model"

// ActionType names an edit on the wire
type ActionType string

// Block actions
const (
	ActionUpdateBlockTitle    ActionType = "UPDATE_BLOCK_TITLE"
	ActionUpdateBlock         ActionType = "UPDATE_BLOCK"
	ActionAddBlock            ActionType = "ADD_BLOCK"
	ActionDeleteBlock         ActionType = "DELETE_BLOCK"
	ActionCopyBlock           ActionType = "COPY_BLOCK"
	ActionReorderBlock        ActionType = "REORDER_BLOCK"
	ActionMoveBlockUp         ActionType = "MOVE_BLOCK_UP"
	ActionMoveBlockDown       ActionType = "MOVE_BLOCK_DOWN"
	ActionAddBlockFromToolbox ActionType = "ADD_BLOCK_FROM_TOOLBOX"
	ActionAddBlockFromAI      ActionType = "ADD_BLOCK_FROM_AI"
)

// Question actions
const (
	ActionAddQuestion       ActionType = "ADD_QUESTION"
	ActionUpdateQuestion    ActionType = "UPDATE_QUESTION"
	ActionDeleteQuestion    ActionType = "DELETE_QUESTION"
	ActionCopyQuestion      ActionType = "COPY_QUESTION"
	ActionMoveQuestion      ActionType = "MOVE_QUESTION"
	ActionAddPageBreakAfter ActionType = "ADD_PAGE_BREAK_AFTER_QUESTION"
	ActionAddChoice         ActionType = "ADD_CHOICE"
	ActionUpdateChoice      ActionType = "UPDATE_CHOICE"
	ActionDeleteChoice      ActionType = "DELETE_CHOICE"
)

// Bulk actions
const (
	ActionBulkDeleteQuestions    ActionType = "BULK_DELETE_QUESTIONS"
	ActionBulkUpdateQuestions    ActionType = "BULK_UPDATE_QUESTIONS"
	ActionBulkDuplicateQuestions ActionType = "BULK_DUPLICATE_QUESTIONS"
	ActionBulkMoveToNewBlock     ActionType = "BULK_MOVE_TO_NEW_BLOCK"
)

// Meta actions
const (
	ActionUpdateSurveyTitle           ActionType = "UPDATE_SURVEY_TITLE"
	ActionUpdateDisplayTitle          ActionType = "UPDATE_DISPLAY_TITLE"
	ActionSetPagingMode               ActionType = "SET_PAGING_MODE"
	ActionReplaceSurvey               ActionType = "REPLACE_SURVEY"
	ActionRestoreState                ActionType = "RESTORE_STATE"
	ActionSetGlobalAutoAdvance        ActionType = "SET_GLOBAL_AUTOADVANCE"
	ActionSetLogicValidationMessage   ActionType = "SET_LOGIC_VALIDATION_MESSAGE"
	ActionClearLogicValidationMessage ActionType = "CLEAR_LOGIC_VALIDATION_MESSAGE"
)

// Action is an edit applied by the engine. Every action belongs to exactly
// one of BlockAction, QuestionAction, BulkAction or MetaAction.
type Action interface {
	Type() ActionType
}

// BlockAction is handled by the block reducer
type BlockAction interface {
	Action
	blockAction()
}

// QuestionAction is handled by the question reducer
type QuestionAction interface {
	Action
	questionAction()
}

// BulkAction is handled by the bulk reducer
type BulkAction interface {
	Action
	bulkAction()
}

// MetaAction is handled by the meta reducer
type MetaAction interface {
	Action
	metaAction()
}

// BlockPosition places a new block relative to an existing one
type BlockPosition string

const (
	PositionAbove BlockPosition = "above"
	PositionBelow BlockPosition = "below"
)

// Field is an optional value in a partial update. Set separates
// "change to the zero value" from "leave unchanged".
type Field[T any] struct {
	Set   bool
	Value T
}

// With returns a Field that sets v
func With[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// IsZero lets `omitzero` drop unset fields when encoding
func (f Field[T]) IsZero() bool {
	return !f.Set
}

// BlockUpdate is the partial update of UPDATE_BLOCK
type BlockUpdate struct {
	Title                 Field[string]               `json:"title,omitzero"`
	AutomaticPageBreaks   Field[bool]                 `json:"automaticPageBreaks,omitzero"`
	LoopingEnabled        Field[bool]                 `json:"loopingEnabled,omitzero"`
	AutoAdvance           Field[bool]                 `json:"autoAdvance,omitzero"`
	HideBackButton        Field[bool]                 `json:"hideBackButton,omitzero"`
	ContinueTo            Field[string]               `json:"continueTo,omitzero"`
	QuestionRandomization Field[*model.Randomization] `json:"questionRandomization,omitzero"`
}

// QuestionUpdate is the partial update of UPDATE_QUESTION and BULK_UPDATE_QUESTIONS
type QuestionUpdate struct {
	Type                   Field[model.QuestionType]            `json:"type,omitzero"`
	Text                   Field[string]                        `json:"text,omitzero"`
	Label                  Field[string]                        `json:"label,omitzero"`
	Choices                Field[[]model.Choice]                `json:"choices,omitzero"`
	ScalePoints            Field[[]model.Choice]                `json:"scalePoints,omitzero"`
	SkipLogic              Field[*model.SkipLogic]              `json:"skipLogic,omitzero"`
	BranchingLogic         Field[*model.BranchingLogic]         `json:"branchingLogic,omitzero"`
	DisplayLogic           Field[*model.DisplayLogic]           `json:"displayLogic,omitzero"`
	ChoiceDisplayLogic     Field[*model.ChoiceDisplayLogic]     `json:"choiceDisplayLogic,omitzero"`
	ChoiceEliminationLogic Field[*model.ChoiceEliminationLogic] `json:"choiceEliminationLogic,omitzero"`
	IsHidden               Field[bool]                          `json:"isHidden,omitzero"`
	ForceResponse          Field[bool]                          `json:"forceResponse,omitzero"`
	HideBackButton         Field[bool]                          `json:"hideBackButton,omitzero"`
	AutoAdvance            Field[bool]                          `json:"autoAdvance,omitzero"`
}

// ChoiceUpdate is the partial update of UPDATE_CHOICE
type ChoiceUpdate struct {
	Text           Field[string] `json:"text,omitzero"`
	Visible        Field[*bool]  `json:"visible,omitzero"`
	AllowTextEntry Field[bool]   `json:"allowTextEntry,omitzero"`
}

type (
	UpdateBlockTitle struct {
		BlockID string `json:"blockId"`
		Title   string `json:"title"`
	}
	UpdateBlock struct {
		BlockID string      `json:"blockId"`
		Updates BlockUpdate `json:"updates"`
	}
	AddBlock struct {
		BlockID  string        `json:"blockId"`
		Position BlockPosition `json:"position"`
	}
	DeleteBlock struct {
		BlockID string `json:"blockId"`
	}
	CopyBlock struct {
		BlockID string `json:"blockId"`
	}
	// ReorderBlock moves a block before TargetBlockID, or to the end when empty
	ReorderBlock struct {
		DraggedBlockID string `json:"draggedBlockId"`
		TargetBlockID  string `json:"targetBlockId,omitempty"`
	}
	MoveBlockUp struct {
		BlockID string `json:"blockId"`
	}
	MoveBlockDown struct {
		BlockID string `json:"blockId"`
	}
	AddBlockFromToolbox struct {
		TargetBlockID string `json:"targetBlockId,omitempty"`
	}
	// AddBlockFromAI inserts after the block whose display bid matches
	AddBlockFromAI struct {
		Title          string `json:"title"`
		InsertAfterBID string `json:"insertAfterBlockId,omitempty"`
	}
)

func (UpdateBlockTitle) Type() ActionType    { return ActionUpdateBlockTitle }
func (UpdateBlock) Type() ActionType         { return ActionUpdateBlock }
func (AddBlock) Type() ActionType            { return ActionAddBlock }
func (DeleteBlock) Type() ActionType         { return ActionDeleteBlock }
func (CopyBlock) Type() ActionType           { return ActionCopyBlock }
func (ReorderBlock) Type() ActionType        { return ActionReorderBlock }
func (MoveBlockUp) Type() ActionType         { return ActionMoveBlockUp }
func (MoveBlockDown) Type() ActionType       { return ActionMoveBlockDown }
func (AddBlockFromToolbox) Type() ActionType { return ActionAddBlockFromToolbox }
func (AddBlockFromAI) Type() ActionType      { return ActionAddBlockFromAI }

func (UpdateBlockTitle) blockAction()    {}
func (UpdateBlock) blockAction()         {}
func (AddBlock) blockAction()            {}
func (DeleteBlock) blockAction()         {}
func (CopyBlock) blockAction()           {}
func (ReorderBlock) blockAction()        {}
func (MoveBlockUp) blockAction()         {}
func (MoveBlockDown) blockAction()       {}
func (AddBlockFromToolbox) blockAction() {}
func (AddBlockFromAI) blockAction()      {}

type (
	// AddQuestion inserts before TargetQuestionID, else at the end of
	// TargetBlockID, else at the end of the last block
	AddQuestion struct {
		QuestionType     model.QuestionType `json:"questionType"`
		TargetQuestionID string             `json:"targetQuestionId,omitempty"`
		TargetBlockID    string             `json:"targetBlockId,omitempty"`
	}
	UpdateQuestion struct {
		QuestionID string         `json:"questionId"`
		Updates    QuestionUpdate `json:"updates"`
	}
	DeleteQuestion struct {
		QuestionID string `json:"questionId"`
	}
	CopyQuestion struct {
		QuestionID string `json:"questionId"`
	}
	MoveQuestion struct {
		QuestionID       string `json:"questionId"`
		TargetQuestionID string `json:"targetQuestionId,omitempty"`
		TargetBlockID    string `json:"targetBlockId,omitempty"`
	}
	AddPageBreakAfter struct {
		QuestionID string `json:"questionId"`
	}
	AddChoice struct {
		QuestionID string `json:"questionId"`
		Text       string `json:"text"`
	}
	UpdateChoice struct {
		QuestionID string       `json:"questionId"`
		ChoiceID   string       `json:"choiceId"`
		Updates    ChoiceUpdate `json:"updates"`
	}
	DeleteChoice struct {
		QuestionID string `json:"questionId"`
		ChoiceID   string `json:"choiceId"`
	}
)

func (AddQuestion) Type() ActionType       { return ActionAddQuestion }
func (UpdateQuestion) Type() ActionType    { return ActionUpdateQuestion }
func (DeleteQuestion) Type() ActionType    { return ActionDeleteQuestion }
func (CopyQuestion) Type() ActionType      { return ActionCopyQuestion }
func (MoveQuestion) Type() ActionType      { return ActionMoveQuestion }
func (AddPageBreakAfter) Type() ActionType { return ActionAddPageBreakAfter }
func (AddChoice) Type() ActionType         { return ActionAddChoice }
func (UpdateChoice) Type() ActionType      { return ActionUpdateChoice }
func (DeleteChoice) Type() ActionType      { return ActionDeleteChoice }

func (AddQuestion) questionAction()       {}
func (UpdateQuestion) questionAction()    {}
func (DeleteQuestion) questionAction()    {}
func (CopyQuestion) questionAction()      {}
func (MoveQuestion) questionAction()      {}
func (AddPageBreakAfter) questionAction() {}
func (AddChoice) questionAction()         {}
func (UpdateChoice) questionAction()      {}
func (DeleteChoice) questionAction()      {}

type (
	BulkDeleteQuestions struct {
		QuestionIDs []string `json:"questionIds"`
	}
	BulkUpdateQuestions struct {
		QuestionIDs []string       `json:"questionIds"`
		Updates     QuestionUpdate `json:"updates"`
	}
	BulkDuplicateQuestions struct {
		QuestionIDs []string `json:"questionIds"`
	}
	BulkMoveToNewBlock struct {
		QuestionIDs []string `json:"questionIds"`
	}
)

func (BulkDeleteQuestions) Type() ActionType    { return ActionBulkDeleteQuestions }
func (BulkUpdateQuestions) Type() ActionType    { return ActionBulkUpdateQuestions }
func (BulkDuplicateQuestions) Type() ActionType { return ActionBulkDuplicateQuestions }
func (BulkMoveToNewBlock) Type() ActionType     { return ActionBulkMoveToNewBlock }

func (BulkDeleteQuestions) bulkAction()    {}
func (BulkUpdateQuestions) bulkAction()    {}
func (BulkDuplicateQuestions) bulkAction() {}
func (BulkMoveToNewBlock) bulkAction()     {}

type (
	UpdateSurveyTitle struct {
		Title string `json:"title"`
	}
	UpdateDisplayTitle struct {
		DisplayTitle string `json:"displayTitle"`
	}
	SetPagingMode struct {
		PagingMode model.PagingMode `json:"pagingMode"`
	}
	// ReplaceSurvey loads external data and normalizes it
	ReplaceSurvey struct {
		Survey *model.Survey `json:"survey"`
	}
	// RestoreState swaps in a prior engine output as is (undo/redo)
	RestoreState struct {
		Survey *model.Survey `json:"survey"`
	}
	SetGlobalAutoAdvance struct {
		Enabled bool `json:"enabled"`
	}
	SetLogicValidationMessage struct {
		Message string `json:"message"`
	}
	ClearLogicValidationMessage struct{}
)

func (UpdateSurveyTitle) Type() ActionType           { return ActionUpdateSurveyTitle }
func (UpdateDisplayTitle) Type() ActionType          { return ActionUpdateDisplayTitle }
func (SetPagingMode) Type() ActionType               { return ActionSetPagingMode }
func (ReplaceSurvey) Type() ActionType               { return ActionReplaceSurvey }
func (RestoreState) Type() ActionType                { return ActionRestoreState }
func (SetGlobalAutoAdvance) Type() ActionType        { return ActionSetGlobalAutoAdvance }
func (SetLogicValidationMessage) Type() ActionType   { return ActionSetLogicValidationMessage }
func (ClearLogicValidationMessage) Type() ActionType { return ActionClearLogicValidationMessage }

func (UpdateSurveyTitle) metaAction()           {}
func (UpdateDisplayTitle) metaAction()          {}
func (SetPagingMode) metaAction()               {}
func (ReplaceSurvey) metaAction()               {}
func (RestoreState) metaAction()                {}
func (SetGlobalAutoAdvance) metaAction()        {}
func (SetLogicValidationMessage) metaAction()   {}
func (ClearLogicValidationMessage) metaAction() {}

// ChangesOrder reports whether an action can insert, move or remove
// questions and blocks. Any of these shifts qids and bids, so previously
// valid logic may start pointing at itself or backward.
func ChangesOrder(a Action) bool {
	switch a.(type) {
	case AddBlock, AddBlockFromToolbox, AddBlockFromAI, CopyBlock,
		ReorderBlock, MoveBlockUp, MoveBlockDown, DeleteBlock,
		AddQuestion, CopyQuestion, MoveQuestion, DeleteQuestion,
		BulkDuplicateQuestions, BulkDeleteQuestions, BulkMoveToNewBlock:
		return true
	}
	return false
}
