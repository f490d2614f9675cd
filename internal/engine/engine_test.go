package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/model"
)

func TestNewSurvey_HasOneNumberedBlock(t *testing.T) {
	e := newTestEngine()

	s := e.NewSurvey("")

	assert.Equal(t, "Untitled Survey", s.Title)
	assert.Equal(t, model.PagingMultiPerPage, s.PagingMode)
	require.Len(t, s.Blocks, 1)
	assert.Equal(t, "BL1", s.Blocks[0].BID)
	assert.Equal(t, "Default Question Block", s.Blocks[0].Title)
	assert.Empty(t, s.Blocks[0].Questions)
}

func TestReduce_MissingTargetsReturnSameState(t *testing.T) {
	e := newTestEngine()
	s := standard(t, e)

	actions := []Action{
		UpdateBlockTitle{BlockID: "missing", Title: "x"},
		UpdateBlock{BlockID: "missing", Updates: BlockUpdate{Title: With("x")}},
		UpdateBlock{BlockID: "b1"},
		AddBlock{BlockID: "missing", Position: PositionBelow},
		DeleteBlock{BlockID: "missing"},
		CopyBlock{BlockID: "missing"},
		ReorderBlock{DraggedBlockID: "missing", TargetBlockID: "b1"},
		ReorderBlock{DraggedBlockID: "b1", TargetBlockID: "b1"},
		ReorderBlock{DraggedBlockID: "b3"},
		MoveBlockUp{BlockID: "b1"},
		MoveBlockDown{BlockID: "b3"},
		MoveBlockUp{BlockID: "missing"},
		UpdateQuestion{QuestionID: "missing", Updates: QuestionUpdate{Text: With("x")}},
		UpdateQuestion{QuestionID: "q1"},
		DeleteQuestion{QuestionID: "missing"},
		CopyQuestion{QuestionID: "missing"},
		MoveQuestion{QuestionID: "missing", TargetBlockID: "b1"},
		MoveQuestion{QuestionID: "q1", TargetQuestionID: "missing"},
		MoveQuestion{QuestionID: "q1", TargetBlockID: "missing"},
		MoveQuestion{QuestionID: "q1", TargetQuestionID: "q2"},
		AddPageBreakAfter{QuestionID: "missing"},
		AddChoice{QuestionID: "missing"},
		UpdateChoice{QuestionID: "q1", ChoiceID: "missing", Updates: ChoiceUpdate{Text: With("x")}},
		DeleteChoice{QuestionID: "q1", ChoiceID: "missing"},
		BulkDeleteQuestions{QuestionIDs: []string{"missing"}},
		BulkDeleteQuestions{},
		BulkUpdateQuestions{QuestionIDs: []string{"missing"}, Updates: QuestionUpdate{IsHidden: With(true)}},
		BulkDuplicateQuestions{QuestionIDs: []string{"missing"}},
		BulkMoveToNewBlock{QuestionIDs: []string{"missing"}},
		UpdateSurveyTitle{Title: s.Title},
		SetPagingMode{PagingMode: model.PagingMultiPerPage},
		SetPagingMode{PagingMode: "sideways"},
		ReplaceSurvey{},
		RestoreState{},
		ClearLogicValidationMessage{},
	}
	for _, a := range actions {
		assert.Same(t, s, e.Reduce(s, a), "%s should be a no-op", a.Type())
	}
}

func TestReduce_NilSurveyOnlyAcceptsLoads(t *testing.T) {
	e := newTestEngine()

	assert.Nil(t, e.Reduce(nil, DeleteBlock{BlockID: "b1"}))
	assert.Nil(t, e.Reduce(nil, UpdateSurveyTitle{Title: "x"}))

	s := e.Reduce(nil, ReplaceSurvey{Survey: &model.Survey{Title: "Imported"}})
	require.NotNil(t, s)
	assert.Len(t, s.Blocks, 1)
}

func TestReduce_NeverMutatesInput(t *testing.T) {
	e := newTestEngine()
	s := standard(t, e)
	s = e.Reduce(s, UpdateQuestion{QuestionID: "q2", Updates: QuestionUpdate{
		BranchingLogic: With(&model.BranchingLogic{IsConfirmed: true, OtherwiseSkipTo: model.SkipToNext}),
	}})
	before := s.Clone()

	actions := []Action{
		UpdateBlock{BlockID: "b1", Updates: BlockUpdate{
			HideBackButton:      With(true),
			ContinueTo:          With("block:b3"),
			AutomaticPageBreaks: With(true),
		}},
		CopyBlock{BlockID: "b1"},
		DeleteBlock{BlockID: "b2"},
		MoveBlockDown{BlockID: "b1"},
		UpdateQuestion{QuestionID: "q1", Updates: QuestionUpdate{Text: With("changed")}},
		AddChoice{QuestionID: "q1", Text: "Maybe"},
		UpdateChoice{QuestionID: "q1", ChoiceID: "q1_c1", Updates: ChoiceUpdate{Text: With("Sure")}},
		DeleteChoice{QuestionID: "q1", ChoiceID: "q1_c2"},
		MoveQuestion{QuestionID: "q4", TargetQuestionID: "q1"},
		BulkUpdateQuestions{QuestionIDs: []string{"q1", "q3"}, Updates: QuestionUpdate{ForceResponse: With(true)}},
		BulkDuplicateQuestions{QuestionIDs: []string{"q1", "q3"}},
		BulkMoveToNewBlock{QuestionIDs: []string{"q2", "q4"}},
		BulkDeleteQuestions{QuestionIDs: []string{"q1", "q2", "q3", "q4"}},
		SetPagingMode{PagingMode: model.PagingOnePerPage},
		SetGlobalAutoAdvance{Enabled: true},
	}
	for _, a := range actions {
		out := e.Reduce(s, a)
		require.NotSame(t, s, out, "%s should change the survey", a.Type())
		require.Equal(t, before, s, "%s mutated its input", a.Type())
	}
}

func TestReduce_StructuralActionsKeepInvariants(t *testing.T) {
	e := newTestEngine()
	s := standard(t, e)

	steps := []Action{
		SetPagingMode{PagingMode: model.PagingOnePerPage},
		AddQuestion{QuestionType: model.QuestionTypeCheckbox, TargetBlockID: "b2"},
		CopyBlock{BlockID: "b2"},
		AddPageBreakAfter{QuestionID: "q1"},
		MoveQuestion{QuestionID: "q4", TargetQuestionID: "q2"},
		BulkDuplicateQuestions{QuestionIDs: []string{"q1", "q4"}},
		ReorderBlock{DraggedBlockID: "b3", TargetBlockID: "b1"},
		BulkMoveToNewBlock{QuestionIDs: []string{"q3", "q2"}},
		SetPagingMode{PagingMode: model.PagingMultiPerPage},
		DeleteBlock{BlockID: "b1"},
	}
	for _, a := range steps {
		s = e.Reduce(s, a)
		requireNumbered(t, s)
		requireUniqueIDs(t, s)
		for _, b := range s.Blocks {
			for i := 1; i < len(b.Questions); i++ {
				require.False(t, isPageBreak(b.Questions[i-1]) && isPageBreak(b.Questions[i]),
					"consecutive page breaks after %s", a.Type())
			}
		}
		assert.Equal(t, s, ApplyPagingRules(s, e.ids, ""), "stale breaks after %s", a.Type())
	}
}
