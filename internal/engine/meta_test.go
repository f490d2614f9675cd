package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/model"
)

func TestTitles(t *testing.T) {
	e := newTestEngine()
	s := standard(t, e)

	out := e.Reduce(s, UpdateSurveyTitle{Title: "Customer Pulse"})
	out = e.Reduce(out, UpdateDisplayTitle{DisplayTitle: "Tell us how we did"})

	assert.Equal(t, "Customer Pulse", out.Title)
	assert.Equal(t, "Tell us how we did", out.DisplayTitle)
	assert.Equal(t, "Fixture", s.Title)
}

func TestSetPagingMode_InsertsAndRemovesAutomaticBreaks(t *testing.T) {
	e := newTestEngine()
	s := load(t, e, model.PagingMultiPerPage,
		block("b1", radio("q1"), description("d1", ""), radio("q2"), manualBreak("pb1"), radio("q3")),
	)

	one := e.Reduce(s, SetPagingMode{PagingMode: model.PagingOnePerPage})
	assert.Equal(t, []model.QuestionType{
		model.QuestionTypeRadio,
		model.QuestionTypeDescription,
		model.QuestionTypePageBreak,
		model.QuestionTypeRadio,
		model.QuestionTypePageBreak,
		model.QuestionTypeRadio,
	}, types(one.Blocks[0]))
	assert.True(t, one.Blocks[0].Questions[2].IsAutomatic)
	assert.Equal(t, "pb1", one.Blocks[0].Questions[4].ID)
	requireNumbered(t, one)

	multi := e.Reduce(one, SetPagingMode{PagingMode: model.PagingMultiPerPage})
	assert.Equal(t, questionIDs(s), questionIDs(multi))
}

func TestSetPagingMode_FreshBreakIdsAfterModeSwitch(t *testing.T) {
	e := newTestEngine()
	s := standard(t, e)

	first := e.Reduce(s, SetPagingMode{PagingMode: model.PagingOnePerPage})
	back := e.Reduce(e.Reduce(first, SetPagingMode{PagingMode: model.PagingMultiPerPage}),
		SetPagingMode{PagingMode: model.PagingOnePerPage})

	assert.NotEqual(t, first.Blocks[0].Questions[1].ID, back.Blocks[0].Questions[1].ID)
}

func TestSetGlobalAutoAdvance_CascadesToEligibleQuestions(t *testing.T) {
	e := newTestEngine()
	s := load(t, e, model.PagingMultiPerPage,
		block("b1", radio("q1"), question("t1", model.QuestionTypeTextEntry)),
		block("b2", question("g1", model.QuestionTypeChoiceGrid), question("c1", model.QuestionTypeCheckbox)),
	)

	on := e.Reduce(s, SetGlobalAutoAdvance{Enabled: true})

	assert.True(t, on.GlobalAutoAdvance)
	assert.True(t, on.Blocks[0].AutoAdvance)
	assert.True(t, on.Blocks[1].AutoAdvance)
	assert.True(t, mustFind(t, on, "q1").AutoAdvance)
	assert.True(t, mustFind(t, on, "g1").AutoAdvance)
	assert.False(t, mustFind(t, on, "t1").AutoAdvance)
	assert.False(t, mustFind(t, on, "c1").AutoAdvance)

	off := e.Reduce(on, SetGlobalAutoAdvance{Enabled: false})
	assert.False(t, mustFind(t, off, "q1").AutoAdvance)
	assert.False(t, off.Blocks[1].AutoAdvance)
}

func TestLogicValidationMessage(t *testing.T) {
	e := newTestEngine()
	s := standard(t, e)
	msg := "Logic on Q3 is now invalid. Please review."

	set := e.Reduce(s, SetLogicValidationMessage{Message: msg})
	assert.Equal(t, msg, set.LastLogicValidationMessage)
	assert.Same(t, set, e.Reduce(set, SetLogicValidationMessage{Message: msg}))

	cleared := e.Reduce(set, ClearLogicValidationMessage{})
	assert.Empty(t, cleared.LastLogicValidationMessage)
}

func TestRestoreState_ReturnsPriorStateAsIs(t *testing.T) {
	e := newTestEngine()
	prior := standard(t, e)
	current := e.Reduce(prior, DeleteBlock{BlockID: "b1"})

	// restore must not renumber a stale bid
	stale := prior.Clone()
	stale.Blocks[0].BID = "BL9"

	assert.Same(t, prior, e.Reduce(current, RestoreState{Survey: prior}))
	assert.Equal(t, "BL9", e.Reduce(current, RestoreState{Survey: stale}).Blocks[0].BID)
}

func TestReplaceSurvey_RepairsImportedData(t *testing.T) {
	e := newTestEngine()
	in := &model.Survey{
		Blocks: []model.Block{
			{ID: "b1", Questions: []model.Question{radio("q1"), radio("q1"), {Type: model.QuestionTypeTextEntry}}},
			{ID: "b1"},
		},
	}
	snapshot := in.Clone()

	out := e.Reduce(nil, ReplaceSurvey{Survey: in})

	assert.Equal(t, snapshot, in)
	assert.Equal(t, "Untitled Survey", out.Title)
	assert.Equal(t, model.PagingMultiPerPage, out.PagingMode)
	requireUniqueIDs(t, out)
	requireNumbered(t, out)
	assert.Equal(t, "b1", out.Blocks[0].ID)
	assert.Equal(t, "q1", out.Blocks[0].Questions[0].ID)
	assert.NotNil(t, out.Blocks[1].Questions)
}

func TestReplaceSurvey_EmptyGetsDefaultBlock(t *testing.T) {
	e := newTestEngine()

	out := e.Reduce(nil, ReplaceSurvey{Survey: &model.Survey{Title: "Empty", PagingMode: model.PagingOnePerPage}})

	require.Len(t, out.Blocks, 1)
	assert.Equal(t, "Default Question Block", out.Blocks[0].Title)
	assert.Equal(t, model.PagingOnePerPage, out.PagingMode)
}

func TestReplaceSurvey_RoundTrip(t *testing.T) {
	e := newTestEngine()
	s := load(t, e, model.PagingOnePerPage,
		block("b1", description("d1", ""), radio("q1"), radio("q2"), manualBreak("pb1"), radio("q3")),
		block("b2", question("g1", model.QuestionTypeChoiceGrid)),
	)
	s = e.Reduce(s, UpdateQuestion{QuestionID: "q3", Updates: QuestionUpdate{
		DisplayLogic: With(&model.DisplayLogic{
			Operator:   model.LogicAnd,
			Conditions: []model.Condition{{ID: "cond_a", QuestionID: "Q2", Operator: "equals", Value: "Yes"}},
		}),
	}})

	exported, err := json.Marshal(s)
	require.NoError(t, err)
	var imported model.Survey
	require.NoError(t, json.Unmarshal(exported, &imported))

	out := e.Reduce(s, ReplaceSurvey{Survey: &imported})

	assert.Equal(t, s, out)
}
