package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/model"
)

func TestBulkDuplicate_BatchesCopiesAfterLastMatch(t *testing.T) {
	e := newTestEngine()
	s := load(t, e, model.PagingMultiPerPage,
		block("b1", radio("q1"), radio("q2"), radio("q3"), radio("q4")),
	)

	out := e.Reduce(s, BulkDuplicateQuestions{QuestionIDs: []string{"q3", "q1"}})

	qs := out.Blocks[0].Questions
	require.Len(t, qs, 6)
	assert.Equal(t, "q1", qs[0].ID)
	assert.Equal(t, "q2", qs[1].ID)
	assert.Equal(t, "q3", qs[2].ID)
	assert.Equal(t, "text of q1", qs[3].Text)
	assert.Equal(t, "text of q3", qs[4].Text)
	assert.Equal(t, "q4", qs[5].ID)
	assert.NotContains(t, []string{"q1", "q3"}, qs[3].ID)
	requireNumbered(t, out)
	requireUniqueIDs(t, out)
}

func TestBulkDuplicate_AcrossBlocksLandsInLastBlock(t *testing.T) {
	e := newTestEngine()
	s := standard(t, e)

	out := e.Reduce(s, BulkDuplicateQuestions{QuestionIDs: []string{"q1", "q3"}})

	assert.Len(t, out.Blocks[0].Questions, 2)
	qs := out.Blocks[1].Questions
	require.Len(t, qs, 3)
	assert.Equal(t, "q3", qs[0].ID)
	assert.Equal(t, "text of q1", qs[1].Text)
	assert.Equal(t, "text of q3", qs[2].Text)
}

func TestBulkDelete_PrunesEmptiedBlocks(t *testing.T) {
	e := newTestEngine()
	s := standard(t, e)

	out := e.Reduce(s, BulkDeleteQuestions{QuestionIDs: []string{"q2", "q3"}})

	assert.Equal(t, []string{"b1", "b3"}, blockIDs(out))
	assert.Equal(t, []string{"q1", "q4"}, questionIDs(out))
	assert.Equal(t, []string{"Q1", "Q2"}, qids(out))
}

func TestBulkDelete_KeepsOneBlockWhenEverythingGoes(t *testing.T) {
	e := newTestEngine()
	s := standard(t, e)

	out := e.Reduce(s, BulkDeleteQuestions{QuestionIDs: []string{"q1", "q2", "q3", "q4"}})

	require.Len(t, out.Blocks, 1)
	assert.Equal(t, "b1", out.Blocks[0].ID)
	assert.Empty(t, out.Blocks[0].Questions)
	assert.Equal(t, "BL1", out.Blocks[0].BID)
}

func TestBulkDelete_LeavesUntouchedEmptyBlocks(t *testing.T) {
	e := newTestEngine()
	s := load(t, e, model.PagingMultiPerPage,
		block("b1", radio("q1")),
		block("b2"),
		block("b3", radio("q3")),
	)

	out := e.Reduce(s, BulkDeleteQuestions{QuestionIDs: []string{"q3"}})

	assert.Equal(t, []string{"b1", "b2"}, blockIDs(out))
}

func TestBulkDelete_DropsOrphanedAutomaticBreaks(t *testing.T) {
	e := newTestEngine()
	s := e.Reduce(standard(t, e), SetPagingMode{PagingMode: model.PagingOnePerPage})
	require.Len(t, s.Blocks[0].Questions, 3)

	out := e.Reduce(s, BulkDeleteQuestions{QuestionIDs: []string{"q2"}})

	assert.Equal(t, []string{"q1"}, questionIDs(&model.Survey{Blocks: out.Blocks[:1]}))
}

func TestBulkDelete_PrunesBlockLeftWithOnlyABreak(t *testing.T) {
	e := newTestEngine()
	s := load(t, e, model.PagingMultiPerPage,
		block("b1", radio("q1"), manualBreak("pb1")),
		block("b2", radio("q2")),
	)

	out := e.Reduce(s, BulkDeleteQuestions{QuestionIDs: []string{"q1"}})

	assert.Equal(t, []string{"b2"}, blockIDs(out))
}

func TestBulkUpdate_SharedChoicesGetDistinctIDs(t *testing.T) {
	e := newTestEngine()
	s := standard(t, e)
	choices := []model.Choice{{ID: "c_yes", Text: "Yes"}, {ID: "c_no", Text: "No"}}

	out := e.Reduce(s, BulkUpdateQuestions{
		QuestionIDs: []string{"q1", "q2", "q4"},
		Updates: QuestionUpdate{
			Choices: With(choices),
			SkipLogic: With(&model.SkipLogic{Type: model.SkipPerChoice, Rules: []model.SkipRule{
				{ChoiceID: "c_no", SkipTo: model.SkipToEnd},
			}}),
		},
	})

	requireUniqueIDs(t, out)
	assert.Equal(t, choices, mustFind(t, out, "q1").Choices)
	for _, id := range []string{"q1", "q2", "q4"} {
		q := mustFind(t, out, id)
		require.Len(t, q.Choices, 2, id)
		assert.Equal(t, "Yes", q.Choices[0].Text, id)
		assert.Equal(t, q.Choices[1].ID, q.SkipLogic.Rules[0].ChoiceID, id)
	}
	assert.NotEqual(t, "c_yes", mustFind(t, out, "q2").Choices[0].ID)
	assert.Equal(t, "c_no", choices[1].ID)
}

func TestBulkUpdate_OnlyTargetsChange(t *testing.T) {
	e := newTestEngine()
	s := standard(t, e)

	out := e.Reduce(s, BulkUpdateQuestions{
		QuestionIDs: []string{"q1", "q4"},
		Updates:     QuestionUpdate{IsHidden: With(true)},
	})

	assert.True(t, mustFind(t, out, "q1").IsHidden)
	assert.True(t, mustFind(t, out, "q4").IsHidden)
	assert.False(t, mustFind(t, out, "q2").IsHidden)
	assert.False(t, mustFind(t, s, "q1").IsHidden)
	assert.Equal(t, blockIDs(s), blockIDs(out))
	assert.Equal(t, questionIDs(s), questionIDs(out))
	assert.Equal(t, qids(s), qids(out))
	assert.Equal(t, mustFind(t, s, "q1").Choices, mustFind(t, out, "q1").Choices)
}

func TestBulkMoveToNewBlock_AfterFirstMatchBlock(t *testing.T) {
	e := newTestEngine()
	s := standard(t, e)

	out := e.Reduce(s, BulkMoveToNewBlock{QuestionIDs: []string{"q4", "q2"}})

	require.Len(t, out.Blocks, 3)
	assert.Equal(t, "b1", out.Blocks[0].ID)
	assert.Equal(t, "New Block", out.Blocks[1].Title)
	assert.Equal(t, "b2", out.Blocks[2].ID)
	assert.Equal(t, []string{"q1", "q2", "q4", "q3"}, questionIDs(out))
	assert.Equal(t, []string{"BL1", "BL2", "BL3"}, bids(out))
	requireNumbered(t, out)
}

func TestBulkMoveToNewBlock_PrunesEvenTheOnlySourceBlock(t *testing.T) {
	e := newTestEngine()
	s := load(t, e, model.PagingMultiPerPage, block("b1", radio("q1"), radio("q2")))

	out := e.Reduce(s, BulkMoveToNewBlock{QuestionIDs: []string{"q1", "q2"}})

	require.Len(t, out.Blocks, 1)
	assert.NotEqual(t, "b1", out.Blocks[0].ID)
	assert.Equal(t, []string{"q1", "q2"}, questionIDs(out))
}
