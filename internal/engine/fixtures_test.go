package engine

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/idgen"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/model"
)

func newTestEngine() *Engine {
	return New(idgen.NewSequence(1))
}

func question(id string, t model.QuestionType) model.Question {
	q := model.Question{ID: id, Type: t, Text: "text of " + id}
	if t.HasChoices() {
		q.Choices = []model.Choice{
			{ID: id + "_c1", Text: "Yes"},
			{ID: id + "_c2", Text: "No"},
		}
	}
	return q
}

func radio(id string) model.Question {
	return question(id, model.QuestionTypeRadio)
}

func description(id, label string) model.Question {
	q := question(id, model.QuestionTypeDescription)
	q.Label = label
	return q
}

func manualBreak(id string) model.Question {
	return model.Question{ID: id, Type: model.QuestionTypePageBreak, Text: "Page Break"}
}

func block(id string, qs ...model.Question) model.Block {
	if qs == nil {
		qs = []model.Question{}
	}
	return model.Block{ID: id, Title: "Block " + id, Questions: qs}
}

// load normalizes a survey built from blocks through REPLACE_SURVEY
func load(t *testing.T, e *Engine, mode model.PagingMode, blocks ...model.Block) *model.Survey {
	t.Helper()
	s := e.Reduce(nil, ReplaceSurvey{Survey: &model.Survey{
		Title:      "Fixture",
		PagingMode: mode,
		Blocks:     blocks,
	}})
	require.NotNil(t, s)
	return s
}

// standard is b1[q1 q2] b2[q3] b3[q4]
func standard(t *testing.T, e *Engine) *model.Survey {
	t.Helper()
	return load(t, e, model.PagingMultiPerPage,
		block("b1", radio("q1"), radio("q2")),
		block("b2", radio("q3")),
		block("b3", radio("q4")),
	)
}

func blockIDs(s *model.Survey) []string {
	var out []string
	for _, b := range s.Blocks {
		out = append(out, b.ID)
	}
	return out
}

func bids(s *model.Survey) []string {
	var out []string
	for _, b := range s.Blocks {
		out = append(out, b.BID)
	}
	return out
}

// questionIDs lists every question id, page breaks included, in document order
func questionIDs(s *model.Survey) []string {
	var out []string
	for _, b := range s.Blocks {
		for _, q := range b.Questions {
			out = append(out, q.ID)
		}
	}
	return out
}

func qids(s *model.Survey) []string {
	var out []string
	for _, b := range s.Blocks {
		for _, q := range b.Questions {
			if q.Type != model.QuestionTypePageBreak {
				out = append(out, q.QID)
			}
		}
	}
	return out
}

func types(b model.Block) []model.QuestionType {
	var out []model.QuestionType
	for _, q := range b.Questions {
		out = append(out, q.Type)
	}
	return out
}

func mustFind(t *testing.T, s *model.Survey, id string) model.Question {
	t.Helper()
	bi, qi, ok := s.FindQuestion(id)
	require.True(t, ok, "question %s not found", id)
	return s.Blocks[bi].Questions[qi]
}

// requireNumbered checks bids and qids follow document order
func requireNumbered(t *testing.T, s *model.Survey) {
	t.Helper()
	n := 0
	for bi, b := range s.Blocks {
		require.Equal(t, "BL"+strconv.Itoa(bi+1), b.BID)
		for _, q := range b.Questions {
			if q.Type == model.QuestionTypePageBreak {
				require.Empty(t, q.QID)
				continue
			}
			n++
			require.Equal(t, "Q"+strconv.Itoa(n), q.QID)
		}
	}
}

// requireUniqueIDs checks every block, question and choice id appears once
func requireUniqueIDs(t *testing.T, s *model.Survey) {
	t.Helper()
	seen := make(map[string]bool)
	check := func(id string) {
		require.NotEmpty(t, id)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	for _, b := range s.Blocks {
		check(b.ID)
		for _, q := range b.Questions {
			check(q.ID)
			for _, c := range q.Choices {
				check(c.ID)
			}
			for _, c := range q.ScalePoints {
				check(c.ID)
			}
		}
	}
}
