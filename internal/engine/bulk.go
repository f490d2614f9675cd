package engine

import (
	"slices"

	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/model"
)

func (e *Engine) reduceBulk(s *model.Survey, a BulkAction) *model.Survey {
	switch act := a.(type) {
	case BulkDeleteQuestions:
		return e.bulkDelete(s, idSet(act.QuestionIDs))
	case BulkUpdateQuestions:
		return e.bulkUpdate(s, idSet(act.QuestionIDs), act.Updates)
	case BulkDuplicateQuestions:
		return e.bulkDuplicate(s, idSet(act.QuestionIDs))
	case BulkMoveToNewBlock:
		return e.bulkMoveToNewBlock(s, idSet(act.QuestionIDs))
	}
	return s
}

// extract splits b's questions into those kept and those whose id is in ids
func extract(b model.Block, ids map[string]bool) (kept, taken []model.Question) {
	for _, q := range b.Questions {
		if ids[q.ID] {
			taken = append(taken, q)
		} else {
			kept = append(kept, q)
		}
	}
	return kept, taken
}

// bulkDelete removes the questions and prunes blocks it empties, keeping
// the first such block when nothing else would remain
func (e *Engine) bulkDelete(s *model.Survey, ids map[string]bool) *model.Survey {
	if len(ids) == 0 {
		return s
	}
	blocks := make([]model.Block, 0, len(s.Blocks))
	var firstEmptied *model.Block
	removed := false
	for _, b := range s.Blocks {
		kept, taken := extract(b, ids)
		if len(taken) == 0 {
			blocks = append(blocks, b)
			continue
		}
		removed = true
		b.Questions = kept
		if b.ContentCount() == 0 {
			if firstEmptied == nil {
				b.Questions = []model.Question{}
				firstEmptied = &b
			}
			continue
		}
		blocks = append(blocks, b)
	}
	if !removed {
		return s
	}
	if len(blocks) == 0 {
		blocks = append(blocks, *firstEmptied)
	}
	out := shallowCopy(s)
	out.Blocks = blocks
	return e.normalize(out, "")
}

// bulkUpdate merges the same update into every matched question. Only a
// type change reruns the passes since nothing else is structural.
func (e *Engine) bulkUpdate(s *model.Survey, ids map[string]bool, u QuestionUpdate) *model.Survey {
	if len(ids) == 0 || u.empty() {
		return s
	}
	out := shallowCopy(s)
	matched := false
	for bi := range out.Blocks {
		b := &out.Blocks[bi]
		owned := false
		for qi := range b.Questions {
			if !ids[b.Questions[qi].ID] {
				continue
			}
			if !owned {
				ownQuestions(b)
				owned = true
			}
			q := &b.Questions[qi]
			e.applyQuestionUpdate(q, u)
			if matched {
				e.reissueSharedChoices(q, u)
			}
			matched = true
		}
	}
	if !matched {
		return s
	}
	if u.Type.Set || u.Label.Set {
		return e.normalize(out, "")
	}
	return out
}

// reissueSharedChoices renumbers the choice lists an update copied onto q,
// so questions after the first match do not share choice ids
func (e *Engine) reissueSharedChoices(q *model.Question, u QuestionUpdate) {
	var lists [][]model.Choice
	if u.Choices.Set {
		lists = append(lists, q.Choices)
	}
	if u.ScalePoints.Set {
		lists = append(lists, q.ScalePoints)
	}
	if len(lists) == 0 {
		return
	}
	// logic the update left alone is still shared with the previous state
	q.SkipLogic = q.SkipLogic.Clone()
	q.ChoiceDisplayLogic = q.ChoiceDisplayLogic.Clone()
	e.reissueChoiceIDs(q, lists...)
}

// bulkDuplicate inserts copies of every matched question, in document
// order, as one run right after the last matched original
func (e *Engine) bulkDuplicate(s *model.Survey, ids map[string]bool) *model.Survey {
	if len(ids) == 0 {
		return s
	}
	var originals []model.Question
	lastB, lastQ := -1, -1
	for bi, b := range s.Blocks {
		for qi, q := range b.Questions {
			if ids[q.ID] {
				originals = append(originals, q)
				lastB, lastQ = bi, qi
			}
		}
	}
	if len(originals) == 0 {
		return s
	}

	labels := newLabelDeduper(s)
	copies := make([]model.Question, len(originals))
	for i, q := range originals {
		copies[i] = e.duplicateQuestion(q)
		labels.relabel(&copies[i])
	}

	out := shallowCopy(s)
	b := &out.Blocks[lastB]
	b.Questions = slices.Insert(slices.Clone(b.Questions), lastQ+1, copies...)
	return e.normalize(out, "")
}

// bulkMoveToNewBlock gathers the matched questions into one new block placed
// after the block of the first match. Every block it empties is pruned.
func (e *Engine) bulkMoveToNewBlock(s *model.Survey, ids map[string]bool) *model.Survey {
	if len(ids) == 0 {
		return s
	}
	var moved []model.Question
	firstB := -1
	sources := make([]model.Block, len(s.Blocks))
	touched := make([]bool, len(s.Blocks))
	for bi, b := range s.Blocks {
		kept, taken := extract(b, ids)
		if len(taken) > 0 {
			if firstB < 0 {
				firstB = bi
			}
			moved = append(moved, taken...)
			b.Questions = kept
			if b.Questions == nil {
				b.Questions = []model.Question{}
			}
			touched[bi] = true
		}
		sources[bi] = b
	}
	if firstB < 0 {
		return s
	}

	created := e.newBlock(newBlockTitle)
	created.Questions = moved

	blocks := make([]model.Block, 0, len(s.Blocks)+1)
	for bi, b := range sources {
		if !touched[bi] || b.ContentCount() > 0 {
			blocks = append(blocks, b)
		}
		if bi == firstB {
			blocks = append(blocks, created)
		}
	}
	out := shallowCopy(s)
	out.Blocks = blocks
	return e.normalize(out, "")
}
