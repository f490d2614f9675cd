package engine

import (
	"fmt"
	"strings"

	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/model"
)

const maxNamedQuestions = 3

// logicIndex resolves logic references against current document order.
// Page breaks take no position.
type logicIndex struct {
	questionPos map[string]int // qid -> flat position
	blockPos    map[string]int // block id and bid -> block position
}

func newLogicIndex(s *model.Survey) *logicIndex {
	ix := &logicIndex{
		questionPos: make(map[string]int),
		blockPos:    make(map[string]int),
	}
	n := 0
	for bi, b := range s.Blocks {
		ix.blockPos[b.ID] = bi
		if b.BID != "" {
			ix.blockPos[b.BID] = bi
		}
		for _, q := range b.Questions {
			if isPageBreak(q) {
				continue
			}
			if q.QID != "" {
				ix.questionPos[q.QID] = n
			}
			n++
		}
	}
	return ix
}

// forwardTarget reports whether a skip destination lies strictly after the
// question at (pos, block). Unknown destinations are invalid.
func (ix *logicIndex) forwardTarget(target string, pos, block int) bool {
	switch target {
	case "", model.SkipToNext, model.SkipToEnd:
		return true
	}
	if id, ok := strings.CutPrefix(target, model.BlockTargetPrefix); ok {
		bi, found := ix.blockPos[id]
		return found && bi > block
	}
	if qi, ok := ix.questionPos[target]; ok {
		return qi > pos
	}
	if bi, ok := ix.blockPos[target]; ok {
		return bi > block
	}
	return false
}

// earlierSource reports whether every condition reads a question strictly
// before pos
func (ix *logicIndex) earlierSource(conds []model.Condition, pos int) bool {
	for _, c := range conds {
		if c.QuestionID == "" {
			continue
		}
		qi, ok := ix.questionPos[c.QuestionID]
		if !ok || qi >= pos {
			return false
		}
	}
	return true
}

func (ix *logicIndex) questionValid(q model.Question, pos, block int) bool {
	if l := q.SkipLogic; l != nil {
		switch l.Type {
		case model.SkipPerChoice:
			for _, r := range l.Rules {
				if !ix.forwardTarget(r.SkipTo, pos, block) {
					return false
				}
			}
		default:
			if !ix.forwardTarget(l.SkipTo, pos, block) {
				return false
			}
		}
	}
	if l := q.BranchingLogic; l != nil {
		if !ix.forwardTarget(l.OtherwiseSkipTo, pos, block) {
			return false
		}
		for _, br := range l.Branches {
			if br.ThenSkipToIsConfirmed && !ix.forwardTarget(br.ThenSkipTo, pos, block) {
				return false
			}
			if !ix.earlierSource(br.Conditions, pos) {
				return false
			}
		}
	}
	if l := q.DisplayLogic; l != nil && !ix.earlierSource(l.AllConditions(), pos) {
		return false
	}
	return true
}

// InvalidLogicQuestions lists, in document order, the qids of questions whose
// logic targets a question or block that is not after them, or reads a
// question that is not before them
func InvalidLogicQuestions(s *model.Survey) []string {
	ix := newLogicIndex(s)
	var affected []string
	pos := 0
	for bi, b := range s.Blocks {
		for _, q := range b.Questions {
			if isPageBreak(q) {
				continue
			}
			if !ix.questionValid(q, pos, bi) {
				affected = append(affected, q.QID)
			}
			pos++
		}
	}
	return affected
}

// ValidateLogicAfterMove returns the warning shown after a structural edit
// broke logic ordering, or "" when all logic is still valid. It never
// modifies the survey.
func ValidateLogicAfterMove(s *model.Survey) string {
	affected := InvalidLogicQuestions(s)
	if len(affected) == 0 {
		return ""
	}
	named := affected[:min(len(affected), maxNamedQuestions)]
	msg := "Logic on " + strings.Join(named, ", ")
	if rest := len(affected) - len(named); rest > 0 {
		msg += fmt.Sprintf(" and %d others", rest)
	}
	return msg + " is now invalid. Please review."
}
