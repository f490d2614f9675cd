package engine

import (
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/idgen"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/model"
)

// duplicateQuestion deep-copies q with fresh ids for the question, its
// choices and its logic entries. References from the question's own logic
// to its choices follow the new choice ids. The qid is left for renumbering.
func (e *Engine) duplicateQuestion(q model.Question) model.Question {
	out := q.Clone()
	prefix := idgen.PrefixQuestion
	if isPageBreak(q) {
		prefix = idgen.PrefixPageBreak
	}
	out.ID = e.ids.NewID(prefix)
	out.QID = ""

	e.reissueChoiceIDs(&out, out.Choices, out.ScalePoints)

	if l := out.BranchingLogic; l != nil {
		for i := range l.Branches {
			l.Branches[i].ID = e.ids.NewID(idgen.PrefixBranch)
			e.freshConditionIDs(l.Branches[i].Conditions)
		}
	}
	if l := out.DisplayLogic; l != nil {
		e.freshConditionIDs(l.Conditions)
		for i := range l.LogicSets {
			l.LogicSets[i].ID = e.ids.NewID(idgen.PrefixLogicSet)
			e.freshConditionIDs(l.LogicSets[i].Conditions)
		}
	}
	if l := out.ChoiceDisplayLogic; l != nil {
		for i := range l.Rules {
			e.freshConditionIDs(l.Rules[i].Conditions)
		}
	}
	return out
}

// reissueChoiceIDs gives every choice in lists a fresh id and points the
// choice-keyed logic of q at the new ids. lists must alias q's own slices.
func (e *Engine) reissueChoiceIDs(q *model.Question, lists ...[]model.Choice) {
	choiceIDs := make(map[string]string)
	for _, list := range lists {
		for i := range list {
			id := e.ids.NewID(idgen.PrefixChoice)
			choiceIDs[list[i].ID] = id
			list[i].ID = id
		}
	}
	if len(choiceIDs) == 0 {
		return
	}
	remap := func(id string) string {
		if n, ok := choiceIDs[id]; ok {
			return n
		}
		return id
	}
	if l := q.SkipLogic; l != nil {
		for i := range l.Rules {
			l.Rules[i].ChoiceID = remap(l.Rules[i].ChoiceID)
		}
	}
	if l := q.ChoiceDisplayLogic; l != nil {
		for i := range l.Rules {
			l.Rules[i].TargetChoiceID = remap(l.Rules[i].TargetChoiceID)
		}
	}
}

func (e *Engine) freshConditionIDs(conds []model.Condition) {
	for i := range conds {
		conds[i].ID = e.ids.NewID(idgen.PrefixCondition)
	}
}

// duplicateBlock copies a block with fresh ids throughout
func (e *Engine) duplicateBlock(b model.Block, labels *labelDeduper) model.Block {
	out := b.Clone()
	out.ID = e.ids.NewID(idgen.PrefixBlock)
	out.BID = ""
	out.Title = b.Title + " (Copy)"
	out.Questions = make([]model.Question, len(b.Questions))
	for i, q := range b.Questions {
		out.Questions[i] = e.duplicateQuestion(q)
		labels.relabel(&out.Questions[i])
	}
	return out
}
