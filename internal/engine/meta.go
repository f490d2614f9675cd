package engine

import (
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/idgen"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/model"
)

func (e *Engine) reduceMeta(s *model.Survey, a MetaAction) *model.Survey {
	switch act := a.(type) {
	case UpdateSurveyTitle:
		if act.Title == s.Title {
			return s
		}
		out := shallowCopy(s)
		out.Title = act.Title
		return out
	case UpdateDisplayTitle:
		if act.DisplayTitle == s.DisplayTitle {
			return s
		}
		out := shallowCopy(s)
		out.DisplayTitle = act.DisplayTitle
		return out
	case SetPagingMode:
		return e.setPagingMode(s, act.PagingMode)
	case ReplaceSurvey:
		return e.replaceSurvey(s, act.Survey)
	case RestoreState:
		if act.Survey == nil {
			return s
		}
		return act.Survey
	case SetGlobalAutoAdvance:
		return setGlobalAutoAdvance(s, act.Enabled)
	case SetLogicValidationMessage:
		if act.Message == s.LastLogicValidationMessage {
			return s
		}
		out := shallowCopy(s)
		out.LastLogicValidationMessage = act.Message
		return out
	case ClearLogicValidationMessage:
		if s.LastLogicValidationMessage == "" {
			return s
		}
		out := shallowCopy(s)
		out.LastLogicValidationMessage = ""
		return out
	}
	return s
}

func (e *Engine) setPagingMode(s *model.Survey, mode model.PagingMode) *model.Survey {
	if mode != model.PagingOnePerPage && mode != model.PagingMultiPerPage {
		return s
	}
	if mode == s.PagingMode {
		return s
	}
	previous := s.PagingMode
	out := shallowCopy(s)
	out.PagingMode = mode
	return e.normalize(out, previous)
}

func setGlobalAutoAdvance(s *model.Survey, enabled bool) *model.Survey {
	out := shallowCopy(s)
	out.GlobalAutoAdvance = enabled
	for bi := range out.Blocks {
		b := &out.Blocks[bi]
		b.AutoAdvance = enabled
		ownQuestions(b)
		for qi := range b.Questions {
			if b.Questions[qi].Type.IsAutoAdvanceEligible() {
				b.Questions[qi].AutoAdvance = enabled
			}
		}
	}
	return out
}

// replaceSurvey loads externally sourced data. The input is copied, missing
// or duplicate ids are reissued and the result goes through both passes.
func (e *Engine) replaceSurvey(s *model.Survey, in *model.Survey) *model.Survey {
	if in == nil {
		return s
	}
	out := in.Clone()
	if out.Title == "" {
		out.Title = defaultSurveyTitle
	}
	if out.PagingMode != model.PagingOnePerPage && out.PagingMode != model.PagingMultiPerPage {
		out.PagingMode = model.PagingMultiPerPage
	}
	if len(out.Blocks) == 0 {
		out.Blocks = []model.Block{e.newBlock(defaultBlockTitle)}
	}
	e.repairIDs(out)
	return e.normalize(out, "")
}

// repairIDs reissues every empty or already used id in a survey the engine
// owns exclusively
func (e *Engine) repairIDs(s *model.Survey) {
	seen := make(map[string]bool)
	fix := func(id *string, prefix string) {
		if *id == "" || seen[*id] {
			*id = e.ids.NewID(prefix)
		}
		seen[*id] = true
	}
	conditions := func(conds []model.Condition) {
		for i := range conds {
			fix(&conds[i].ID, idgen.PrefixCondition)
		}
	}

	for bi := range s.Blocks {
		b := &s.Blocks[bi]
		fix(&b.ID, idgen.PrefixBlock)
		if b.Questions == nil {
			b.Questions = []model.Question{}
		}
		for qi := range b.Questions {
			q := &b.Questions[qi]
			prefix := idgen.PrefixQuestion
			if isPageBreak(*q) {
				prefix = idgen.PrefixPageBreak
			}
			fix(&q.ID, prefix)
			for ci := range q.Choices {
				fix(&q.Choices[ci].ID, idgen.PrefixChoice)
			}
			for ci := range q.ScalePoints {
				fix(&q.ScalePoints[ci].ID, idgen.PrefixChoice)
			}
			if l := q.BranchingLogic; l != nil {
				for i := range l.Branches {
					fix(&l.Branches[i].ID, idgen.PrefixBranch)
					conditions(l.Branches[i].Conditions)
				}
			}
			if l := q.DisplayLogic; l != nil {
				conditions(l.Conditions)
				for i := range l.LogicSets {
					fix(&l.LogicSets[i].ID, idgen.PrefixLogicSet)
					conditions(l.LogicSets[i].Conditions)
				}
			}
			if l := q.ChoiceDisplayLogic; l != nil {
				for i := range l.Rules {
					conditions(l.Rules[i].Conditions)
				}
			}
		}
	}
}
