package engine

import (
	"slices"
	"strconv"

	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/idgen"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/model"
)

const (
	defaultQuestionText = "Click to write the question text"
	defaultChoiceCount  = 3
	defaultScalePoints  = 5
)

func (e *Engine) reduceQuestion(s *model.Survey, a QuestionAction) *model.Survey {
	switch act := a.(type) {
	case AddQuestion:
		return e.addQuestion(s, act)
	case UpdateQuestion:
		return e.updateQuestion(s, act)
	case DeleteQuestion:
		return e.deleteQuestion(s, act)
	case CopyQuestion:
		return e.copyQuestion(s, act)
	case MoveQuestion:
		return e.moveQuestion(s, act)
	case AddPageBreakAfter:
		return e.addPageBreakAfter(s, act)
	case AddChoice:
		return e.addChoice(s, act)
	case UpdateChoice:
		return e.updateChoice(s, act)
	case DeleteChoice:
		return e.deleteChoice(s, act)
	}
	return s
}

// newQuestion builds a question of type t with the defaults of its type,
// inheriting navigation settings from the block it lands in
func (e *Engine) newQuestion(t model.QuestionType, b *model.Block) model.Question {
	if t == model.QuestionTypePageBreak {
		return model.Question{
			ID:   e.ids.NewID(idgen.PrefixPageBreak),
			Type: t,
			Text: "Page Break",
		}
	}
	q := model.Question{
		ID:             e.ids.NewID(idgen.PrefixQuestion),
		Type:           t,
		Text:           defaultQuestionText,
		HideBackButton: b.HideBackButton,
	}
	if t == model.QuestionTypeDescription {
		q.Text = ""
	}
	if t.IsAutoAdvanceEligible() {
		q.AutoAdvance = b.AutoAdvance
	}
	e.seedChoices(&q)
	return q
}

// seedChoices gives a choice based question its default answer list
func (e *Engine) seedChoices(q *model.Question) {
	if !q.Type.HasChoices() || len(q.Choices) > 0 {
		return
	}
	label := "Choice "
	if q.Type == model.QuestionTypeChoiceGrid {
		label = "Row "
	}
	q.Choices = make([]model.Choice, defaultChoiceCount)
	for i := range q.Choices {
		q.Choices[i] = model.Choice{ID: e.ids.NewID(idgen.PrefixChoice), Text: label + strconv.Itoa(i+1)}
	}
	if q.Type == model.QuestionTypeChoiceGrid && len(q.ScalePoints) == 0 {
		q.ScalePoints = make([]model.Choice, defaultScalePoints)
		for i := range q.ScalePoints {
			q.ScalePoints[i] = model.Choice{ID: e.ids.NewID(idgen.PrefixChoice), Text: strconv.Itoa(i + 1)}
		}
	}
}

func (e *Engine) addQuestion(s *model.Survey, a AddQuestion) *model.Survey {
	if a.QuestionType == "" {
		return s
	}
	bi, qi := -1, -1
	if b, q, ok := s.FindQuestion(a.TargetQuestionID); ok && a.TargetQuestionID != "" {
		bi, qi = b, q
	} else if b := s.BlockIndex(a.TargetBlockID); b >= 0 {
		bi, qi = b, len(s.Blocks[b].Questions)
	} else {
		bi = len(s.Blocks) - 1
		qi = len(s.Blocks[bi].Questions)
	}

	out := shallowCopy(s)
	b := &out.Blocks[bi]
	q := e.newQuestion(a.QuestionType, b)
	b.Questions = slices.Insert(slices.Clone(b.Questions), qi, q)
	return e.normalize(out, "")
}

func (e *Engine) updateQuestion(s *model.Survey, a UpdateQuestion) *model.Survey {
	u := a.Updates
	if u.empty() {
		return s
	}
	bi, qi, ok := s.FindQuestion(a.QuestionID)
	if !ok {
		return s
	}
	out := shallowCopy(s)
	b := &out.Blocks[bi]
	ownQuestions(b)
	e.applyQuestionUpdate(&b.Questions[qi], u)
	if u.Type.Set || u.Label.Set {
		return e.normalize(out, "")
	}
	return out
}

func (e *Engine) deleteQuestion(s *model.Survey, a DeleteQuestion) *model.Survey {
	bi, qi, ok := s.FindQuestion(a.QuestionID)
	if !ok {
		return s
	}
	out := shallowCopy(s)
	b := &out.Blocks[bi]
	b.Questions = slices.Delete(slices.Clone(b.Questions), qi, qi+1)
	return e.normalize(out, "")
}

func (e *Engine) copyQuestion(s *model.Survey, a CopyQuestion) *model.Survey {
	bi, qi, ok := s.FindQuestion(a.QuestionID)
	if !ok {
		return s
	}
	copied := e.duplicateQuestion(s.Blocks[bi].Questions[qi])
	newLabelDeduper(s).relabel(&copied)

	out := shallowCopy(s)
	b := &out.Blocks[bi]
	b.Questions = slices.Insert(slices.Clone(b.Questions), qi+1, copied)
	return e.normalize(out, "")
}

// moveQuestion places the question before TargetQuestionID, or at the end
// of TargetBlockID when no target question is given
func (e *Engine) moveQuestion(s *model.Survey, a MoveQuestion) *model.Survey {
	if a.QuestionID == a.TargetQuestionID {
		return s
	}
	fromB, fromQ, ok := s.FindQuestion(a.QuestionID)
	if !ok {
		return s
	}
	if a.TargetQuestionID != "" {
		if _, _, ok := s.FindQuestion(a.TargetQuestionID); !ok {
			return s
		}
	} else if s.BlockIndex(a.TargetBlockID) < 0 {
		return s
	}

	out := shallowCopy(s)
	moved := out.Blocks[fromB].Questions[fromQ]
	out.Blocks[fromB].Questions = slices.Delete(slices.Clone(out.Blocks[fromB].Questions), fromQ, fromQ+1)

	var toB, toQ int
	if a.TargetQuestionID != "" {
		toB, toQ, _ = out.FindQuestion(a.TargetQuestionID)
	} else {
		toB = out.BlockIndex(a.TargetBlockID)
		toQ = len(out.Blocks[toB].Questions)
	}
	if toB == fromB && toQ == fromQ {
		return s
	}
	target := &out.Blocks[toB]
	if toB != fromB {
		target.Questions = slices.Clone(target.Questions)
	}
	target.Questions = slices.Insert(target.Questions, toQ, moved)
	return e.normalize(out, "")
}

func (e *Engine) addPageBreakAfter(s *model.Survey, a AddPageBreakAfter) *model.Survey {
	bi, qi, ok := s.FindQuestion(a.QuestionID)
	if !ok {
		return s
	}
	qs := s.Blocks[bi].Questions
	if isPageBreak(qs[qi]) {
		return s
	}
	if next := qi + 1; next < len(qs) && isPageBreak(qs[next]) && !qs[next].IsAutomatic {
		return s
	}
	out := shallowCopy(s)
	b := &out.Blocks[bi]
	b.Questions = slices.Insert(slices.Clone(b.Questions), qi+1, e.newQuestion(model.QuestionTypePageBreak, b))
	return e.normalize(out, "")
}

// editQuestion applies fn to a private copy of the question; fn reports
// whether it changed anything
func (e *Engine) editQuestion(s *model.Survey, questionID string, fn func(q *model.Question) bool) *model.Survey {
	bi, qi, ok := s.FindQuestion(questionID)
	if !ok {
		return s
	}
	q := s.Blocks[bi].Questions[qi]
	if !fn(&q) {
		return s
	}
	out := shallowCopy(s)
	b := &out.Blocks[bi]
	ownQuestions(b)
	b.Questions[qi] = q
	return out
}

func (e *Engine) addChoice(s *model.Survey, a AddChoice) *model.Survey {
	return e.editQuestion(s, a.QuestionID, func(q *model.Question) bool {
		text := a.Text
		if text == "" {
			text = "Choice " + strconv.Itoa(len(q.Choices)+1)
		}
		ownChoices(q)
		q.Choices = append(q.Choices, model.Choice{ID: e.ids.NewID(idgen.PrefixChoice), Text: text})
		return true
	})
}

func (e *Engine) updateChoice(s *model.Survey, a UpdateChoice) *model.Survey {
	return e.editQuestion(s, a.QuestionID, func(q *model.Question) bool {
		ci := choiceIndex(q.Choices, a.ChoiceID)
		if ci < 0 {
			return false
		}
		u := a.Updates
		if !u.Text.Set && !u.Visible.Set && !u.AllowTextEntry.Set {
			return false
		}
		ownChoices(q)
		c := &q.Choices[ci]
		if u.Text.Set {
			c.Text = u.Text.Value
		}
		if u.Visible.Set {
			c.Visible = nil
			if v := u.Visible.Value; v != nil {
				vis := *v
				c.Visible = &vis
			}
		}
		if u.AllowTextEntry.Set {
			c.AllowTextEntry = u.AllowTextEntry.Value
		}
		return true
	})
}

func (e *Engine) deleteChoice(s *model.Survey, a DeleteChoice) *model.Survey {
	return e.editQuestion(s, a.QuestionID, func(q *model.Question) bool {
		ci := choiceIndex(q.Choices, a.ChoiceID)
		if ci < 0 {
			return false
		}
		q.Choices = slices.Delete(slices.Clone(q.Choices), ci, ci+1)
		return true
	})
}

func choiceIndex(choices []model.Choice, id string) int {
	return slices.IndexFunc(choices, func(c model.Choice) bool { return c.ID == id })
}

func (u QuestionUpdate) empty() bool {
	return !u.Type.Set && !u.Text.Set && !u.Label.Set &&
		!u.Choices.Set && !u.ScalePoints.Set &&
		!u.SkipLogic.Set && !u.BranchingLogic.Set && !u.DisplayLogic.Set &&
		!u.ChoiceDisplayLogic.Set && !u.ChoiceEliminationLogic.Set &&
		!u.IsHidden.Set && !u.ForceResponse.Set && !u.HideBackButton.Set && !u.AutoAdvance.Set
}

// applyQuestionUpdate merges u into q. Slices and logic are copied from the
// update so the action value never aliases survey state.
func (e *Engine) applyQuestionUpdate(q *model.Question, u QuestionUpdate) {
	if u.Type.Set && u.Type.Value != q.Type {
		q.Type = u.Type.Value
		e.seedChoices(q)
	}
	if u.Text.Set {
		q.Text = u.Text.Value
	}
	if u.Label.Set {
		q.Label = u.Label.Value
	}
	if u.Choices.Set {
		q.Choices = cloneChoiceList(u.Choices.Value)
	}
	if u.ScalePoints.Set {
		q.ScalePoints = cloneChoiceList(u.ScalePoints.Value)
	}
	if u.SkipLogic.Set {
		q.SkipLogic = u.SkipLogic.Value.Clone()
	}
	if u.BranchingLogic.Set {
		q.BranchingLogic = u.BranchingLogic.Value.Clone()
	}
	if u.DisplayLogic.Set {
		q.DisplayLogic = u.DisplayLogic.Value.Clone()
	}
	if u.ChoiceDisplayLogic.Set {
		q.ChoiceDisplayLogic = u.ChoiceDisplayLogic.Value.Clone()
	}
	if u.ChoiceEliminationLogic.Set {
		q.ChoiceEliminationLogic = u.ChoiceEliminationLogic.Value.Clone()
	}
	if u.IsHidden.Set {
		q.IsHidden = u.IsHidden.Value
	}
	if u.ForceResponse.Set {
		q.ForceResponse = u.ForceResponse.Value
	}
	if u.HideBackButton.Set {
		q.HideBackButton = u.HideBackButton.Value
	}
	if u.AutoAdvance.Set {
		q.AutoAdvance = u.AutoAdvance.Value
	}
}

func cloneChoiceList(in []model.Choice) []model.Choice {
	if in == nil {
		return nil
	}
	out := make([]model.Choice, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
