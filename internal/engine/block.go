package engine

import (
	"slices"

	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/model"
)

func (e *Engine) reduceBlock(s *model.Survey, a BlockAction) *model.Survey {
	switch act := a.(type) {
	case UpdateBlockTitle:
		return e.updateBlockTitle(s, act)
	case UpdateBlock:
		return e.updateBlock(s, act)
	case AddBlock:
		return e.addBlock(s, act)
	case DeleteBlock:
		return e.deleteBlock(s, act)
	case CopyBlock:
		return e.copyBlock(s, act)
	case ReorderBlock:
		return e.reorderBlock(s, act)
	case MoveBlockUp:
		return e.moveBlock(s, act.BlockID, -1)
	case MoveBlockDown:
		return e.moveBlock(s, act.BlockID, 1)
	case AddBlockFromToolbox:
		return e.addBlockFromToolbox(s, act)
	case AddBlockFromAI:
		return e.addBlockFromAI(s, act)
	}
	return s
}

func (e *Engine) updateBlockTitle(s *model.Survey, a UpdateBlockTitle) *model.Survey {
	i := s.BlockIndex(a.BlockID)
	if i < 0 {
		return s
	}
	out := shallowCopy(s)
	out.Blocks[i].Title = a.Title
	return out
}

func (e *Engine) updateBlock(s *model.Survey, a UpdateBlock) *model.Survey {
	i := s.BlockIndex(a.BlockID)
	if i < 0 || a.Updates == (BlockUpdate{}) {
		return s
	}
	u := a.Updates
	out := shallowCopy(s)
	b := &out.Blocks[i]

	if u.Title.Set {
		b.Title = u.Title.Value
	}
	if u.LoopingEnabled.Set {
		b.LoopingEnabled = u.LoopingEnabled.Value
	}
	if u.QuestionRandomization.Set {
		b.QuestionRandomization = nil
		if r := u.QuestionRandomization.Value; r != nil {
			rc := *r
			b.QuestionRandomization = &rc
		}
	}
	if u.AutoAdvance.Set {
		b.AutoAdvance = u.AutoAdvance.Value
		// one block opting out breaks "every block auto-advances"
		if !u.AutoAdvance.Value {
			out.GlobalAutoAdvance = false
		}
	}
	if u.HideBackButton.Set {
		b.HideBackButton = u.HideBackButton.Value
		ownQuestions(b)
		for qi := range b.Questions {
			b.Questions[qi].HideBackButton = u.HideBackButton.Value
		}
	}
	if u.ContinueTo.Set {
		b.ContinueTo = u.ContinueTo.Value
		syncOtherwisePath(b)
	}
	if u.AutomaticPageBreaks.Set {
		b.AutomaticPageBreaks = u.AutomaticPageBreaks.Value
		return e.normalize(out, "")
	}
	return out
}

// syncOtherwisePath keeps the otherwise path of the last question's
// confirmed branching logic equal to the block's continue-to target.
func syncOtherwisePath(b *model.Block) {
	last := b.LastContentQuestion()
	if last < 0 {
		return
	}
	bl := b.Questions[last].BranchingLogic
	if bl == nil || !bl.IsConfirmed {
		return
	}
	ownQuestions(b)
	synced := bl.Clone()
	synced.OtherwiseSkipTo = b.ContinueTo
	synced.OtherwiseIsConfirmed = true
	b.Questions[last].BranchingLogic = synced
}

func (e *Engine) addBlock(s *model.Survey, a AddBlock) *model.Survey {
	i := s.BlockIndex(a.BlockID)
	if i < 0 {
		return s
	}
	if a.Position != PositionAbove {
		i++
	}
	out := shallowCopy(s)
	out.Blocks = slices.Insert(out.Blocks, i, e.newBlock(newBlockTitle))
	return RenumberSurveyVariables(out)
}

func (e *Engine) deleteBlock(s *model.Survey, a DeleteBlock) *model.Survey {
	i := s.BlockIndex(a.BlockID)
	if i < 0 {
		return s
	}
	out := shallowCopy(s)
	out.Blocks = slices.Delete(out.Blocks, i, i+1)
	if len(out.Blocks) == 0 {
		out.Blocks = []model.Block{e.newBlock(defaultBlockTitle)}
	}
	return RenumberSurveyVariables(out)
}

func (e *Engine) copyBlock(s *model.Survey, a CopyBlock) *model.Survey {
	i := s.BlockIndex(a.BlockID)
	if i < 0 {
		return s
	}
	copied := e.duplicateBlock(s.Blocks[i], newLabelDeduper(s))
	out := shallowCopy(s)
	out.Blocks = slices.Insert(out.Blocks, i+1, copied)
	return RenumberSurveyVariables(out)
}

func (e *Engine) reorderBlock(s *model.Survey, a ReorderBlock) *model.Survey {
	from := s.BlockIndex(a.DraggedBlockID)
	if from < 0 || a.DraggedBlockID == a.TargetBlockID {
		return s
	}
	out := shallowCopy(s)
	dragged := out.Blocks[from]
	out.Blocks = slices.Delete(out.Blocks, from, from+1)
	to := len(out.Blocks)
	if a.TargetBlockID != "" {
		if t := out.BlockIndex(a.TargetBlockID); t >= 0 {
			to = t
		}
	}
	if to == from {
		return s
	}
	out.Blocks = slices.Insert(out.Blocks, to, dragged)
	return RenumberSurveyVariables(out)
}

func (e *Engine) moveBlock(s *model.Survey, blockID string, delta int) *model.Survey {
	i := s.BlockIndex(blockID)
	j := i + delta
	if i < 0 || j < 0 || j >= len(s.Blocks) {
		return s
	}
	out := shallowCopy(s)
	out.Blocks[i], out.Blocks[j] = out.Blocks[j], out.Blocks[i]
	return RenumberSurveyVariables(out)
}

func (e *Engine) addBlockFromToolbox(s *model.Survey, a AddBlockFromToolbox) *model.Survey {
	to := len(s.Blocks)
	if a.TargetBlockID != "" {
		if t := s.BlockIndex(a.TargetBlockID); t >= 0 {
			to = t
		}
	}
	out := shallowCopy(s)
	out.Blocks = slices.Insert(out.Blocks, to, e.newBlock(newBlockTitle))
	return RenumberSurveyVariables(out)
}

func (e *Engine) addBlockFromAI(s *model.Survey, a AddBlockFromAI) *model.Survey {
	to := len(s.Blocks)
	if a.InsertAfterBID != "" {
		for i := range s.Blocks {
			if s.Blocks[i].BID == a.InsertAfterBID {
				to = i + 1
				break
			}
		}
	}
	title := a.Title
	if title == "" {
		title = newBlockTitle
	}
	out := shallowCopy(s)
	out.Blocks = slices.Insert(out.Blocks, to, e.newBlock(title))
	return e.normalize(out, "")
}
