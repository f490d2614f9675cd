// Package engine applies edit actions to survey documents.
//
// Reduce is a pure function of its inputs and the id generator: it never
// mutates the survey it is given, and when an action changes nothing it
// returns the very same pointer so callers can detect a no-op by identity.
// Structural edits are followed by the pagination and renumbering passes;
// logic validation is left to the caller (see ValidateLogicAfterMove).
package engine

import (
	"slices"

	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/idgen"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/model"
)

const (
	defaultSurveyTitle = "Untitled Survey"
	defaultBlockTitle  = "Default Question Block"
	newBlockTitle      = "New Block"
)

// Engine reduces actions against survey state
type Engine struct {
	ids idgen.Generator
}

// New creates an engine drawing fresh ids from ids (uuid ids when nil)
func New(ids idgen.Generator) *Engine {
	if ids == nil {
		ids = idgen.NewUUID()
	}
	return &Engine{ids: ids}
}

// NewSurvey returns an empty, normalized survey with one default block
func (e *Engine) NewSurvey(title string) *model.Survey {
	if title == "" {
		title = defaultSurveyTitle
	}
	s := &model.Survey{
		Title:      title,
		PagingMode: model.PagingMultiPerPage,
		Blocks:     []model.Block{e.newBlock(defaultBlockTitle)},
	}
	return RenumberSurveyVariables(s)
}

// Reduce applies a to s. s must be non-nil except for REPLACE_SURVEY and
// RESTORE_STATE, which do not read it.
func (e *Engine) Reduce(s *model.Survey, a Action) *model.Survey {
	if s == nil {
		switch a.(type) {
		case ReplaceSurvey, RestoreState:
		default:
			return s
		}
	}
	switch act := a.(type) {
	case BlockAction:
		return e.reduceBlock(s, act)
	case QuestionAction:
		return e.reduceQuestion(s, act)
	case BulkAction:
		return e.reduceBulk(s, act)
	case MetaAction:
		return e.reduceMeta(s, act)
	}
	return s
}

// normalize runs pagination then renumbering
func (e *Engine) normalize(s *model.Survey, previousMode model.PagingMode) *model.Survey {
	return RenumberSurveyVariables(ApplyPagingRules(s, e.ids, previousMode))
}

func (e *Engine) newBlock(title string) model.Block {
	return model.Block{
		ID:        e.ids.NewID(idgen.PrefixBlock),
		Title:     title,
		Questions: []model.Question{},
	}
}

// shallowCopy copies the survey and its block slice. Blocks still share
// their question slices with s; call ownQuestions before editing one.
func shallowCopy(s *model.Survey) *model.Survey {
	out := *s
	out.Blocks = slices.Clone(s.Blocks)
	return &out
}

// ownQuestions gives b a private question slice
func ownQuestions(b *model.Block) {
	b.Questions = slices.Clone(b.Questions)
	if b.Questions == nil {
		b.Questions = []model.Question{}
	}
}

// ownChoices gives q a private choice slice
func ownChoices(q *model.Question) {
	q.Choices = slices.Clone(q.Choices)
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = true
		}
	}
	return set
}
