package engine

import (
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/idgen"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/model"
)

// ApplyPagingRules strips automatic page breaks, collapses consecutive
// breaks and re-derives automatic breaks for every block that needs them.
//
// previousMode is the paging mode the breaks were derived under; empty
// means unchanged. An automatic break re-derived in front of the same
// question keeps its id while the mode is unchanged, which makes the pass
// idempotent. After a mode switch every automatic break gets a fresh id.
func ApplyPagingRules(s *model.Survey, ids idgen.Generator, previousMode model.PagingMode) *model.Survey {
	out := shallowCopy(s)
	reuse := previousMode == "" || previousMode == s.PagingMode
	for i := range out.Blocks {
		out.Blocks[i].Questions = paginateBlock(out.Blocks[i], out.PagingMode, ids, reuse)
	}
	return out
}

// needsAutomaticBreaks reports whether the block gets one interactive question per page
func needsAutomaticBreaks(mode model.PagingMode, b model.Block) bool {
	return mode == model.PagingOnePerPage || (mode == model.PagingMultiPerPage && b.AutomaticPageBreaks)
}

func isPageBreak(q model.Question) bool {
	return q.Type == model.QuestionTypePageBreak
}

func paginateBlock(b model.Block, mode model.PagingMode, ids idgen.Generator, reuse bool) []model.Question {
	// automatic break ids keyed by the question they precede
	previous := make(map[string]string)
	stripped := make([]model.Question, 0, len(b.Questions))
	for i, q := range b.Questions {
		if isPageBreak(q) && q.IsAutomatic {
			if i+1 < len(b.Questions) && !isPageBreak(b.Questions[i+1]) {
				previous[b.Questions[i+1].ID] = q.ID
			}
			continue
		}
		if isPageBreak(q) && len(stripped) > 0 && isPageBreak(stripped[len(stripped)-1]) {
			continue
		}
		stripped = append(stripped, q)
	}

	if !needsAutomaticBreaks(mode, b) {
		return stripped
	}

	out := make([]model.Question, 0, len(stripped)*2)
	seen := false
	for _, q := range stripped {
		switch {
		case isPageBreak(q):
			seen = false
		case q.Type.IsInteractive():
			if seen {
				id := previous[q.ID]
				if !reuse || id == "" {
					id = ids.NewID(idgen.PrefixPageBreak)
				}
				out = append(out, automaticBreak(id))
			}
			seen = true
		}
		out = append(out, q)
	}
	return out
}

func automaticBreak(id string) model.Question {
	return model.Question{
		ID:          id,
		Type:        model.QuestionTypePageBreak,
		Text:        "Page Break",
		IsAutomatic: true,
	}
}

// PagesForBlock splits a block into pages at its page breaks. The breaks
// themselves are dropped and empty pages are skipped, except that a block
// without content still renders as one empty page.
func PagesForBlock(b model.Block) [][]model.Question {
	var pages [][]model.Question
	current := []model.Question{}
	for _, q := range b.Questions {
		if isPageBreak(q) {
			if len(current) > 0 {
				pages = append(pages, current)
			}
			current = []model.Question{}
			continue
		}
		current = append(current, q)
	}
	if len(current) > 0 || len(pages) == 0 {
		pages = append(pages, current)
	}
	return pages
}
