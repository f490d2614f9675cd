package engine

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/model"
)

// autoDescriptionLabel matches labels produced by RenumberSurveyVariables
var autoDescriptionLabel = regexp.MustCompile(`^Description \d+$`)

// RenumberSurveyVariables recomputes display identifiers from document
// order: blocks become BL1..n, every question except page breaks becomes
// Q1..m across blocks, and Description questions without a label get the
// first free "Description N". Ids and logic are left untouched.
func RenumberSurveyVariables(s *model.Survey) *model.Survey {
	out := shallowCopy(s)

	used := make(map[string]bool)
	for _, b := range out.Blocks {
		for _, q := range b.Questions {
			if q.Type == model.QuestionTypeDescription && strings.TrimSpace(q.Label) != "" {
				used[q.Label] = true
			}
		}
	}

	qn, dn := 0, 1
	for bi := range out.Blocks {
		b := &out.Blocks[bi]
		b.BID = "BL" + strconv.Itoa(bi+1)
		if !needsRenumber(b, qn, used) {
			qn += countNumbered(b.Questions)
			continue
		}
		ownQuestions(b)
		for qi := range b.Questions {
			q := &b.Questions[qi]
			if isPageBreak(*q) {
				q.QID = ""
				continue
			}
			qn++
			q.QID = "Q" + strconv.Itoa(qn)
			if q.Type == model.QuestionTypeDescription && strings.TrimSpace(q.Label) == "" {
				for used[descriptionLabel(dn)] {
					dn++
				}
				q.Label = descriptionLabel(dn)
				used[q.Label] = true
			}
		}
	}
	return out
}

func descriptionLabel(n int) string {
	return "Description " + strconv.Itoa(n)
}

func countNumbered(qs []model.Question) int {
	n := 0
	for _, q := range qs {
		if !isPageBreak(q) {
			n++
		}
	}
	return n
}

// needsRenumber reports whether any question of b would change; blocks that
// are already numbered keep sharing their question slice.
func needsRenumber(b *model.Block, qn int, used map[string]bool) bool {
	for _, q := range b.Questions {
		if isPageBreak(q) {
			if q.QID != "" {
				return true
			}
			continue
		}
		qn++
		if q.QID != "Q"+strconv.Itoa(qn) {
			return true
		}
		if q.Type == model.QuestionTypeDescription && strings.TrimSpace(q.Label) == "" {
			return true
		}
	}
	return false
}

// labelDeduper keeps Description labels unique while questions are copied
type labelDeduper struct {
	used map[string]bool
}

func newLabelDeduper(s *model.Survey) *labelDeduper {
	d := &labelDeduper{used: make(map[string]bool)}
	for _, b := range s.Blocks {
		for _, q := range b.Questions {
			if q.Type == model.QuestionTypeDescription && q.Label != "" {
				d.used[q.Label] = true
			}
		}
	}
	return d
}

// relabel fixes the label of a copied Description question. A colliding
// generated label is cleared so renumbering issues a fresh one; any other
// colliding label gets the first free " (Copy)", " (Copy 2)", ... suffix.
func (d *labelDeduper) relabel(q *model.Question) {
	if q.Type != model.QuestionTypeDescription || q.Label == "" {
		return
	}
	if !d.used[q.Label] {
		d.used[q.Label] = true
		return
	}
	if autoDescriptionLabel.MatchString(q.Label) {
		q.Label = ""
		return
	}
	candidate := q.Label + " (Copy)"
	for n := 2; d.used[candidate]; n++ {
		candidate = q.Label + " (Copy " + strconv.Itoa(n) + ")"
	}
	q.Label = candidate
	d.used[candidate] = true
}
