package repository

import (
	"time"

	"github.com/xenm/MapMe-sub002/internal/models"
)

// Filter narrows a GetByUser query. Set fields combine with AND; within a
// single list a record matches if any of its normalized entries is in the
// supplied set (OR). Category/tag/quality values must already be in
// normalized form.
type Filter struct {
	From       *time.Time
	To         *time.Time
	Categories []string
	Tags       []string
	Qualities  []string
}

// Empty reports whether no filter dimension is set.
func (f Filter) Empty() bool {
	return f.From == nil && f.To == nil &&
		len(f.Categories) == 0 && len(f.Tags) == 0 && len(f.Qualities) == 0
}

// Matches is the single source of truth for filter semantics. The memory
// backend applies it directly; the Mongo backend builds an equivalent
// query, and the parity tests assert both agree against this predicate.
// Soft-deleted records never match.
func (f Filter) Matches(m *models.DateMark) bool {
	if m == nil || m.IsDeleted {
		return false
	}
	if f.From != nil || f.To != nil {
		if m.VisitDate == nil {
			return false
		}
		if f.From != nil && m.VisitDate.Before(*f.From) {
			return false
		}
		if f.To != nil && m.VisitDate.After(*f.To) {
			return false
		}
	}
	if len(f.Categories) > 0 && !intersects(m.CategoriesNorm, f.Categories) {
		return false
	}
	if len(f.Tags) > 0 && !intersects(m.TagsNorm, f.Tags) {
		return false
	}
	if len(f.Qualities) > 0 && !intersects(m.QualitiesNorm, f.Qualities) {
		return false
	}
	return true
}

func intersects(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}
