package repository

import (
	"testing"
	"time"

	"github.com/xenm/MapMe-sub002/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

func mark(mutate func(*models.DateMark)) *models.DateMark {
	m := &models.DateMark{
		UserID:         "u1",
		CategoriesNorm: []string{"cafe"},
		TagsNorm:       []string{"date", "quiet"},
		QualitiesNorm:  []string{"cozy"},
		VisitDate:      dayPtr("2024-03-15"),
	}
	if mutate != nil {
		mutate(m)
	}
	return m
}

func TestFilterEmpty(t *testing.T) {
	if !(Filter{}).Empty() {
		t.Error("zero filter should be empty")
	}
	if (Filter{Categories: []string{"cafe"}}).Empty() {
		t.Error("filter with categories should not be empty")
	}
	if (Filter{From: dayPtr("2024-01-01")}).Empty() {
		t.Error("filter with a date bound should not be empty")
	}
}

func TestFilterMatches(t *testing.T) {
	tests := []struct {
		name string
		f    Filter
		m    *models.DateMark
		want bool
	}{
		{"empty filter matches", Filter{}, mark(nil), true},
		{"nil mark never matches", Filter{}, nil, false},
		{
			"soft-deleted never matches",
			Filter{},
			mark(func(m *models.DateMark) { m.IsDeleted = true }),
			false,
		},
		{
			"category hit",
			Filter{Categories: []string{"cafe", "bar"}},
			mark(nil),
			true,
		},
		{
			"category miss",
			Filter{Categories: []string{"bar"}},
			mark(nil),
			false,
		},
		{
			"or within tag set",
			Filter{Tags: []string{"romantic", "quiet"}},
			mark(nil),
			true,
		},
		{
			"and across dimensions requires every set to hit",
			Filter{Categories: []string{"cafe"}, Tags: []string{"romantic"}},
			mark(nil),
			false,
		},
		{
			"all dimensions hit",
			Filter{
				Categories: []string{"cafe"},
				Tags:       []string{"date"},
				Qualities:  []string{"cozy"},
				From:       dayPtr("2024-03-01"),
				To:         dayPtr("2024-03-31"),
			},
			mark(nil),
			true,
		},
		{
			"visit date inside range",
			Filter{From: dayPtr("2024-03-01"), To: dayPtr("2024-03-31")},
			mark(nil),
			true,
		},
		{
			"visit date on the bounds is inclusive",
			Filter{From: dayPtr("2024-03-15"), To: dayPtr("2024-03-15")},
			mark(nil),
			true,
		},
		{
			"visit date before range",
			Filter{From: dayPtr("2024-04-01")},
			mark(nil),
			false,
		},
		{
			"visit date after range",
			Filter{To: dayPtr("2024-02-01")},
			mark(nil),
			false,
		},
		{
			"nil visit date excluded once a bound is set",
			Filter{From: dayPtr("2024-01-01")},
			mark(func(m *models.DateMark) { m.VisitDate = nil }),
			false,
		},
		{
			"nil visit date fine without bounds",
			Filter{Categories: []string{"cafe"}},
			mark(func(m *models.DateMark) { m.VisitDate = nil }),
			true,
		},
		{
			"mark without normalized labels misses label filters",
			Filter{Qualities: []string{"cozy"}},
			mark(func(m *models.DateMark) { m.QualitiesNorm = nil }),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.Matches(tt.m); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
