package memory

import (
	"context"
	"testing"
	"time"

	"github.com/xenm/MapMe-sub002/internal/models"
	"github.com/xenm/MapMe-sub002/internal/repository"
)

func newMark(t *testing.T, s *DateMarkStore, userID, id string, createdAt time.Time, mutate func(*models.DateMark)) *models.DateMark {
	t.Helper()
	m := &models.DateMark{UserID: userID, Visibility: models.VisibilityPrivate}
	m.ID = id
	m.CreatedAt = createdAt
	m.UpdatedAt = createdAt
	if mutate != nil {
		mutate(m)
	}
	if err := s.Upsert(context.Background(), m); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	return m
}

func collectIDs(t *testing.T, s *DateMarkStore, userID string, f repository.Filter) []string {
	t.Helper()
	seq, err := s.GetByUser(context.Background(), userID, f)
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	marks, err := repository.Collect(context.Background(), seq)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	ids := make([]string, len(marks))
	for i, m := range marks {
		ids[i] = m.ID
	}
	return ids
}

func TestGetByUserOrdersNewestFirst(t *testing.T) {
	s := NewDateMarkStore()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	newMark(t, s, "u1", "m1", base, nil)
	newMark(t, s, "u1", "m2", base.Add(time.Hour), nil)
	newMark(t, s, "u1", "m3", base.Add(2*time.Hour), nil)

	got := collectIDs(t, s, "u1", repository.Filter{})
	want := []string{"m3", "m2", "m1"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestGetByUserExcludesSoftDeleted(t *testing.T) {
	s := NewDateMarkStore()
	now := time.Now().UTC()
	newMark(t, s, "u1", "keep", now, nil)
	newMark(t, s, "u1", "gone", now.Add(time.Minute), func(m *models.DateMark) { m.IsDeleted = true })

	got := collectIDs(t, s, "u1", repository.Filter{})
	if len(got) != 1 || got[0] != "keep" {
		t.Errorf("got %v, want [keep]", got)
	}
}

func TestGetByUserIsolatesUsers(t *testing.T) {
	s := NewDateMarkStore()
	now := time.Now().UTC()
	newMark(t, s, "u1", "mine", now, nil)
	newMark(t, s, "u2", "theirs", now, nil)

	got := collectIDs(t, s, "u1", repository.Filter{})
	if len(got) != 1 || got[0] != "mine" {
		t.Errorf("got %v, want [mine]", got)
	}
	if got := collectIDs(t, s, "nobody", repository.Filter{}); len(got) != 0 {
		t.Errorf("unknown user: got %v, want empty", got)
	}
}

func TestGetByUserAppliesFilter(t *testing.T) {
	s := NewDateMarkStore()
	now := time.Now().UTC()
	newMark(t, s, "u1", "cafe", now, func(m *models.DateMark) {
		m.CategoriesNorm = []string{"cafe"}
	})
	newMark(t, s, "u1", "bar", now.Add(time.Minute), func(m *models.DateMark) {
		m.CategoriesNorm = []string{"bar"}
	})

	got := collectIDs(t, s, "u1", repository.Filter{Categories: []string{"cafe"}})
	if len(got) != 1 || got[0] != "cafe" {
		t.Errorf("got %v, want [cafe]", got)
	}
}

func TestGetByIDHidesDeletedAndForeign(t *testing.T) {
	s := NewDateMarkStore()
	ctx := context.Background()
	now := time.Now().UTC()
	newMark(t, s, "u1", "m1", now, nil)

	if _, err := s.GetByID(ctx, "u1", "m1"); err != nil {
		t.Fatalf("owner read: %v", err)
	}
	if _, err := s.GetByID(ctx, "u2", "m1"); err != repository.ErrNotFound {
		t.Errorf("foreign read: got %v, want ErrNotFound", err)
	}

	m, _ := s.GetByID(ctx, "u1", "m1")
	m.IsDeleted = true
	if err := s.Upsert(ctx, m); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if _, err := s.GetByID(ctx, "u1", "m1"); err != repository.ErrNotFound {
		t.Errorf("deleted read: got %v, want ErrNotFound", err)
	}
}

func TestSeqStopsOnCancelledContext(t *testing.T) {
	s := NewDateMarkStore()
	now := time.Now().UTC()
	newMark(t, s, "u1", "m1", now, nil)
	newMark(t, s, "u1", "m2", now.Add(time.Minute), nil)

	seq, err := s.GetByUser(context.Background(), "u1", repository.Filter{})
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	defer seq.Close(context.Background())

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	if seq.Next(cancelled) {
		t.Fatal("Next should return false on a cancelled context")
	}
	if seq.Err() != context.Canceled {
		t.Errorf("Err() = %v, want context.Canceled", seq.Err())
	}
}

func TestUpsertSnapshotsRecord(t *testing.T) {
	s := NewDateMarkStore()
	ctx := context.Background()
	now := time.Now().UTC()
	m := newMark(t, s, "u1", "m1", now, func(m *models.DateMark) { m.Note = "before" })

	// Mutating the caller's copy must not leak into the store.
	m.Note = "after"

	stored, err := s.GetByID(ctx, "u1", "m1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Note != "before" {
		t.Errorf("Note = %q, want %q", stored.Note, "before")
	}
}
