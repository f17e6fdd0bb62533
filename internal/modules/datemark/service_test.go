package datemark

import (
	"context"
	"sync"
	"testing"

	"github.com/xenm/MapMe-sub002/internal/models"
	"github.com/xenm/MapMe-sub002/internal/repository"
	"github.com/xenm/MapMe-sub002/internal/repository/memory"
)

func newTestService() *Service {
	return NewService(memory.NewDateMarkStore())
}

func draft(mutate func(*CreateDateMarkDTO)) *CreateDateMarkDTO {
	dto := &CreateDateMarkDTO{
		Latitude:  52.52,
		Longitude: 13.405,
		PlaceID:   "place-1",
	}
	if mutate != nil {
		mutate(dto)
	}
	return dto
}

func TestCreateNormalizesLabels(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	res, err := svc.Create(ctx, "u1", draft(func(d *CreateDateMarkDTO) {
		d.Categories = []string{"Café", "cafe"}
		d.Tags = []string{"  First Date  "}
		d.Qualities = []string{"Cozy!"}
	}))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.Existed {
		t.Fatal("first create reported Existed")
	}

	m := res.Mark
	if len(m.Categories) != 2 || m.Categories[0] != "Café" {
		t.Errorf("raw categories rewritten: %v", m.Categories)
	}
	if len(m.CategoriesNorm) != 1 || m.CategoriesNorm[0] != "cafe" {
		t.Errorf("CategoriesNorm = %v, want [cafe]", m.CategoriesNorm)
	}
	if len(m.TagsNorm) != 1 || m.TagsNorm[0] != "firstdate" {
		t.Errorf("TagsNorm = %v, want [firstdate]", m.TagsNorm)
	}
	if len(m.QualitiesNorm) != 1 || m.QualitiesNorm[0] != "cozy" {
		t.Errorf("QualitiesNorm = %v, want [cozy]", m.QualitiesNorm)
	}
	if m.ID == "" || m.CreatedAt.IsZero() {
		t.Error("mark was not stamped")
	}
	if m.Visibility != models.VisibilityPrivate {
		t.Errorf("default visibility = %q, want private", m.Visibility)
	}
}

func TestCreateDuplicatePlaceReturnsExisting(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.Create(ctx, "u1", draft(nil))
	if err != nil {
		t.Fatalf("first Create: %v", err)
	}

	second, err := svc.Create(ctx, "u1", draft(func(d *CreateDateMarkDTO) {
		d.Note = "completely different draft"
	}))
	if err != nil {
		t.Fatalf("second Create: %v", err)
	}
	if !second.Existed {
		t.Fatal("duplicate create did not report Existed")
	}
	if second.Mark.ID != first.Mark.ID {
		t.Errorf("returned mark %s, want original %s", second.Mark.ID, first.Mark.ID)
	}
	if second.Mark.Note != first.Mark.Note {
		t.Error("original record was modified by the duplicate create")
	}

	marks, err := svc.List(ctx, "u1", repository.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(marks) != 1 {
		t.Errorf("stored %d marks, want 1", len(marks))
	}
}

func TestCreateDuplicateForOtherUserIsIndependent(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, "u1", draft(nil)); err != nil {
		t.Fatalf("u1 Create: %v", err)
	}
	res, err := svc.Create(ctx, "u2", draft(nil))
	if err != nil {
		t.Fatalf("u2 Create: %v", err)
	}
	if res.Existed {
		t.Error("same place for another user must create a fresh mark")
	}
}

func TestCreateWithoutPlaceIDNeverDedupes(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	noPlace := func(d *CreateDateMarkDTO) { d.PlaceID = "" }
	if _, err := svc.Create(ctx, "u1", draft(noPlace)); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	res, err := svc.Create(ctx, "u1", draft(noPlace))
	if err != nil {
		t.Fatalf("second Create: %v", err)
	}
	if res.Existed {
		t.Error("marks without a place id must not be deduplicated")
	}

	marks, _ := svc.List(ctx, "u1", repository.Filter{})
	if len(marks) != 2 {
		t.Errorf("stored %d marks, want 2", len(marks))
	}
}

func TestCreateAfterDeleteAllowsNewMark(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.Create(ctx, "u1", draft(nil))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, "u1", first.Mark.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	res, err := svc.Create(ctx, "u1", draft(nil))
	if err != nil {
		t.Fatalf("re-Create: %v", err)
	}
	if res.Existed {
		t.Error("deleted mark must not block a new one for the same place")
	}
	if res.Mark.ID == first.Mark.ID {
		t.Error("new mark reused the deleted record's id")
	}
}

func TestConcurrentDuplicateCreates(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	const workers = 8
	results := make([]*CreateResult, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Create(ctx, "u1", draft(nil))
		}(i)
	}
	wg.Wait()

	created := 0
	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		if !results[i].Existed {
			created++
		}
	}
	if created != 1 {
		t.Errorf("%d creates succeeded, want exactly 1", created)
	}

	marks, _ := svc.List(ctx, "u1", repository.Filter{})
	if len(marks) != 1 {
		t.Errorf("stored %d marks, want 1", len(marks))
	}
}

func TestCreateRejectsBadVisitDateAndVisibility(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	bad := "15.03.2024"
	if _, err := svc.Create(ctx, "u1", draft(func(d *CreateDateMarkDTO) { d.VisitDate = &bad })); err != ErrInvalidVisitDate {
		t.Errorf("bad visit date: got %v, want ErrInvalidVisitDate", err)
	}
	if _, err := svc.Create(ctx, "u1", draft(func(d *CreateDateMarkDTO) { d.Visibility = "everyone" })); err == nil {
		t.Error("bad visibility accepted")
	}
}

func TestUpdateRecomputesNormalizedLists(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	res, err := svc.Create(ctx, "u1", draft(func(d *CreateDateMarkDTO) {
		d.Tags = []string{"Quiet"}
	}))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	newTags := []string{"Romantic", "ROMANTIC", "view"}
	updated, err := svc.Update(ctx, "u1", res.Mark.ID, &UpdateDateMarkDTO{Tags: &newTags})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(updated.TagsNorm) != 2 || updated.TagsNorm[0] != "romantic" || updated.TagsNorm[1] != "view" {
		t.Errorf("TagsNorm = %v, want [romantic view]", updated.TagsNorm)
	}
	if updated.CategoriesNorm == nil && res.Mark.CategoriesNorm != nil {
		t.Error("untouched lists were cleared")
	}
}

func TestDeleteHidesFromReads(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	res, err := svc.Create(ctx, "u1", draft(nil))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, "u1", res.Mark.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := svc.GetByID(ctx, "u1", res.Mark.ID); err != repository.ErrNotFound {
		t.Errorf("GetByID after delete: got %v, want ErrNotFound", err)
	}
	marks, _ := svc.List(ctx, "u1", repository.Filter{})
	if len(marks) != 0 {
		t.Errorf("List after delete returned %d marks, want 0", len(marks))
	}
	if err := svc.Delete(ctx, "u1", res.Mark.ID); err != repository.ErrNotFound {
		t.Errorf("double delete: got %v, want ErrNotFound", err)
	}
}
