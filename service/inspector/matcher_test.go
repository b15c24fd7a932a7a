package inspector

import (
	"testing"

	"github.com/homeguard-labs/homeguard-server/cmd/models"
	"github.com/lib/pq"
)

func ins(id uint, available bool, tags ...string) models.Inspector {
	i := models.Inspector{Available: available, Specialties: pq.StringArray(tags)}
	i.ID = id
	return i
}

func TestMatchPrefersDedicatedTrade(t *testing.T) {
	directory := []models.Inspector{
		ins(1, true, "General"),
		ins(2, true, "Plumbing"),
		ins(3, true, "Maintenance"),
	}
	got := Match(CategoryPlumbing, directory)
	if got == nil || got.ID != 2 {
		t.Fatalf("expected plumbing specialist (2), got %+v", got)
	}
}

func TestMatchWalksFallbackOrder(t *testing.T) {
	directory := []models.Inspector{
		ins(1, true, "Maintenance"),
		ins(2, true, "General"),
	}
	// No plumbing tag anywhere: General outranks Maintenance even though
	// the maintenance inspector appears first in the directory.
	got := Match(CategoryPlumbing, directory)
	if got == nil || got.ID != 2 {
		t.Fatalf("expected general inspector (2), got %+v", got)
	}
}

func TestMatchDirectoryOrderTieBreak(t *testing.T) {
	directory := []models.Inspector{
		ins(5, true, "Electrical"),
		ins(6, true, "Electrical"),
	}
	got := Match(CategoryElectrical, directory)
	if got == nil || got.ID != 5 {
		t.Fatalf("expected first electrical inspector (5), got %+v", got)
	}
}

func TestMatchNeverReturnsUnavailable(t *testing.T) {
	directory := []models.Inspector{
		ins(1, false, "Roofing"),
		ins(2, true, "General"),
	}
	got := Match(CategoryRoofing, directory)
	if got == nil || got.ID != 2 {
		t.Fatalf("expected available general fallback (2), got %+v", got)
	}
}

func TestMatchFallsBackToAnyAvailable(t *testing.T) {
	directory := []models.Inspector{
		ins(7, true, "Landscaping"),
	}
	got := Match(CategoryStructural, directory)
	if got == nil || got.ID != 7 {
		t.Fatalf("expected fallback to sole available inspector, got %+v", got)
	}
}

func TestMatchEmptyDirectory(t *testing.T) {
	if got := Match(CategoryGeneral, nil); got != nil {
		t.Fatalf("expected nil for empty directory, got %+v", got)
	}
	if got := Match(CategoryGeneral, []models.Inspector{ins(1, false, "General")}); got != nil {
		t.Fatalf("expected nil when nobody is available, got %+v", got)
	}
}

func TestMatchCaseInsensitiveSubstring(t *testing.T) {
	directory := []models.Inspector{
		ins(3, true, "residential plumbing & drainage"),
	}
	got := Match(CategoryPlumbing, directory)
	if got == nil || got.ID != 3 {
		t.Fatalf("expected substring specialty match, got %+v", got)
	}
}

func TestParseCategory(t *testing.T) {
	if ParseCategory(" Plumbing ") != CategoryPlumbing {
		t.Fatal("expected normalized plumbing category")
	}
	if ParseCategory("underwater basket weaving") != CategoryGeneral {
		t.Fatal("unknown categories should fall back to general")
	}
}
