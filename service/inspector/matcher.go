package inspector

import (
	"strings"

	"github.com/homeguard-labs/homeguard-server/cmd/models"
)

// IssueCategory classifies a consultation request.
type IssueCategory string

const (
	CategoryPlumbing   IssueCategory = "plumbing"
	CategoryElectrical IssueCategory = "electrical"
	CategoryStructural IssueCategory = "structural"
	CategoryRoofing    IssueCategory = "roofing"
	CategoryHVAC       IssueCategory = "hvac"
	CategoryPest       IssueCategory = "pest"
	CategoryGeneral    IssueCategory = "general"
)

// UnassignedLabel is shown for appointments booked while no inspector was
// available.
const UnassignedLabel = "To be assigned"

// acceptableSpecialties maps each category to specialty tags in preference
// order. The first tag is the dedicated trade, then progressively broader
// fallbacks.
var acceptableSpecialties = map[IssueCategory][]string{
	CategoryPlumbing:   {"Plumbing", "General", "Maintenance"},
	CategoryElectrical: {"Electrical", "General", "Maintenance"},
	CategoryStructural: {"Structural", "Civil", "General"},
	CategoryRoofing:    {"Roofing", "Structural", "General"},
	CategoryHVAC:       {"HVAC", "Mechanical", "General"},
	CategoryPest:       {"Pest Control", "General"},
	CategoryGeneral:    {"General", "Maintenance"},
}

// ParseCategory normalizes a request string into a known category. Unknown
// values fall back to general rather than failing the booking.
func ParseCategory(s string) IssueCategory {
	c := IssueCategory(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := acceptableSpecialties[c]; ok {
		return c
	}
	return CategoryGeneral
}

// Match selects an inspector for the category from the directory. Unavailable
// inspectors are never considered. Specialty tags are matched case-insensitively
// as substrings, walking the category's acceptable list in order and keeping
// directory order as the tie-break. When no specialty matches, the first
// available inspector is used; when none is available, nil is returned and the
// booking proceeds unassigned.
func Match(category IssueCategory, directory []models.Inspector) *models.Inspector {
	available := make([]models.Inspector, 0, len(directory))
	for _, ins := range directory {
		if ins.Available {
			available = append(available, ins)
		}
	}
	if len(available) == 0 {
		return nil
	}

	for _, want := range acceptableSpecialties[category] {
		for i := range available {
			if hasSpecialty(available[i].Specialties, want) {
				return &available[i]
			}
		}
	}
	return &available[0]
}

func hasSpecialty(tags []string, want string) bool {
	want = strings.ToLower(want)
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), want) {
			return true
		}
	}
	return false
}
