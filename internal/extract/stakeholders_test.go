package extract

import (
	"reflect"
	"testing"

	"github.com/ppiankov/plainspeak/internal/model"
)

func indexOf(found []model.Stakeholder, name string) int {
	for i, s := range found {
		if s.Name == name {
			return i
		}
	}
	return -1
}

func TestDetectStakeholders_Example(t *testing.T) {
	found := DetectStakeholders("The City Council met with John Smith about Residents' concerns.")

	// Vocabulary matches first in declaration order, then capitalized phrases in text
	// order. "The City Council" is a distinct phrase match, not a duplicate of "City Council".
	want := []model.Stakeholder{
		{Name: "Residents", Role: model.RoleStakeholder},
		{Name: "City Council", Role: model.RoleStakeholder},
		{Name: "The City Council", Role: model.RoleMentioned},
		{Name: "John Smith", Role: model.RoleMentioned},
	}
	if !reflect.DeepEqual(found, want) {
		t.Errorf("Expected %+v, got %+v", want, found)
	}
}

func TestDetectStakeholders_CaseSensitive(t *testing.T) {
	found := DetectStakeholders("residents and teachers were invited.")
	if len(found) != 0 {
		t.Errorf("Expected no case-insensitive matches, got %+v", found)
	}
}

func TestDetectStakeholders_NoDuplicateNames(t *testing.T) {
	found := DetectStakeholders("Small Businesses rely on Small Businesses. Jane Doe met Jane Doe.")

	seen := make(map[string]bool)
	for _, s := range found {
		if seen[s.Name] {
			t.Errorf("Duplicate stakeholder %q", s.Name)
		}
		seen[s.Name] = true
	}
	if indexOf(found, "Small Businesses") != 0 {
		t.Errorf("Expected Small Businesses first, got %+v", found)
	}
	if i := indexOf(found, "Small Businesses"); i >= 0 && found[i].Role != model.RoleStakeholder {
		t.Errorf("Expected vocabulary role to win over detection, got %+v", found[i])
	}
}

func TestDetectStakeholders_Cap(t *testing.T) {
	text := "Residents, Students, Teachers, Parents, Nonprofits, Vendors and Taxpayers " +
		"met Alice Walker, Bob Marley and Carol King."

	found := DetectStakeholders(text)
	if len(found) != MaxStakeholders {
		t.Fatalf("Expected %d stakeholders, got %d: %+v", MaxStakeholders, len(found), found)
	}
	if found[7].Role != model.RoleMentioned || found[7].Name != "Alice Walker" {
		t.Errorf("Expected Alice Walker as the last entry, got %+v", found[7])
	}
}

func TestDetectStakeholders_DetectedNameLimit(t *testing.T) {
	text := "Ann Lee, Ben Ray, Cal Fox, Dee Hay, Eve Moe, Fay Roe and Gus Poe."
	found := DetectStakeholders(text)

	if len(found) != MaxDetectedNames {
		t.Errorf("Expected %d detected names, got %d: %+v", MaxDetectedNames, len(found), found)
	}
}
