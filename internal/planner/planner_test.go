package planner

import (
	"strings"
	"testing"

	"github.com/melisasvr/Agile-Project-Consultant/internal/domain"
)

func TestPlanImprovementTrack(t *testing.T) {
	steps := Plan(domain.MethodologyScrum, "Scrum")
	if len(steps) != 4 {
		t.Fatalf("expected 4 improvement steps, got %d", len(steps))
	}
	if steps[0].Title != "Conduct a facilitated retrospective" {
		t.Fatalf("unexpected first step: %q", steps[0].Title)
	}
	if steps[3].Title != "Implement and measure" {
		t.Fatalf("unexpected last step: %q", steps[3].Title)
	}

	// The improvement track is identical for every methodology.
	for _, id := range domain.MethodologyIDs {
		same := Plan(id, string(id))
		if len(same) != len(steps) {
			t.Fatalf("%s improvement track has %d steps, expected %d", id, len(same), len(steps))
		}
		for i := range steps {
			if same[i] != steps[i] {
				t.Fatalf("%s improvement step %d differs: %+v", id, i, same[i])
			}
		}
	}
}

func TestPlanImprovementMatchIsCaseInsensitive(t *testing.T) {
	steps := Plan(domain.MethodologyKanban, "kanban")
	if len(steps) != 4 {
		t.Fatalf("expected improvement track, got %d steps", len(steps))
	}
	steps = Plan(domain.MethodologyKanban, "KANBAN")
	if len(steps) != 4 {
		t.Fatalf("expected improvement track, got %d steps", len(steps))
	}
}

func TestPlanScrumAdoption(t *testing.T) {
	steps := Plan(domain.MethodologyScrum, domain.NoMethodology)
	if len(steps) != 6 {
		t.Fatalf("expected 6 adoption steps, got %d", len(steps))
	}
	if steps[2].Title != "Establish sprint length" {
		t.Fatalf("expected sprint step after the pilot step, got %q", steps[2].Title)
	}
	if steps[1].Title != "Start small" || steps[3].Title != "Define roles and responsibilities" {
		t.Fatalf("extra step inserted at wrong position: %q / %q", steps[1].Title, steps[3].Title)
	}
	if !strings.Contains(steps[0].Description, "SCRUM") {
		t.Fatalf("expected uppercased name in description: %q", steps[0].Description)
	}
}

func TestPlanKanbanAdoption(t *testing.T) {
	steps := Plan(domain.MethodologyKanban, "Scrum")
	if len(steps) != 6 {
		t.Fatalf("expected 6 adoption steps, got %d", len(steps))
	}
	if steps[2].Title != "Create Kanban board" {
		t.Fatalf("expected board step after the pilot step, got %q", steps[2].Title)
	}
}

func TestPlanAdoptionWithoutExtraStep(t *testing.T) {
	for _, id := range []domain.MethodologyID{domain.MethodologyXP, domain.MethodologyLean} {
		steps := Plan(id, domain.NoMethodology)
		if len(steps) != 5 {
			t.Fatalf("%s: expected 5 adoption steps, got %d", id, len(steps))
		}
		if steps[2].Title != "Define roles and responsibilities" {
			t.Fatalf("%s: unexpected third step: %q", id, steps[2].Title)
		}
	}
}

func TestPlanEmptyCurrentCountsAsNone(t *testing.T) {
	steps := Plan(domain.MethodologyScrum, "")
	if len(steps) != 6 {
		t.Fatalf("expected adoption track for unset current methodology, got %d steps", len(steps))
	}
}
