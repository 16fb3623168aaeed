package main

import (
	"strings"
	"testing"

	analyticsdomain "smartsave-go/internal/domain/analytics"
	goalsdomain "smartsave-go/internal/domain/goals"
)

func TestRenderSummary(t *testing.T) {
	dashboard := analyticsdomain.Dashboard{
		Streak:     3,
		TotalSaved: 750,
		Reminder:   "You haven't saved in 4 days! Put away just ₹10 today. ⏳",
		Goals: []analyticsdomain.GoalView{{
			Goal:       goalsdomain.Goal{Name: "Bike", Icon: "🚲", Target: 1000, Saved: 750, Deadline: goalsdomain.DefaultDeadline},
			Percent:    75,
			Nudge:      "Incredible! 3/4 done. Finish strong! 💎",
			Projection: "~10 days to go",
		}},
		Badges:  []analyticsdomain.Badge{analyticsdomain.BadgeFirstStep},
		Monthly: []analyticsdomain.MonthTotal{{Month: "2026-03", Label: "Mar", Total: 750}},
	}

	var out strings.Builder
	if err := renderSummary(&out, dashboard); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	text := out.String()
	for _, want := range []string{"3 day streak", "🚲 Bike", "75%", "₹750 / ₹1000", "~10 days to go", "First Step", "Mar ₹750", "4 days"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, text)
		}
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var out strings.Builder
	if err := renderSummary(&out, analyticsdomain.Dashboard{}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out.String(), "No goals yet") {
		t.Fatalf("expected empty hint, got %s", out.String())
	}
}

func TestProgressBar(t *testing.T) {
	if got := progressBar(50); strings.Count(got, "█") != 10 {
		t.Fatalf("expected half filled bar, got %s", got)
	}
	if got := progressBar(100); strings.Contains(got, "░") {
		t.Fatalf("expected full bar, got %s", got)
	}
}
