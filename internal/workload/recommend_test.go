package workload

import "testing"

func TestBuildRecommendationsRuleOrder(t *testing.T) {
	policy := DefaultPolicy()
	ticketMetrics := TicketMetrics{BySLA: SLACounts{Breached: 2, AtRisk: 1}}
	taskMetrics := TaskMetrics{Overdue: 3}

	recs := BuildRecommendations(85, ticketMetrics, taskMetrics, policy)

	wantActions := []string{
		"reassign_items",
		"resolve_breached_tickets",
		"prioritize_at_risk_tickets",
		"complete_overdue_tasks",
	}
	if len(recs) != len(wantActions) {
		t.Fatalf("got %d recommendations, want %d", len(recs), len(wantActions))
	}
	for i, action := range wantActions {
		if recs[i].Action != action {
			t.Fatalf("recommendation %d action = %q, want %q", i, recs[i].Action, action)
		}
	}
	if recs[0].Type != RecommendationCritical || recs[1].Type != RecommendationUrgent {
		t.Fatalf("unexpected types: %q, %q", recs[0].Type, recs[1].Type)
	}
}

func TestBuildRecommendationsCounts(t *testing.T) {
	policy := DefaultPolicy()
	recs := BuildRecommendations(50, TicketMetrics{BySLA: SLACounts{Breached: 2}}, TaskMetrics{}, policy)

	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	if recs[0].Message != "2 ticket(s) have breached SLA. Immediate action required." {
		t.Fatalf("message = %q", recs[0].Message)
	}
}

func TestBuildRecommendationsCapacity(t *testing.T) {
	policy := DefaultPolicy()

	recs := BuildRecommendations(0, TicketMetrics{}, TaskMetrics{}, policy)
	if len(recs) != 1 || recs[0].Action != "assign_more_items" {
		t.Fatalf("got %+v, want single capacity advisory", recs)
	}

	// Mid-band score with clean metrics fires nothing.
	recs = BuildRecommendations(45, TicketMetrics{}, TaskMetrics{}, policy)
	if len(recs) != 0 {
		t.Fatalf("got %+v, want none", recs)
	}
}
