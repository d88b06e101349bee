package workload

import (
	"testing"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func TestAggregateTicketMetrics(t *testing.T) {
	policy := DefaultPolicy()
	tickets := []domain.Ticket{
		{Status: domain.TicketStatusOpen, Priority: domain.TicketPriorityUrgent, DueDate: timePtr(testNow.Add(-time.Hour))},
		{Status: domain.TicketStatusAssigned, Priority: domain.TicketPriorityHigh, DueDate: timePtr(testNow.Add(2 * time.Hour))},
		{Status: domain.TicketStatusInProgress, Priority: domain.TicketPriorityMedium, DueDate: timePtr(testNow.Add(30 * time.Hour))},
		{Status: domain.TicketStatusOpen, Priority: domain.TicketPriorityLow},
	}

	metrics := AggregateTicketMetrics(tickets, testNow, policy)

	if metrics.Total != 4 {
		t.Fatalf("total = %d, want 4", metrics.Total)
	}
	if metrics.ByStatus != (TicketStatusCounts{Open: 2, Assigned: 1, InProgress: 1}) {
		t.Fatalf("by status = %+v", metrics.ByStatus)
	}
	if metrics.ByPriority != (PriorityCounts{Urgent: 1, High: 1, Medium: 1, Low: 1}) {
		t.Fatalf("by priority = %+v", metrics.ByPriority)
	}
	if metrics.BySLA != (SLACounts{Breached: 1, AtRisk: 1, OnTrack: 1, Unknown: 1}) {
		t.Fatalf("by sla = %+v", metrics.BySLA)
	}
	if metrics.Overdue != 1 {
		t.Fatalf("overdue = %d, want 1", metrics.Overdue)
	}
	// Breached tickets count toward neither due window; the 2h ticket is
	// within 24h, the 30h ticket within 7 days.
	if metrics.DueWithin24h != 1 || metrics.DueWithin7Days != 1 {
		t.Fatalf("due windows = %d/%d, want 1/1", metrics.DueWithin24h, metrics.DueWithin7Days)
	}
}

func TestAggregateTicketMetricsDueWindowBoundaries(t *testing.T) {
	policy := DefaultPolicy()
	tickets := []domain.Ticket{
		{Status: domain.TicketStatusOpen, Priority: domain.TicketPriorityLow, DueDate: timePtr(testNow)},
		{Status: domain.TicketStatusOpen, Priority: domain.TicketPriorityLow, DueDate: timePtr(testNow.Add(24 * time.Hour))},
		{Status: domain.TicketStatusOpen, Priority: domain.TicketPriorityLow, DueDate: timePtr(testNow.Add(168 * time.Hour))},
	}

	metrics := AggregateTicketMetrics(tickets, testNow, policy)

	if metrics.DueWithin24h != 1 {
		t.Fatalf("dueWithin24h = %d, want 1 (remaining in [0,24h))", metrics.DueWithin24h)
	}
	if metrics.DueWithin7Days != 1 {
		t.Fatalf("dueWithin7Days = %d, want 1 (remaining in [24h,168h))", metrics.DueWithin7Days)
	}
}

func TestAggregateTaskMetrics(t *testing.T) {
	policy := DefaultPolicy()
	tasks := []domain.Task{
		{Status: domain.TaskStatusTodo, Priority: domain.TaskPriorityUrgent, Deadline: timePtr(testNow.Add(-time.Hour)), EstimatedHours: 3},
		{Status: domain.TaskStatusInProgress, Priority: domain.TaskPriorityHigh, Deadline: timePtr(testNow.Add(12 * time.Hour)), EstimatedHours: 2.5},
		{Status: domain.TaskStatusReview, Priority: domain.TaskPriorityMedium, Deadline: timePtr(testNow.Add(100 * time.Hour))},
		{Status: domain.TaskStatusTodo, Priority: domain.TaskPriorityLow},
	}

	metrics := AggregateTaskMetrics(tasks, testNow, policy)

	if metrics.Total != 4 {
		t.Fatalf("total = %d, want 4", metrics.Total)
	}
	if metrics.ByStatus != (TaskStatusCounts{Todo: 2, InProgress: 1, Review: 1}) {
		t.Fatalf("by status = %+v", metrics.ByStatus)
	}
	if metrics.Overdue != 1 || metrics.DueWithin24h != 1 || metrics.DueWithin7Days != 1 {
		t.Fatalf("deadline counts = %d/%d/%d", metrics.Overdue, metrics.DueWithin24h, metrics.DueWithin7Days)
	}
	if metrics.TotalEstimatedHours != 5.5 {
		t.Fatalf("estimated hours = %v, want 5.5", metrics.TotalEstimatedHours)
	}
}

func TestAggregateTaskMetricsToleratesUnknownVocabulary(t *testing.T) {
	policy := DefaultPolicy()
	tasks := []domain.Task{
		{Status: "pending", Priority: "critical", EstimatedHours: 4},
		{Status: domain.TaskStatusTodo, Priority: domain.TaskPriorityLow},
	}

	metrics := AggregateTaskMetrics(tasks, testNow, policy)

	// Malformed records stay out of the bucketed counts but still count
	// toward totals and hours.
	if metrics.Total != 2 {
		t.Fatalf("total = %d, want 2", metrics.Total)
	}
	if metrics.ByStatus != (TaskStatusCounts{Todo: 1}) {
		t.Fatalf("by status = %+v", metrics.ByStatus)
	}
	if metrics.ByPriority != (PriorityCounts{Low: 1}) {
		t.Fatalf("by priority = %+v", metrics.ByPriority)
	}
	if metrics.TotalEstimatedHours != 4 {
		t.Fatalf("estimated hours = %v, want 4", metrics.TotalEstimatedHours)
	}
}

func TestAggregateEmptyInputs(t *testing.T) {
	policy := DefaultPolicy()

	if metrics := AggregateTicketMetrics(nil, testNow, policy); metrics != (TicketMetrics{}) {
		t.Fatalf("ticket metrics = %+v, want zero value", metrics)
	}
	if metrics := AggregateTaskMetrics(nil, testNow, policy); metrics != (TaskMetrics{}) {
		t.Fatalf("task metrics = %+v, want zero value", metrics)
	}
}
