package workload

import (
	"testing"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func TestCalculateWeightedLoadTicketBands(t *testing.T) {
	policy := DefaultPolicy()

	cases := []struct {
		name         string
		due          *time.Time
		wantWeight   int
		wantCritical int
		wantUrgent   int
	}{
		{"breached", timePtr(testNow.Add(-time.Minute)), 10, 1, 0},
		{"at risk", timePtr(testNow.Add(2 * time.Hour)), 7, 0, 1},
		{"due soon", timePtr(testNow.Add(12 * time.Hour)), 5, 0, 1},
		{"near term", timePtr(testNow.Add(48 * time.Hour)), 3, 0, 0},
		{"far out", timePtr(testNow.Add(96 * time.Hour)), 1, 0, 0},
		{"no due date", nil, 1, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tickets := []domain.Ticket{{Status: domain.TicketStatusOpen, DueDate: tc.due}}
			load := CalculateWeightedLoad(tickets, nil, testNow, policy)
			if load.TotalWeight != tc.wantWeight || load.CriticalItems != tc.wantCritical || load.UrgentItems != tc.wantUrgent {
				t.Fatalf("got weight=%d critical=%d urgent=%d, want %d/%d/%d",
					load.TotalWeight, load.CriticalItems, load.UrgentItems,
					tc.wantWeight, tc.wantCritical, tc.wantUrgent)
			}
		})
	}
}

func TestCalculateWeightedLoadTaskBands(t *testing.T) {
	policy := DefaultPolicy()

	cases := []struct {
		name         string
		deadline     *time.Time
		wantWeight   int
		wantCritical int
		wantUrgent   int
	}{
		{"overdue", timePtr(testNow.Add(-time.Hour)), 8, 1, 0},
		{"due soon", timePtr(testNow.Add(12 * time.Hour)), 5, 0, 1},
		{"near term", timePtr(testNow.Add(48 * time.Hour)), 3, 0, 0},
		{"far out", timePtr(testNow.Add(96 * time.Hour)), 1, 0, 0},
		{"no deadline", nil, 1, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tasks := []domain.Task{{Status: domain.TaskStatusTodo, Deadline: tc.deadline}}
			load := CalculateWeightedLoad(nil, tasks, testNow, policy)
			if load.TotalWeight != tc.wantWeight || load.CriticalItems != tc.wantCritical || load.UrgentItems != tc.wantUrgent {
				t.Fatalf("got weight=%d critical=%d urgent=%d, want %d/%d/%d",
					load.TotalWeight, load.CriticalItems, load.UrgentItems,
					tc.wantWeight, tc.wantCritical, tc.wantUrgent)
			}
		})
	}
}

func TestCalculateWeightedLoadAverage(t *testing.T) {
	policy := DefaultPolicy()

	tickets := []domain.Ticket{
		{Status: domain.TicketStatusOpen, DueDate: timePtr(testNow.Add(-time.Hour))}, // 10
		{Status: domain.TicketStatusOpen},                                            // 1
	}
	tasks := []domain.Task{
		{Status: domain.TaskStatusTodo, Deadline: timePtr(testNow.Add(12 * time.Hour))}, // 5
	}

	load := CalculateWeightedLoad(tickets, tasks, testNow, policy)
	if load.TotalWeight != 16 {
		t.Fatalf("total weight = %d, want 16", load.TotalWeight)
	}
	if load.AverageWeight != 5.33 {
		t.Fatalf("average weight = %v, want 5.33", load.AverageWeight)
	}
}

func TestCalculateWeightedLoadEmpty(t *testing.T) {
	load := CalculateWeightedLoad(nil, nil, testNow, DefaultPolicy())
	if load != (WeightedLoad{}) {
		t.Fatalf("load = %+v, want zero value", load)
	}
}
