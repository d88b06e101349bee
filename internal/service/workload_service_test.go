package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/workload"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func timePtr(t time.Time) *time.Time { return &t }

func floatPtr(f float64) *float64 { return &f }

type stubUserRepo struct {
	repository.UserRepository
	users map[string]*domain.User
}

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

type stubTicketRepo struct {
	repository.TicketRepository
	byAssignee map[string][]domain.Ticket
	listErr    error
}

func (s *stubTicketRepo) ListActiveByAssignee(_ context.Context, userID string) ([]domain.Ticket, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.byAssignee[userID], nil
}

type stubTaskRepo struct {
	repository.TaskRepository
	byAssignee map[string][]domain.Task
	listErr    error
}

func (s *stubTaskRepo) ListActiveByAssignee(_ context.Context, userID string) ([]domain.Task, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.byAssignee[userID], nil
}

func knownUsers(ids ...string) *stubUserRepo {
	users := make(map[string]*domain.User, len(ids))
	for _, id := range ids {
		users[id] = &domain.User{ID: id, Role: domain.UserRoleMember, Status: domain.UserStatusActive}
	}
	return &stubUserRepo{users: users}
}

func newWorkloadService(users repository.UserRepository, tickets repository.TicketRepository, tasks repository.TaskRepository) *WorkloadService {
	return NewWorkloadService(WorkloadDependencies{
		UserRepo:   users,
		TicketRepo: tickets,
		TaskRepo:   tasks,
		Policy:     workload.DefaultPolicy(),
		Now:        func() time.Time { return testNow },
	})
}

func TestCalculateUserWorkload(t *testing.T) {
	tickets := &stubTicketRepo{byAssignee: map[string][]domain.Ticket{
		"u1": {
			{
				ID:                      "t1",
				Number:                  "TCK-0001",
				Subject:                 "Payment gateway down",
				Status:                  domain.TicketStatusInProgress,
				Priority:                domain.TicketPriorityHigh,
				DueDate:                 timePtr(testNow.Add(2 * time.Hour)),
				EstimatedResolutionTime: floatPtr(24),
			},
		},
	}}
	tasks := &stubTaskRepo{byAssignee: map[string][]domain.Task{
		"u1": {
			{
				ID:             "k1",
				Title:          "Write incident report",
				Status:         domain.TaskStatusTodo,
				Priority:       domain.TaskPriorityMedium,
				Deadline:       timePtr(testNow.Add(200 * time.Hour)),
				EstimatedHours: 8,
			},
		},
	}}

	svc := newWorkloadService(knownUsers("u1"), tickets, tasks)
	report, err := svc.CalculateUserWorkload(context.Background(), "u1")
	if err != nil {
		t.Fatalf("CalculateUserWorkload: %v", err)
	}

	if report.UserID != "u1" {
		t.Errorf("UserID = %q, want %q", report.UserID, "u1")
	}
	if report.Summary.TotalItems != 2 {
		t.Errorf("TotalItems = %d, want 2", report.Summary.TotalItems)
	}
	if report.SLA.TotalWeight != 8 {
		t.Errorf("TotalWeight = %d, want 8", report.SLA.TotalWeight)
	}
	if report.Summary.EstimatedHours != 32 {
		t.Errorf("EstimatedHours = %v, want 32", report.Summary.EstimatedHours)
	}
	if report.Summary.Score != 32 {
		t.Errorf("Score = %d, want 32", report.Summary.Score)
	}
	if report.Summary.Level != workload.LevelMedium {
		t.Errorf("Level = %q, want %q", report.Summary.Level, workload.LevelMedium)
	}
	if len(report.Breakdown.BySLA.AtRisk) != 1 || report.Breakdown.BySLA.AtRisk[0].Number != "TCK-0001" {
		t.Fatalf("AtRisk bucket = %+v, want single TCK-0001", report.Breakdown.BySLA.AtRisk)
	}
	if hours := report.Breakdown.BySLA.AtRisk[0].HoursRemaining; hours == nil || *hours != 2 {
		t.Errorf("HoursRemaining = %v, want 2", hours)
	}
}

func TestCalculateUserWorkloadUnknownUser(t *testing.T) {
	svc := newWorkloadService(knownUsers(), &stubTicketRepo{}, &stubTaskRepo{})

	_, err := svc.CalculateUserWorkload(context.Background(), "ghost")
	if err == nil {
		t.Fatal("expected error for unknown user")
	}
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "NOT_FOUND" {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
}

func TestCalculateUserWorkloadFetchFailure(t *testing.T) {
	tickets := &stubTicketRepo{listErr: errors.New("connection reset")}
	svc := newWorkloadService(knownUsers("u1"), tickets, &stubTaskRepo{})

	_, err := svc.CalculateUserWorkload(context.Background(), "u1")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "workload calculation failed") {
		t.Errorf("error = %q, want workload calculation failed wrapper", err)
	}
	if !strings.Contains(err.Error(), "connection reset") {
		t.Errorf("error = %q, want wrapped cause", err)
	}
}

func TestGetTeamWorkloadEmptyInput(t *testing.T) {
	svc := newWorkloadService(knownUsers(), &stubTicketRepo{}, &stubTaskRepo{})

	_, err := svc.GetTeamWorkload(context.Background(), nil)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "VALIDATION_FAILED" {
		t.Errorf("error = %v, want VALIDATION_FAILED", err)
	}
}

func TestGetTeamWorkload(t *testing.T) {
	tickets := &stubTicketRepo{byAssignee: map[string][]domain.Ticket{
		"u1": {
			{ID: "t1", Number: "TCK-0001", Status: domain.TicketStatusOpen,
				Priority: domain.TicketPriorityUrgent, DueDate: timePtr(testNow.Add(-time.Hour))},
		},
	}}
	tasks := &stubTaskRepo{byAssignee: map[string][]domain.Task{}}

	svc := newWorkloadService(knownUsers("u1", "u2"), tickets, tasks)
	team, err := svc.GetTeamWorkload(context.Background(), []string{"u1", "u2"})
	if err != nil {
		t.Fatalf("GetTeamWorkload: %v", err)
	}

	if team.Stats.TotalMembers != 2 {
		t.Errorf("TotalMembers = %d, want 2", team.Stats.TotalMembers)
	}
	if len(team.Members) != 2 {
		t.Fatalf("Members = %d, want 2", len(team.Members))
	}
	// report order must follow the requested order
	if team.Members[0].UserID != "u1" || team.Members[1].UserID != "u2" {
		t.Errorf("member order = %q,%q, want u1,u2", team.Members[0].UserID, team.Members[1].UserID)
	}
	if team.Members[1].Score != 0 || team.Members[1].Level != workload.LevelLow {
		t.Errorf("idle member = %+v, want score 0 low", team.Members[1])
	}
	// one breached ticket scores 17, so both members sit in the low band
	if team.Stats.CapacityMembers != 2 {
		t.Errorf("CapacityMembers = %d, want 2", team.Stats.CapacityMembers)
	}
	if team.Stats.AverageScore != 9 {
		t.Errorf("AverageScore = %d, want 9", team.Stats.AverageScore)
	}
}

func TestGetTeamWorkloadAllOrNothing(t *testing.T) {
	svc := newWorkloadService(knownUsers("u1"), &stubTicketRepo{}, &stubTaskRepo{})

	_, err := svc.GetTeamWorkload(context.Background(), []string{"u1", "ghost"})
	if err == nil {
		t.Fatal("expected failure when any member lookup fails")
	}
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "NOT_FOUND" {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
}
