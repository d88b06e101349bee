package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

type memTaskRepo struct {
	repository.TaskRepository
	mu     sync.Mutex
	nextID int
	tasks  map[string]*domain.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: map[string]*domain.Task{}}
}

func (r *memTaskRepo) Create(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	task.ID = fmt.Sprintf("k%d", r.nextID)
	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *memTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *task
	return &clone, nil
}

func (r *memTaskRepo) Update(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[task.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func newTaskService(repo *memTaskRepo, users repository.UserRepository) *TaskService {
	return NewTaskService(TaskDependencies{
		TaskRepo:   repo,
		TicketRepo: newMemTicketRepo(),
		UserRepo:   users,
		Dispatcher: &captureDispatcher{},
		Now:        func() time.Time { return testNow },
	})
}

func TestCreateTaskDefaults(t *testing.T) {
	svc := newTaskService(newMemTaskRepo(), knownUsers())

	task, err := svc.CreateTask(context.Background(), "u1", TaskCreateInput{Title: "  Update runbook  "})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if task.Title != "Update runbook" {
		t.Errorf("Title = %q", task.Title)
	}
	if task.Status != domain.TaskStatusTodo {
		t.Errorf("Status = %q, want todo", task.Status)
	}
	if task.Priority != domain.TaskPriorityMedium {
		t.Errorf("Priority = %q, want medium", task.Priority)
	}
	if task.CreatedBy != "u1" {
		t.Errorf("CreatedBy = %q, want u1", task.CreatedBy)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	svc := newTaskService(newMemTaskRepo(), knownUsers())

	_, err := svc.CreateTask(context.Background(), "u1", TaskCreateInput{Title: "   "})
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "VALIDATION_FAILED" {
		t.Errorf("blank title: error = %v, want VALIDATION_FAILED", err)
	}

	_, err = svc.CreateTask(context.Background(), "u1", TaskCreateInput{Title: "x", EstimatedHours: -1})
	if !errors.As(err, &domainErr) || domainErr.Code != "VALIDATION_FAILED" {
		t.Errorf("negative hours: error = %v, want VALIDATION_FAILED", err)
	}

	ghost := "ghost"
	_, err = svc.CreateTask(context.Background(), "u1", TaskCreateInput{Title: "x", AssignedTo: &ghost})
	if !errors.As(err, &domainErr) || domainErr.Code != "NOT_FOUND" {
		t.Errorf("unknown assignee: error = %v, want NOT_FOUND", err)
	}
}

func TestUpdateTaskDetails(t *testing.T) {
	repo := newMemTaskRepo()
	repo.tasks["k1"] = &domain.Task{
		ID: "k1", Title: "Update runbook", Status: domain.TaskStatusTodo,
		Priority: domain.TaskPriorityMedium, EstimatedHours: 2,
	}
	svc := newTaskService(repo, knownUsers())

	title := "  Update the oncall runbook  "
	hours := 4.5
	task, err := svc.UpdateTask(context.Background(), "u1", "k1", TaskUpdateInput{
		Title:          &title,
		EstimatedHours: &hours,
	})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if task.Title != "Update the oncall runbook" {
		t.Errorf("Title = %q", task.Title)
	}
	if task.EstimatedHours != 4.5 {
		t.Errorf("EstimatedHours = %v, want 4.5", task.EstimatedHours)
	}
	if task.Priority != domain.TaskPriorityMedium {
		t.Errorf("Priority = %q, want medium", task.Priority)
	}

	negative := -1.0
	_, err = svc.UpdateTask(context.Background(), "u1", "k1", TaskUpdateInput{EstimatedHours: &negative})
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "VALIDATION_FAILED" {
		t.Errorf("negative hours: error = %v, want VALIDATION_FAILED", err)
	}
}

func TestTaskStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.TaskStatus
		to      domain.TaskStatus
		allowed bool
	}{
		{"todo to in_progress", domain.TaskStatusTodo, domain.TaskStatusInProgress, true},
		{"todo to done", domain.TaskStatusTodo, domain.TaskStatusDone, false},
		{"todo cancelled", domain.TaskStatusTodo, domain.TaskStatusCancelled, true},
		{"in_progress to review", domain.TaskStatusInProgress, domain.TaskStatusReview, true},
		{"in_progress back to todo", domain.TaskStatusInProgress, domain.TaskStatusTodo, true},
		{"review to done", domain.TaskStatusReview, domain.TaskStatusDone, true},
		{"review cancelled", domain.TaskStatusReview, domain.TaskStatusCancelled, true},
		{"done is terminal", domain.TaskStatusDone, domain.TaskStatusTodo, false},
		{"cancelled is terminal", domain.TaskStatusCancelled, domain.TaskStatusInProgress, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemTaskRepo()
			repo.tasks["k1"] = &domain.Task{ID: "k1", Title: "x", Status: tt.from}
			svc := newTaskService(repo, knownUsers())

			task, err := svc.UpdateStatus(context.Background(), "u1", "k1", tt.to)
			if tt.allowed {
				if err != nil {
					t.Fatalf("UpdateStatus: %v", err)
				}
				if task.Status != tt.to {
					t.Errorf("Status = %q, want %q", task.Status, tt.to)
				}
				return
			}
			var domainErr *apperrors.DomainError
			if !errors.As(err, &domainErr) || domainErr.Code != "VALIDATION_FAILED" {
				t.Errorf("error = %v, want VALIDATION_FAILED", err)
			}
		})
	}
}

func TestAssignTaskTerminalState(t *testing.T) {
	repo := newMemTaskRepo()
	repo.tasks["k1"] = &domain.Task{ID: "k1", Title: "x", Status: domain.TaskStatusDone}
	svc := newTaskService(repo, knownUsers("u2"))

	_, err := svc.AssignTask(context.Background(), "k1", "u2", "manager")
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "CONFLICT" {
		t.Errorf("error = %v, want CONFLICT", err)
	}
}
