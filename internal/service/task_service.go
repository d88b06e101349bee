package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

var allowedTaskTransitions = map[domain.TaskStatus][]domain.TaskStatus{
	domain.TaskStatusTodo:       {domain.TaskStatusInProgress, domain.TaskStatusCancelled},
	domain.TaskStatusInProgress: {domain.TaskStatusReview, domain.TaskStatusTodo, domain.TaskStatusCancelled},
	domain.TaskStatusReview:     {domain.TaskStatusDone, domain.TaskStatusInProgress, domain.TaskStatusCancelled},
	domain.TaskStatusDone:       {},
	domain.TaskStatusCancelled:  {},
}

// TaskService coordinates task workflows.
type TaskService struct {
	tasks      repository.TaskRepository
	tickets    repository.TicketRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// TaskDependencies bundles repositories for task service.
type TaskDependencies struct {
	TaskRepo   repository.TaskRepository
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Now        func() time.Time
}

// NewTaskService constructs the service.
func NewTaskService(deps TaskDependencies) *TaskService {
	svc := &TaskService{
		tasks:      deps.TaskRepo,
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		now:        deps.Now,
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc
}

// TaskCreateInput describes task creation payload.
type TaskCreateInput struct {
	Title          string
	Description    string
	Priority       domain.TaskPriority
	Tags           []string
	AssignedTo     *string
	TicketID       *string
	Deadline       *time.Time
	EstimatedHours float64
}

// TaskListFilter describes listing filters.
type TaskListFilter struct {
	AssignedTo *string
	CreatedBy  *string
	TicketID   *string
	Statuses   []domain.TaskStatus
	Priorities []domain.TaskPriority
	Limit      int
	Offset     int
}

// CreateTask validates input and persists the task.
func (s *TaskService) CreateTask(ctx context.Context, createdBy string, input TaskCreateInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("task title is required", nil)
	}
	if input.EstimatedHours < 0 {
		return nil, apperrors.NewValidationError("estimated hours must not be negative", nil)
	}
	if input.TicketID != nil {
		if _, err := s.tickets.GetByID(ctx, *input.TicketID); err != nil {
			return nil, apperrors.MapError(err)
		}
	}
	if input.AssignedTo != nil {
		if _, err := s.users.GetByID(ctx, *input.AssignedTo); err != nil {
			return nil, apperrors.MapError(err)
		}
	}

	task := &domain.Task{
		Title:          title,
		Description:    strings.TrimSpace(input.Description),
		Status:         domain.TaskStatusTodo,
		Priority:       input.Priority,
		Tags:           input.Tags,
		CreatedBy:      createdBy,
		AssignedTo:     input.AssignedTo,
		TicketID:       input.TicketID,
		Deadline:       input.Deadline,
		EstimatedHours: input.EstimatedHours,
	}
	if task.Priority == "" {
		task.Priority = domain.TaskPriorityMedium
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, createdBy, events.EventTaskCreated, events.TaskCreatedPayload{
		TaskID:     task.ID,
		Title:      task.Title,
		Priority:   task.Priority,
		TicketID:   task.TicketID,
		AssignedTo: task.AssignedTo,
	})
	return task, nil
}

// GetTask fetches a task by ID.
func (s *TaskService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return task, nil
}

// ListTasks returns tasks matching the filter.
func (s *TaskService) ListTasks(ctx context.Context, filter TaskListFilter) ([]domain.Task, error) {
	tasks, err := s.tasks.ListWithFilter(ctx, repository.TaskFilter{
		AssignedTo: filter.AssignedTo,
		CreatedBy:  filter.CreatedBy,
		TicketID:   filter.TicketID,
		Statuses:   filter.Statuses,
		Priorities: filter.Priorities,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tasks, nil
}

// TaskUpdateInput carries the mutable descriptive fields. Nil fields are
// left untouched.
type TaskUpdateInput struct {
	Title          *string
	Description    *string
	Priority       *domain.TaskPriority
	Tags           []string
	Deadline       *time.Time
	EstimatedHours *float64
}

// UpdateTask applies descriptive edits to a task.
func (s *TaskService) UpdateTask(ctx context.Context, actorID, taskID string, input TaskUpdateInput) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apperrors.NewValidationError("task title must not be blank", nil)
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = strings.TrimSpace(*input.Description)
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.Tags != nil {
		task.Tags = input.Tags
	}
	if input.Deadline != nil {
		task.Deadline = input.Deadline
	}
	if input.EstimatedHours != nil {
		if *input.EstimatedHours < 0 {
			return nil, apperrors.NewValidationError("estimated hours must not be negative", nil)
		}
		task.EstimatedHours = *input.EstimatedHours
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, apperrors.MapError(err)
	}
	return task, nil
}

// AssignTask assigns the task to a user.
func (s *TaskService) AssignTask(ctx context.Context, taskID, userID, assignedBy string) (*domain.Task, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, apperrors.MapError(err)
	}
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if task.Status == domain.TaskStatusDone || task.Status == domain.TaskStatusCancelled {
		return nil, apperrors.NewConflict("task is no longer active", nil)
	}

	task.AssignedTo = &userID
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, assignedBy, events.EventTaskAssigned, events.TaskAssignedPayload{
		TaskID:     task.ID,
		Title:      task.Title,
		AssignedTo: userID,
		AssignedBy: assignedBy,
	})
	return task, nil
}

// UpdateStatus moves a task along the allowed transition table.
func (s *TaskService) UpdateStatus(ctx context.Context, actorID, taskID string, newStatus domain.TaskStatus) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !isValidTaskTransition(task.Status, newStatus) {
		return nil, apperrors.NewValidationError("invalid status transition", map[string]any{
			"from": task.Status,
			"to":   newStatus,
		})
	}

	oldStatus := task.Status
	task.Status = newStatus
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, actorID, events.EventTaskStatusChanged, events.TaskStatusChangedPayload{
		TaskID:    task.ID,
		Title:     task.Title,
		OldStatus: oldStatus,
		NewStatus: newStatus,
	})
	return task, nil
}

// DeleteTask soft-deletes a task.
func (s *TaskService) DeleteTask(ctx context.Context, taskID string) error {
	if err := s.tasks.SoftDelete(ctx, taskID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *TaskService) publishEvent(ctx context.Context, actorID string, eventType events.EventType, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: s.now(),
		Payload:   payload,
	})
}

func isValidTaskTransition(current, next domain.TaskStatus) bool {
	for _, candidate := range allowedTaskTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
