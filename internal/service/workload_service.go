package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/workload"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// WorkloadService derives workload reports from a user's active tickets
// and tasks. Reports are computed on demand and never persisted.
type WorkloadService struct {
	users   repository.UserRepository
	tickets repository.TicketRepository
	tasks   repository.TaskRepository
	policy  workload.Policy
	now     func() time.Time
}

// WorkloadDependencies bundles requirements for the workload service.
type WorkloadDependencies struct {
	UserRepo   repository.UserRepository
	TicketRepo repository.TicketRepository
	TaskRepo   repository.TaskRepository
	Policy     workload.Policy
	Now        func() time.Time
}

// NewWorkloadService constructs the service.
func NewWorkloadService(deps WorkloadDependencies) *WorkloadService {
	svc := &WorkloadService{
		users:   deps.UserRepo,
		tickets: deps.TicketRepo,
		tasks:   deps.TaskRepo,
		policy:  deps.Policy,
		now:     deps.Now,
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc
}

// CalculateUserWorkload builds the workload report for a single user from
// their active tickets and tasks, evaluated at a single instant.
func (s *WorkloadService) CalculateUserWorkload(ctx context.Context, userID string) (*workload.Report, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, apperrors.MapError(err)
	}

	tickets, err := s.tickets.ListActiveByAssignee(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("workload calculation failed: %w", err)
	}
	tasks, err := s.tasks.ListActiveByAssignee(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("workload calculation failed: %w", err)
	}

	return workload.BuildReport(userID, tickets, tasks, s.now(), s.policy), nil
}

// GetTeamWorkload computes reports for every listed user concurrently and
// aggregates them. Any single failure fails the whole request; report order
// follows the input order.
func (s *WorkloadService) GetTeamWorkload(ctx context.Context, userIDs []string) (*workload.TeamReport, error) {
	if len(userIDs) == 0 {
		return nil, apperrors.NewValidationError("userIds must not be empty", nil)
	}

	reports := make([]*workload.Report, len(userIDs))
	errs := make([]error, len(userIDs))

	var wg sync.WaitGroup
	for i, userID := range userIDs {
		wg.Add(1)
		go func(i int, userID string) {
			defer wg.Done()
			reports[i], errs[i] = s.CalculateUserWorkload(ctx, userID)
		}(i, userID)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return workload.BuildTeamReport(reports), nil
}

// ListManagedUserIDs returns IDs of users whose workload managers typically
// review, used when a team request wants the whole member pool.
func (s *WorkloadService) ListManagedUserIDs(ctx context.Context) ([]string, error) {
	ids, err := s.users.ListIDsByRole(ctx, []domain.UserRole{domain.UserRoleMember, domain.UserRoleManager})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return ids, nil
}
