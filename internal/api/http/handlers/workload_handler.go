package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// WorkloadHandler serves workload reports.
type WorkloadHandler struct {
	service *service.WorkloadService
}

// NewWorkloadHandler constructs handler.
func NewWorkloadHandler(workloadService *service.WorkloadService) *WorkloadHandler {
	return &WorkloadHandler{service: workloadService}
}

// GetUserWorkload GET /workload/users/:id.
func (h *WorkloadHandler) GetUserWorkload(c *fiber.Ctx) error {
	report, err := h.service.CalculateUserWorkload(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": report})
}

// GetTeamWorkload POST /workload/team.
func (h *WorkloadHandler) GetTeamWorkload(c *fiber.Ctx) error {
	var req dto.TeamWorkloadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	userIDs := req.UserIDs
	if req.All {
		ids, err := h.service.ListManagedUserIDs(c.Context())
		if err != nil {
			return err
		}
		userIDs = ids
	}

	report, err := h.service.GetTeamWorkload(c.Context(), userIDs)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": report})
}
