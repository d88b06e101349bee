package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Tasks          *handlers.TasksHandler
	Workload       *handlers.WorkloadHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, cfg.Users.ChangePassword)

	users := app.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/:id", cfg.Users.GetUser)
	users.Patch("/:id/role", auth.RequireRole(domain.UserRoleAdmin), cfg.Users.UpdateRole)
	users.Patch("/:id/status", auth.RequireRole(domain.UserRoleAdmin), cfg.Users.UpdateStatus)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Post("", cfg.Tickets.CreateTicket)
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Get("/stats", cfg.Tickets.Stats)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Patch("/:id", cfg.Tickets.UpdateTicket)
	tickets.Post("/:id/assign", auth.RequireAssignmentManager(), cfg.Tickets.AssignTicket)
	tickets.Patch("/:id/status", cfg.Tickets.UpdateStatus)
	tickets.Post("/:id/resolve", cfg.Tickets.ResolveTicket)
	tickets.Delete("/:id", auth.RequireRole(domain.UserRoleAdmin), cfg.Tickets.DeleteTicket)

	tasks := app.Group("/tasks", cfg.AuthMiddleware.Handle)
	tasks.Post("", cfg.Tasks.CreateTask)
	tasks.Get("", cfg.Tasks.ListTasks)
	tasks.Get("/:id", cfg.Tasks.GetTask)
	tasks.Patch("/:id", cfg.Tasks.UpdateTask)
	tasks.Post("/:id/assign", auth.RequireAssignmentManager(), cfg.Tasks.AssignTask)
	tasks.Patch("/:id/status", cfg.Tasks.UpdateStatus)
	tasks.Delete("/:id", auth.RequireRole(domain.UserRoleAdmin), cfg.Tasks.DeleteTask)

	work := app.Group("/workload", cfg.AuthMiddleware.Handle, auth.RequireAssignmentManager())
	work.Get("/users/:id", cfg.Workload.GetUserWorkload)
	work.Post("/team", cfg.Workload.GetTeamWorkload)
}
