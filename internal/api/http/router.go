package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/kanban-service/internal/api/http/handlers"
	"github.com/spec-kit/kanban-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	App        *handlers.AppHandler
	Users      *handlers.UsersHandler
	Roles      *handlers.RolesHandler
	Grants     *handlers.GrantsHandler
	Links      *handlers.LinksHandler
	Activities *handlers.ActivitiesHandler
	Boards     *handlers.BoardsHandler
	Cards      *handlers.CardsHandler
	Gate       *auth.Gate
}

// RegisterRoutes wires HTTP routes. The gate runs before every handler; route
// classification (public, logged-out, protected) lives in the gate's
// classifier, not here.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Gate.Handle)

	app.Get("/app", cfg.App.Status)

	app.Post("/users/create", cfg.Users.Register)
	app.Post("/users/confirm", cfg.Users.Confirm)
	app.Post("/users/resend", cfg.Users.Resend)
	app.Post("/users/login", cfg.Users.Login)
	app.Post("/users/logout", cfg.Users.Logout)
	app.Post("/users/refresh", cfg.Users.Refresh)
	app.Post("/users/reset", cfg.Users.Reset)
	app.Post("/users/change", cfg.Users.Change)
	app.Post("/users/update", cfg.Users.Update)

	app.Get("/users", cfg.Users.Browse)
	app.Post("/users", cfg.Users.Add)
	app.Get("/users/:id", cfg.Users.Read)
	app.Put("/users/:id", cfg.Users.Edit)
	app.Delete("/users/:id", cfg.Users.Delete)

	app.Get("/roles", cfg.Roles.Browse)
	app.Post("/roles", cfg.Roles.Add)
	app.Get("/roles/:id", cfg.Roles.Read)
	app.Put("/roles/:id", cfg.Roles.Edit)
	app.Delete("/roles/:id", cfg.Roles.Delete)

	app.Get("/privilege-links", cfg.Grants.Browse)
	app.Post("/privilege-links", cfg.Grants.Add)
	app.Get("/privilege-links/:id", cfg.Grants.Read)
	app.Delete("/privilege-links/:id", cfg.Grants.Delete)

	app.Get("/user-links", cfg.Links.Browse)
	app.Post("/user-links", cfg.Links.Add)
	app.Get("/user-links/:id", cfg.Links.Read)
	app.Delete("/user-links/:id", cfg.Links.Delete)

	app.Get("/activities", cfg.Activities.Browse)
	app.Get("/activities/:id", cfg.Activities.Read)

	app.Get("/boards", cfg.Boards.Browse)
	app.Post("/boards", cfg.Boards.Add)
	app.Get("/boards/:id", cfg.Boards.Read)
	app.Put("/boards/:id", cfg.Boards.Edit)
	app.Delete("/boards/:id", cfg.Boards.Delete)

	app.Get("/cards", cfg.Cards.Browse)
	app.Post("/cards", cfg.Cards.Add)
	app.Get("/cards/:id", cfg.Cards.Read)
	app.Put("/cards/:id", cfg.Cards.Edit)
	app.Delete("/cards/:id", cfg.Cards.Delete)
}
