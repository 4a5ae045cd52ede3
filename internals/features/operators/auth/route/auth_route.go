package route

import (
	"github.com/gofiber/fiber/v2"

	"fisiocatania_backend/internals/features/operators/auth/controller"
	"fisiocatania_backend/internals/middlewares"
)

// AuthPublicRoutes: no token needed.
func AuthPublicRoutes(app fiber.Router, ctrl *controller.AuthController) {
	app.Get("/", ctrl.Index)
	app.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	app.Post("/logout", ctrl.Logout)
}

func AuthPageRoutes(app fiber.Router, guard fiber.Handler, ctrl *controller.AuthController) {
	app.Get("/dashboard", guard, ctrl.Dashboard)
}

func AuthAPIRoutes(api fiber.Router, ctrl *controller.AuthController) {
	api.Get("/me", ctrl.Me)
}
