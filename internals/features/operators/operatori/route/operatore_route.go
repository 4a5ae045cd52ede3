package route

import (
	"github.com/gofiber/fiber/v2"

	"fisiocatania_backend/internals/features/operators/operatori/controller"
	"fisiocatania_backend/internals/features/operators/operatori/service"
	authMiddleware "fisiocatania_backend/internals/middlewares/auth"
)

// OperatoriRoutes: admin only.
func OperatoriRoutes(api fiber.Router, svc *service.OperatoreService) {
	ctrl := controller.NewOperatoreController(svc)

	g := api.Group("/operatori", authMiddleware.RequireAdmin())
	g.Get("/", ctrl.List)
	g.Post("/", ctrl.Create)
	g.Delete("/:id", ctrl.Delete)
}
