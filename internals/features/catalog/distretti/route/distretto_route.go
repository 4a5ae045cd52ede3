package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fisiocatania_backend/internals/features/catalog/distretti/controller"
)

func DistrettiRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewDistrettoController(db)

	g := api.Group("/distretti")
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.Get)
	g.Post("/", ctrl.Create)
	g.Put("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
}
