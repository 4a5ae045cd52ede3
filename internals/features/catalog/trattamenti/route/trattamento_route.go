package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fisiocatania_backend/internals/features/catalog/trattamenti/controller"
)

func TrattamentiRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTrattamentoController(db)

	g := api.Group("/trattamenti")
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.Get)
	g.Post("/", ctrl.Create)
	g.Put("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
}
