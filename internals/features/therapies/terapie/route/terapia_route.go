package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fisiocatania_backend/internals/features/therapies/terapie/controller"
	"fisiocatania_backend/internals/helpers/media"
)

func TerapieRoutes(api fiber.Router, db *gorm.DB, store media.Store) {
	ctrl := controller.NewTerapiaController(db, store)

	g := api.Group("/terapie")
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.Get)
	g.Post("/", ctrl.Create)
	g.Put("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
}
