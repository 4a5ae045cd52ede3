package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fisiocatania_backend/internals/features/athletes/anagrafica/controller"
	"fisiocatania_backend/internals/helpers/media"
)

func AnagraficaRoutes(api fiber.Router, db *gorm.DB, store media.Store, mediaPrefix string) {
	ctrl := controller.NewAnagraficaController(db, store, mediaPrefix)

	g := api.Group("/anagrafica")
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.Get)
	g.Post("/", ctrl.Create)
	g.Put("/:id", ctrl.Update)
	g.Patch("/:id/infortunio", ctrl.SetInfortunio)
	g.Post("/:id/foto", ctrl.UploadFoto)
	g.Delete("/:id", ctrl.Delete)
}
