package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fisiocatania_backend/internals/features/therapies/allegati/controller"
	"fisiocatania_backend/internals/helpers/media"
)

func AllegatiRoutes(api fiber.Router, db *gorm.DB, store media.Store, mediaPrefix string) {
	ctrl := controller.NewAllegatoController(db, store, mediaPrefix)

	api.Get("/terapie/:id/allegati", ctrl.ListBySession)
	api.Post("/terapie/:id/allegati", ctrl.Upload)
	api.Delete("/allegati/:id", ctrl.Delete)
}
