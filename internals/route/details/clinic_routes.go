package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	anagraficaRoute "fisiocatania_backend/internals/features/athletes/anagrafica/route"
	distrettiRoute "fisiocatania_backend/internals/features/catalog/distretti/route"
	trattamentiRoute "fisiocatania_backend/internals/features/catalog/trattamenti/route"
	allegatiRoute "fisiocatania_backend/internals/features/therapies/allegati/route"
	terapieRoute "fisiocatania_backend/internals/features/therapies/terapie/route"
	"fisiocatania_backend/internals/helpers/media"
)

// ClinicRoutes mounts the CRUD surface under /api.
func ClinicRoutes(api fiber.Router, db *gorm.DB, store media.Store, mediaPrefix string) {
	anagraficaRoute.AnagraficaRoutes(api, db, store, mediaPrefix)
	distrettiRoute.DistrettiRoutes(api, db)
	trattamentiRoute.TrattamentiRoutes(api, db)
	terapieRoute.TerapieRoutes(api, db, store)
	allegatiRoute.AllegatiRoutes(api, db, store, mediaPrefix)
}
