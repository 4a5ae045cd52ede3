package details

import (
	"github.com/gofiber/fiber/v2"

	"fisiocatania_backend/internals/features/reports/reportistica/controller"
	reportRoute "fisiocatania_backend/internals/features/reports/reportistica/route"
)

func ReportRoutes(app *fiber.App, pageGuard fiber.Handler, api fiber.Router, ctrl *controller.GridController) {
	reportRoute.ReportisticaPageRoutes(app, pageGuard, ctrl)
	reportRoute.ReportisticaAPIRoutes(api, ctrl)
}
