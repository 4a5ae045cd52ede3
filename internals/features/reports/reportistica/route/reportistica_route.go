package route

import (
	"github.com/gofiber/fiber/v2"

	"fisiocatania_backend/internals/features/reports/reportistica/controller"
)

// ReportisticaPageRoutes: download and page endpoints, behind the page guard.
func ReportisticaPageRoutes(app fiber.Router, guard fiber.Handler, ctrl *controller.GridController) {
	r := app.Group("/reportistica", guard)
	r.Get("/", ctrl.GetGrid)
	r.Get("/export", ctrl.ExportSheet)
	r.Get("/export-pdf", ctrl.ExportDayPDF)

	f := app.Group("/fascicoli", guard)
	f.Get("/:id/export-range", ctrl.ExportAthleteRange)
}

// ReportisticaAPIRoutes: grid edits, behind the API guard.
func ReportisticaAPIRoutes(api fiber.Router, ctrl *controller.GridController) {
	r := api.Group("/reportistica")
	r.Post("/upsert", ctrl.UpsertCell)
	r.Post("/copia", ctrl.CopyForward)
}
