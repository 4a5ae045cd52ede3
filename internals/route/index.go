package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	authController "fisiocatania_backend/internals/features/operators/auth/controller"
	reportController "fisiocatania_backend/internals/features/reports/reportistica/controller"
	authMiddleware "fisiocatania_backend/internals/middlewares/auth"
	routeDetails "fisiocatania_backend/internals/route/details"
)

func SetupRoutes(app *fiber.App, d *Deps) {
	cfg := d.Cfg

	log.Info().Msg("setting up base routes")
	BaseRoutes(app, d)

	authCtrl := authController.NewAuthController(d.Operators, d.Sessions, cfg.JWTSecret, cfg.JWTTTL, cfg.CookieSecure, cfg.AppName, d.Location)
	gridCtrl := reportController.NewGridController(d.Grid, d.Sheet, d.Dossier, d.Location)

	// page routes redirect to "/" without a token, /api answers 401
	pageGuard := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              cfg.JWTSecret,
		Sessions:            d.Sessions,
		AllowCookieFallback: true,
		RedirectTo:          "/",
	})
	api := app.Group("/api", authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              cfg.JWTSecret,
		Sessions:            d.Sessions,
		AllowCookieFallback: true,
	}))

	log.Info().Msg("mounting auth routes")
	routeDetails.AuthRoutes(app, pageGuard, api, authCtrl)
	routeDetails.OperatorRoutes(api, d.Operators)

	log.Info().Msg("mounting clinic routes")
	routeDetails.ClinicRoutes(api, d.DB, d.Media, cfg.Media.Prefix)

	log.Info().Msg("mounting report routes")
	routeDetails.ReportRoutes(app, pageGuard, api, gridCtrl)
}
