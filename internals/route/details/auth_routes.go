package details

import (
	"github.com/gofiber/fiber/v2"

	"fisiocatania_backend/internals/features/operators/auth/controller"
	authRoute "fisiocatania_backend/internals/features/operators/auth/route"
	operatoriRoute "fisiocatania_backend/internals/features/operators/operatori/route"
	operatoreService "fisiocatania_backend/internals/features/operators/operatori/service"
)

func AuthRoutes(app *fiber.App, pageGuard fiber.Handler, api fiber.Router, ctrl *controller.AuthController) {
	authRoute.AuthPublicRoutes(app, ctrl)
	authRoute.AuthPageRoutes(app, pageGuard, ctrl)
	authRoute.AuthAPIRoutes(api, ctrl)
}

func OperatorRoutes(api fiber.Router, svc *operatoreService.OperatoreService) {
	operatoriRoute.OperatoriRoutes(api, svc)
}
