package programRoutes

import (
	programControllers "acesped/controllers/program"
	"acesped/middleware"
	"acesped/models"
	programValidators "acesped/validators/program"

	"github.com/gofiber/fiber/v2"
)

func SetupProgramRoutes(app *fiber.App) {
	// Public
	programGroup := app.Group("/programs")
	programGroup.Get("/", programControllers.ListPrograms)
	programGroup.Get("/:id", programControllers.GetProgram)

	// Admin
	adminGroup := app.Group("/admin/programs")
	adminGroup.Post("/", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware(models.PermissionManagePrograms), programValidators.CreateProgram(), programControllers.AdminCreateProgram)
	adminGroup.Put("/:id", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware(models.PermissionManagePrograms), programValidators.UpdateProgram(), programControllers.AdminUpdateProgram)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware(models.PermissionManagePrograms), programControllers.AdminDeleteProgram)
}
