package teamRoutes

import (
	teamControllers "acesped/controllers/team"
	"acesped/middleware"
	"acesped/models"
	teamValidators "acesped/validators/team"

	"github.com/gofiber/fiber/v2"
)

func SetupTeamRoutes(app *fiber.App) {
	// Public
	app.Get("/team", teamControllers.ListTeam)

	// Admin
	adminGroup := app.Group("/admin/team")
	adminGroup.Post("/", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware(models.PermissionManageTeam), teamValidators.CreateTeamMember(), teamControllers.AdminCreateTeamMember)
	adminGroup.Put("/:id", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware(models.PermissionManageTeam), teamValidators.UpdateTeamMember(), teamControllers.AdminUpdateTeamMember)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware(models.PermissionManageTeam), teamControllers.AdminDeleteTeamMember)
}
