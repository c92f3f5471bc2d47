package newsRoutes

import (
	newsControllers "acesped/controllers/news"
	"acesped/middleware"
	"acesped/models"
	newsValidators "acesped/validators/news"

	"github.com/gofiber/fiber/v2"
)

func SetupNewsRoutes(app *fiber.App) {
	// Public
	newsGroup := app.Group("/news")
	newsGroup.Get("/", newsControllers.ListNews)
	newsGroup.Get("/:slug", newsControllers.GetNews)

	// Admin
	adminGroup := app.Group("/admin/news")
	adminGroup.Get("/", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware(models.PermissionManageNews), newsControllers.AdminListNews)
	adminGroup.Post("/", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware(models.PermissionManageNews), newsValidators.CreateNews(), newsControllers.AdminCreateNews)
	adminGroup.Put("/:id", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware(models.PermissionManageNews), newsValidators.UpdateNews(), newsControllers.AdminUpdateNews)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware(models.PermissionManageNews), newsControllers.AdminDeleteNews)
}
