package applicantRoutes

import (
	applicantControllers "acesped/controllers/applicant"
	"acesped/middleware"
	"acesped/models"
	applicantValidators "acesped/validators/applicant"

	"github.com/gofiber/fiber/v2"
)

func SetupApplicantRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/applicants")

	adminGroup.Get("/", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware(models.PermissionManageApplicants), applicantControllers.AdminListApplicants)
	adminGroup.Get("/skills", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware(models.PermissionManageApplicants), applicantControllers.AdminListSkillApplicants)
	adminGroup.Get("/:id", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware(models.PermissionManageApplicants), applicantControllers.AdminGetApplicant)
	adminGroup.Patch("/:id/status", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware(models.PermissionManageApplicants), applicantValidators.UpdateStatus(), applicantControllers.AdminUpdateApplicantStatus)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware(models.PermissionManageApplicants), applicantControllers.AdminDeleteApplicant)
}
