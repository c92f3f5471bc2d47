package applicantController

import (
	"acesped/database"
	"acesped/middleware"
	"acesped/models"
	"acesped/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminListApplicants returns general applicants with status filter and
// name/email/application-number search
func AdminListApplicants(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	status := c.Query("status")
	search := c.Query("search")

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.Database.Db
	query := db.Model(&models.Applicant{}).Where("is_deleted = false")

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"application_number LIKE ? OR email LIKE ? OR first_name LIKE ? OR last_name LIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	query.Count(&total)

	var applicants []models.Applicant
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&applicants).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch applicants!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Applicants fetched!", fiber.Map{
		"applicants": applicants,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// AdminListSkillApplicants returns skills-training applicants
func AdminListSkillApplicants(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	status := c.Query("status")

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.Database.Db
	query := db.Model(&models.SkillApplicant{}).Where("is_deleted = false")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var applicants []models.SkillApplicant
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&applicants).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch applicants!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Applicants fetched!", fiber.Map{
		"applicants": applicants,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// AdminGetApplicant returns a single applicant with payment facts
func AdminGetApplicant(c *fiber.Ctx) error {
	applicantID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid applicant id!", nil)
	}

	var applicant models.Applicant
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", applicantID, false).First(&applicant).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Applicant not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Applicant fetched!", applicant)
}

// AdminUpdateApplicantStatus moves an application through review. Payment
// triples are owned by the reconciliation flow and cannot be set here.
func AdminUpdateApplicantStatus(c *fiber.Ctx) error {
	applicantID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid applicant id!", nil)
	}

	var applicant models.Applicant
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", applicantID, false).First(&applicant).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Applicant not found!", nil)
	}

	reqData, ok := c.Locals("validatedStatusUpdate").(*struct {
		Status string `json:"status"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	newStatus := models.ApplicantStatus(reqData.Status)

	// Review requires a paid application fee
	if newStatus != models.ApplicantStatusPending && !applicant.ApplicationFeePaid {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Application fee has not been paid!", nil)
	}

	previous := applicant.Status
	applicant.Status = newStatus
	if err := database.Database.Db.Model(&applicant).Update("status", newStatus).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update status!", nil)
	}

	if newStatus == models.ApplicantStatusAdmitted && previous != models.ApplicantStatusAdmitted {
		go utils.SendAdmissionDecisionEmail(applicant.Email, applicant.FirstName, applicant.ApplicationNumber, true)
	}
	if newStatus == models.ApplicantStatusRejected && previous != models.ApplicantStatusRejected {
		go utils.SendAdmissionDecisionEmail(applicant.Email, applicant.FirstName, applicant.ApplicationNumber, false)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Status updated!", applicant)
}

// AdminDeleteApplicant soft deletes an application
func AdminDeleteApplicant(c *fiber.Ctx) error {
	applicantID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid applicant id!", nil)
	}

	var applicant models.Applicant
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", applicantID, false).First(&applicant).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Applicant not found!", nil)
	}

	applicant.IsDeleted = true
	if err := database.Database.Db.Save(&applicant).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete applicant!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Applicant deleted!", nil)
}
