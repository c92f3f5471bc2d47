package programController

import (
	"encoding/json"

	"acesped/database"
	"acesped/middleware"
	"acesped/models"

	"github.com/gofiber/fiber/v2"
)

// ListPrograms returns active programmes for the public site, optionally
// filtered by category
func ListPrograms(c *fiber.Ctx) error {
	category := c.Query("category")

	db := database.Database.Db
	query := db.Model(&models.Program{}).Where("is_active = true AND is_deleted = false")
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var programs []models.Program
	if err := query.Order("name ASC").Find(&programs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch programs!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Programs fetched!", programs)
}

// GetProgram returns a single programme by id
func GetProgram(c *fiber.Ctx) error {
	programID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid program id!", nil)
	}

	var program models.Program
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", programID, false).First(&program).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Program not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Program fetched!", program)
}

// AdminCreateProgram creates a programme
func AdminCreateProgram(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedProgram").(*struct {
		Name              string   `json:"name"`
		Category          string   `json:"category"`
		Description       string   `json:"description"`
		DurationMonths    int      `json:"durationMonths"`
		EntryRequirements []string `json:"entryRequirements"`
		Banner            string   `json:"banner"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var existing models.Program
	if err := database.Database.Db.Where("name = ? AND is_deleted = ?", reqData.Name, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Program already exists!", nil)
	}

	requirements, _ := json.Marshal(reqData.EntryRequirements)

	program := models.Program{
		Name:              reqData.Name,
		Category:          models.ProgramCategory(reqData.Category),
		Description:       reqData.Description,
		DurationMonths:    reqData.DurationMonths,
		EntryRequirements: requirements,
		Banner:            reqData.Banner,
		IsActive:          true,
	}
	if program.Category == "" {
		program.Category = models.ProgramCategoryGeneral
	}
	if program.DurationMonths == 0 {
		program.DurationMonths = 12
	}

	if err := database.Database.Db.Create(&program).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create program!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Program created!", program)
}

// AdminUpdateProgram updates a programme
func AdminUpdateProgram(c *fiber.Ctx) error {
	programID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid program id!", nil)
	}

	var program models.Program
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", programID, false).First(&program).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Program not found!", nil)
	}

	reqData, ok := c.Locals("validatedProgramUpdate").(*struct {
		Name              string   `json:"name"`
		Category          string   `json:"category"`
		Description       string   `json:"description"`
		DurationMonths    int      `json:"durationMonths"`
		EntryRequirements []string `json:"entryRequirements"`
		Banner            string   `json:"banner"`
		IsActive          *bool    `json:"isActive"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Update only provided fields
	if reqData.Name != "" {
		program.Name = reqData.Name
	}
	if reqData.Category != "" {
		program.Category = models.ProgramCategory(reqData.Category)
	}
	if reqData.Description != "" {
		program.Description = reqData.Description
	}
	if reqData.DurationMonths > 0 {
		program.DurationMonths = reqData.DurationMonths
	}
	if reqData.EntryRequirements != nil {
		requirements, _ := json.Marshal(reqData.EntryRequirements)
		program.EntryRequirements = requirements
	}
	if reqData.Banner != "" {
		program.Banner = reqData.Banner
	}
	if reqData.IsActive != nil {
		program.IsActive = *reqData.IsActive
	}

	if err := database.Database.Db.Save(&program).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update program!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Program updated!", program)
}

// AdminDeleteProgram soft deletes a programme
func AdminDeleteProgram(c *fiber.Ctx) error {
	programID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid program id!", nil)
	}

	var program models.Program
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", programID, false).First(&program).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Program not found!", nil)
	}

	program.IsDeleted = true
	program.IsActive = false
	if err := database.Database.Db.Save(&program).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete program!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Program deleted!", nil)
}
