package teamController

import (
	"encoding/json"

	"acesped/config"
	"acesped/database"
	"acesped/middleware"
	"acesped/models"
	"acesped/utils"

	"github.com/gofiber/fiber/v2"
)

// ListTeam returns the public team page data
func ListTeam(c *fiber.Ctx) error {
	var members []models.TeamMember
	if err := database.Database.Db.
		Where("is_deleted = false").
		Order("sort_order ASC, name ASC").
		Find(&members).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch team!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Team fetched!", members)
}

// AdminCreateTeamMember creates a team member profile
func AdminCreateTeamMember(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedTeamMember").(*struct {
		Name          string   `json:"name"`
		Title         string   `json:"title"`
		Role          string   `json:"role"`
		Bio           string   `json:"bio"`
		Email         string   `json:"email"`
		ResearchAreas []string `json:"researchAreas"`
		SortOrder     int      `json:"sortOrder"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	areas, _ := json.Marshal(reqData.ResearchAreas)

	member := models.TeamMember{
		Name:          reqData.Name,
		Title:         reqData.Title,
		Role:          reqData.Role,
		Bio:           reqData.Bio,
		Email:         reqData.Email,
		ResearchAreas: areas,
		SortOrder:     reqData.SortOrder,
	}

	// Photo arrives on the same multipart form when present; the record
	// stores the servable URL
	if file, err := c.FormFile("photo"); err == nil {
		if path, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir, "team"); err == nil {
			member.Photo = utils.GetFileURL(path)
		}
	}

	if err := database.Database.Db.Create(&member).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create team member!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Team member created!", member)
}

// AdminUpdateTeamMember updates a team member profile
func AdminUpdateTeamMember(c *fiber.Ctx) error {
	memberID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid team member id!", nil)
	}

	var member models.TeamMember
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", memberID, false).First(&member).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Team member not found!", nil)
	}

	reqData, ok := c.Locals("validatedTeamMemberUpdate").(*struct {
		Name          string   `json:"name"`
		Title         string   `json:"title"`
		Role          string   `json:"role"`
		Bio           string   `json:"bio"`
		Email         string   `json:"email"`
		ResearchAreas []string `json:"researchAreas"`
		SortOrder     *int     `json:"sortOrder"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Update only provided fields
	if reqData.Name != "" {
		member.Name = reqData.Name
	}
	if reqData.Title != "" {
		member.Title = reqData.Title
	}
	if reqData.Role != "" {
		member.Role = reqData.Role
	}
	if reqData.Bio != "" {
		member.Bio = reqData.Bio
	}
	if reqData.Email != "" {
		member.Email = reqData.Email
	}
	if reqData.ResearchAreas != nil {
		areas, _ := json.Marshal(reqData.ResearchAreas)
		member.ResearchAreas = areas
	}
	if reqData.SortOrder != nil {
		member.SortOrder = *reqData.SortOrder
	}
	if file, err := c.FormFile("photo"); err == nil {
		if path, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir, "team"); err == nil {
			member.Photo = utils.GetFileURL(path)
		}
	}

	if err := database.Database.Db.Save(&member).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update team member!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Team member updated!", member)
}

// AdminDeleteTeamMember soft deletes a team member profile
func AdminDeleteTeamMember(c *fiber.Ctx) error {
	memberID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid team member id!", nil)
	}

	var member models.TeamMember
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", memberID, false).First(&member).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Team member not found!", nil)
	}

	member.IsDeleted = true
	if err := database.Database.Db.Save(&member).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete team member!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Team member deleted!", nil)
}
