package newsController

import (
	"encoding/json"
	"strings"
	"time"

	"acesped/database"
	"acesped/middleware"
	"acesped/models"

	"github.com/gofiber/fiber/v2"
)

func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.Join(strings.Fields(slug), "-")
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, slug)
}

// ListNews returns published news for the public site
func ListNews(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db
	query := db.Model(&models.News{}).Where("is_published = true AND is_deleted = false")

	var total int64
	query.Count(&total)

	var posts []models.News
	if err := query.Order("published_at DESC").Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch news!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "News fetched!", fiber.Map{
		"news": posts,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetNews returns a single published post by slug
func GetNews(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var post models.News
	if err := database.Database.Db.Where("slug = ? AND is_published = true AND is_deleted = false", slug).First(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "News post not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "News fetched!", post)
}

// AdminCreateNews creates a news post
func AdminCreateNews(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedNews").(*struct {
		Title       string   `json:"title"`
		Summary     string   `json:"summary"`
		Body        string   `json:"body"`
		CoverImage  string   `json:"coverImage"`
		Tags        []string `json:"tags"`
		IsPublished bool     `json:"isPublished"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	tags, _ := json.Marshal(reqData.Tags)

	post := models.News{
		Title:       reqData.Title,
		Slug:        slugify(reqData.Title),
		Summary:     reqData.Summary,
		Body:        reqData.Body,
		CoverImage:  reqData.CoverImage,
		Tags:        tags,
		IsPublished: reqData.IsPublished,
		AuthorID:    userId,
	}
	if post.IsPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := database.Database.Db.Create(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create news post!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "News post created!", post)
}

// AdminUpdateNews updates a news post
func AdminUpdateNews(c *fiber.Ctx) error {
	newsID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid news id!", nil)
	}

	var post models.News
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", newsID, false).First(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "News post not found!", nil)
	}

	reqData, ok := c.Locals("validatedNewsUpdate").(*struct {
		Title       string   `json:"title"`
		Summary     string   `json:"summary"`
		Body        string   `json:"body"`
		CoverImage  string   `json:"coverImage"`
		Tags        []string `json:"tags"`
		IsPublished *bool    `json:"isPublished"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Update only provided fields
	if reqData.Title != "" {
		post.Title = reqData.Title
		post.Slug = slugify(reqData.Title)
	}
	if reqData.Summary != "" {
		post.Summary = reqData.Summary
	}
	if reqData.Body != "" {
		post.Body = reqData.Body
	}
	if reqData.CoverImage != "" {
		post.CoverImage = reqData.CoverImage
	}
	if reqData.Tags != nil {
		tags, _ := json.Marshal(reqData.Tags)
		post.Tags = tags
	}
	if reqData.IsPublished != nil {
		post.IsPublished = *reqData.IsPublished
		if post.IsPublished && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
	}

	if err := database.Database.Db.Save(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update news post!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "News post updated!", post)
}

// AdminDeleteNews soft deletes a news post
func AdminDeleteNews(c *fiber.Ctx) error {
	newsID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid news id!", nil)
	}

	var post models.News
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", newsID, false).First(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "News post not found!", nil)
	}

	post.IsDeleted = true
	if err := database.Database.Db.Save(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete news post!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "News post deleted!", nil)
}

// AdminListNews returns all posts, drafts included
func AdminListNews(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db
	query := db.Model(&models.News{}).Where("is_deleted = false")

	var total int64
	query.Count(&total)

	var posts []models.News
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch news!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "News fetched!", fiber.Map{
		"news": posts,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
