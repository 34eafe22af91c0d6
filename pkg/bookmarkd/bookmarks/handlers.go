package bookmarks

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/katisd/bookmarkd/pkg/bookmarkd/auth"
	"github.com/katisd/bookmarkd/pkg/bookmarkd/models"
)

// Handler handles bookmark requests
type Handler struct {
	service *Service
}

// NewHandler creates a bookmarks handler backed by the given database
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{service: NewService(NewStore(db))}
}

// CreateBookmarkRequest represents the request to create a bookmark
type CreateBookmarkRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Link        string `json:"link" binding:"required,url"`
}

// EditBookmarkRequest represents the request to edit a bookmark.
// Only fields present in the body are applied.
type EditBookmarkRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Link        *string `json:"link" binding:"omitempty,url"`
}

// BookmarkResponse represents a bookmark in API responses
type BookmarkResponse struct {
	ID          uint   `json:"id"`
	UserID      uint   `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func bookmarkToResponse(bookmark models.Bookmark) BookmarkResponse {
	return BookmarkResponse{
		ID:          bookmark.ID,
		UserID:      bookmark.UserID,
		Title:       bookmark.Title,
		Description: bookmark.Description,
		Link:        bookmark.Link,
		CreatedAt:   bookmark.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   bookmark.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// Create creates a new bookmark
// @Summary Create a bookmark
// @Description Create a new bookmark owned by the authenticated user
// @Tags bookmarks
// @Accept json
// @Produce json
// @Param request body CreateBookmarkRequest true "Bookmark details"
// @Success 201 {object} BookmarkResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /bookmarks [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bookmark, err := h.service.Create(userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bookmark"})
		return
	}

	c.JSON(http.StatusCreated, bookmarkToResponse(*bookmark))
}

// List returns all bookmarks owned by the authenticated user
// @Summary List bookmarks
// @Description Get all bookmarks owned by the authenticated user
// @Tags bookmarks
// @Produce json
// @Success 200 {array} BookmarkResponse
// @Security BearerAuth
// @Router /bookmarks [get]
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	bookmarks, err := h.service.List(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookmarks"})
		return
	}

	responses := make([]BookmarkResponse, len(bookmarks))
	for i, bookmark := range bookmarks {
		responses[i] = bookmarkToResponse(bookmark)
	}

	c.JSON(http.StatusOK, responses)
}

// GetByID returns a single bookmark owned by the authenticated user
// @Summary Get a bookmark
// @Description Get a bookmark by id; another user's bookmark is indistinguishable from a missing one
// @Tags bookmarks
// @Produce json
// @Param id path int true "Bookmark ID"
// @Success 200 {object} BookmarkResponse
// @Failure 400 {object} map[string]string "Invalid bookmark ID"
// @Failure 404 {object} map[string]string "Bookmark not found"
// @Security BearerAuth
// @Router /bookmarks/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bookmark ID"})
		return
	}

	bookmark, err := h.service.Get(userID, uint(id))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bookmark not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookmark"})
		return
	}

	c.JSON(http.StatusOK, bookmarkToResponse(*bookmark))
}

// Edit partially updates a bookmark
// @Summary Edit a bookmark
// @Description Update only the fields present in the body
// @Tags bookmarks
// @Accept json
// @Produce json
// @Param id path int true "Bookmark ID"
// @Param request body EditBookmarkRequest true "Fields to update"
// @Success 200 {object} BookmarkResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 403 {object} map[string]string "Access denied"
// @Security BearerAuth
// @Router /bookmarks/{id} [patch]
func (h *Handler) Edit(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bookmark ID"})
		return
	}

	var req EditBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bookmark, err := h.service.Edit(userID, uint(id), req)
	if errors.Is(err, ErrAccessDenied) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update bookmark"})
		return
	}

	c.JSON(http.StatusOK, bookmarkToResponse(*bookmark))
}

// Delete permanently removes a bookmark
// @Summary Delete a bookmark
// @Description Delete a bookmark owned by the authenticated user
// @Tags bookmarks
// @Produce json
// @Param id path int true "Bookmark ID"
// @Success 204 "No content"
// @Failure 400 {object} map[string]string "Invalid bookmark ID"
// @Failure 403 {object} map[string]string "Access denied"
// @Security BearerAuth
// @Router /bookmarks/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bookmark ID"})
		return
	}

	err = h.service.Delete(userID, uint(id))
	if errors.Is(err, ErrAccessDenied) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete bookmark"})
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers bookmark routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookmarks", h.Create)
	rg.GET("/bookmarks", h.List)
	rg.GET("/bookmarks/:id", h.GetByID)
	rg.PATCH("/bookmarks/:id", h.Edit)
	rg.DELETE("/bookmarks/:id", h.Delete)
}
