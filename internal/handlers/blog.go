package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/avencia/company-cms-api/internal/dto"
	apierrors "github.com/avencia/company-cms-api/internal/errors"
	"github.com/avencia/company-cms-api/internal/middleware"
	"github.com/avencia/company-cms-api/internal/models"
	"github.com/avencia/company-cms-api/internal/repository"
	"github.com/avencia/company-cms-api/internal/services"
	"github.com/avencia/company-cms-api/internal/utils"
)

// BlogHandler coordinates blog HTTP handlers.
type BlogHandler struct {
	blogService *services.BlogService
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(blogService *services.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// ListPublished returns published posts for the public site.
func (h *BlogHandler) ListPublished(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	posts, total, err := h.blogService.ListPosts(services.ListPostsInput{
		Language:      c.Query("language"),
		Tag:           c.Query("tag"),
		Search:        c.Query("search"),
		PublishedOnly: true,
		SortBy:        c.DefaultQuery("sort", "published_at"),
		SortDesc:      c.DefaultQuery("order", "desc") == "desc",
		Page:          params.Page,
		PageSize:      params.Limit,
	})
	if err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}

	apierrors.OK(c, http.StatusOK, "", dto.NewBlogPostListResponse(posts, utils.NewPaginationMeta(params, total)))
}

// GetBySlug returns a published post by slug and counts the view. Editors get
// a preview instead: drafts are visible to them and no view is counted.
func (h *BlogHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	language := c.Query("language")

	if middleware.HoldsRole(c, models.RoleEditor) {
		post, err := h.blogService.PreviewPost(slug, language)
		if err != nil {
			respondBlogError(c, err)
			return
		}
		apierrors.OK(c, http.StatusOK, "", dto.ToBlogPostDTO(*post, true))
		return
	}

	post, err := h.blogService.GetPublishedPost(slug, language)
	if err != nil {
		respondBlogError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "", dto.ToBlogPostDTO(*post, true))
}

// ListAll returns posts in every status for the admin console.
func (h *BlogHandler) ListAll(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	input := services.ListPostsInput{
		Language: c.Query("language"),
		Tag:      c.Query("tag"),
		Search:   c.Query("search"),
		SortBy:   c.Query("sort"),
		SortDesc: c.DefaultQuery("order", "desc") == "desc",
		Page:     params.Page,
		PageSize: params.Limit,
	}
	if v := c.Query("status"); v != "" {
		status := models.BlogPostStatus(v)
		input.Status = &status
	}
	if v := c.Query("author_id"); v != "" {
		authorID, err := uuid.Parse(v)
		if err != nil {
			apierrors.BadRequest(c, "", "Invalid author_id parameter")
			return
		}
		input.AuthorID = &authorID
	}

	posts, total, err := h.blogService.ListPosts(input)
	if err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}

	apierrors.OK(c, http.StatusOK, "", dto.NewBlogPostListResponse(posts, utils.NewPaginationMeta(params, total)))
}

// Get returns a post by ID for the admin console.
func (h *BlogHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	post, err := h.blogService.GetPost(id)
	if err != nil {
		respondBlogError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "", dto.ToBlogPostDTO(*post, true))
}

// Create creates a blog post.
func (h *BlogHandler) Create(c *gin.Context) {
	type CreatePostRequest struct {
		Title    string   `json:"title" binding:"required"`
		Content  string   `json:"content" binding:"required"`
		Excerpt  string   `json:"excerpt"`
		Status   string   `json:"status"`
		Language string   `json:"language"`
		Tags     []string `json:"tags"`
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "", "Invalid request body")
		return
	}

	authorID, _ := middleware.GetUserID(c)

	post, err := h.blogService.CreatePost(services.CreatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		Status:   models.BlogPostStatus(req.Status),
		Language: req.Language,
		Tags:     req.Tags,
		AuthorID: authorID,
	})
	if err != nil {
		respondBlogError(c, err)
		return
	}

	middleware.SetAuditEntityID(c, post.ID.String())
	apierrors.OK(c, http.StatusCreated, "Post created", dto.ToBlogPostDTO(*post, true))
}

// Update applies a partial update to a post.
func (h *BlogHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdatePostRequest struct {
		Title    *string  `json:"title"`
		Content  *string  `json:"content"`
		Excerpt  *string  `json:"excerpt"`
		Status   *string  `json:"status"`
		Language *string  `json:"language"`
		Tags     []string `json:"tags"`
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "", "Invalid request body")
		return
	}

	input := services.UpdatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		Language: req.Language,
		Tags:     req.Tags,
	}
	if req.Status != nil {
		status := models.BlogPostStatus(*req.Status)
		input.Status = &status
	}

	post, err := h.blogService.UpdatePost(id, input)
	if err != nil {
		respondBlogError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "Post updated", dto.ToBlogPostDTO(*post, true))
}

// Delete removes a post.
func (h *BlogHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.blogService.DeletePost(id); err != nil {
		respondBlogError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "Post deleted", nil)
}

// Stats returns blog counts for the admin dashboard.
func (h *BlogHandler) Stats(c *gin.Context) {
	stats, err := h.blogService.Stats()
	if err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}

	apierrors.OK(c, http.StatusOK, "", stats)
}

func respondBlogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPostNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrPostTitleRequired),
		errors.Is(err, services.ErrPostBodyRequired),
		errors.Is(err, services.ErrInvalidPostStatus):
		apierrors.BadRequest(c, "", err.Error())
	case errors.Is(err, repository.ErrNoValidFields):
		apierrors.BadRequest(c, apierrors.CodeNoValidFields, err.Error())
	default:
		apierrors.InternalError(c, err.Error())
	}
}
