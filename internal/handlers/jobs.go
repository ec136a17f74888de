package handlers

import (
	"errors"
	"net/http"
	"time"

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

// JobHandler coordinates job offer and application HTTP handlers.
type JobHandler struct {
	jobService *services.JobService
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobService *services.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// ListOpen returns offers currently accepting applications, for the public site.
func (h *JobHandler) ListOpen(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	input := services.ListOffersInput{
		Department: c.Query("department"),
		Location:   c.Query("location"),
		Search:     c.Query("search"),
		OpenOnly:   true,
		SortBy:     c.Query("sort"),
		SortDesc:   c.DefaultQuery("order", "desc") == "desc",
		Page:       params.Page,
		PageSize:   params.Limit,
	}
	if v := c.Query("employment_type"); v != "" {
		et := models.EmploymentType(v)
		input.EmploymentType = &et
	}

	offers, total, err := h.jobService.ListOffers(input)
	if err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}

	apierrors.OK(c, http.StatusOK, "", dto.NewJobOfferListResponse(offers, utils.NewPaginationMeta(params, total)))
}

// ListAll returns offers in every status for the admin console.
func (h *JobHandler) ListAll(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	input := services.ListOffersInput{
		Department: c.Query("department"),
		Location:   c.Query("location"),
		Search:     c.Query("search"),
		SortBy:     c.Query("sort"),
		SortDesc:   c.DefaultQuery("order", "desc") == "desc",
		Page:       params.Page,
		PageSize:   params.Limit,
	}
	if v := c.Query("status"); v != "" {
		status := models.JobOfferStatus(v)
		input.Status = &status
	}
	if v := c.Query("employment_type"); v != "" {
		et := models.EmploymentType(v)
		input.EmploymentType = &et
	}

	offers, total, err := h.jobService.ListOffers(input)
	if err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}

	apierrors.OK(c, http.StatusOK, "", dto.NewJobOfferListResponse(offers, utils.NewPaginationMeta(params, total)))
}

// GetOffer returns a single offer.
func (h *JobHandler) GetOffer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	offer, err := h.jobService.GetOffer(id)
	if err != nil {
		respondJobError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "", dto.ToJobOfferDTO(*offer))
}

// CreateOffer creates a job offer.
func (h *JobHandler) CreateOffer(c *gin.Context) {
	type CreateOfferRequest struct {
		Title               string     `json:"title" binding:"required"`
		Department          string     `json:"department" binding:"required"`
		Location            string     `json:"location" binding:"required"`
		EmploymentType      string     `json:"employment_type" binding:"required"`
		Description         string     `json:"description"`
		Requirements        string     `json:"requirements"`
		SalaryRange         string     `json:"salary_range"`
		ApplicationDeadline *time.Time `json:"application_deadline"`
	}

	var req CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "", "Invalid request body")
		return
	}

	creatorID, _ := middleware.GetUserID(c)

	offer, err := h.jobService.CreateOffer(services.CreateOfferInput{
		Title:               req.Title,
		Department:          req.Department,
		Location:            req.Location,
		EmploymentType:      models.EmploymentType(req.EmploymentType),
		Description:         req.Description,
		Requirements:        req.Requirements,
		SalaryRange:         req.SalaryRange,
		ApplicationDeadline: req.ApplicationDeadline,
		CreatedBy:           creatorID,
	})
	if err != nil {
		respondJobError(c, err)
		return
	}

	middleware.SetAuditEntityID(c, offer.ID.String())
	apierrors.OK(c, http.StatusCreated, "Offer created", dto.ToJobOfferDTO(*offer))
}

// UpdateOffer applies a partial update to an offer.
func (h *JobHandler) UpdateOffer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateOfferRequest struct {
		Title               *string    `json:"title"`
		Department          *string    `json:"department"`
		Location            *string    `json:"location"`
		EmploymentType      *string    `json:"employment_type"`
		Description         *string    `json:"description"`
		Requirements        *string    `json:"requirements"`
		SalaryRange         *string    `json:"salary_range"`
		Status              *string    `json:"status"`
		ApplicationDeadline *time.Time `json:"application_deadline"`
		ClearDeadline       bool       `json:"clear_deadline"`
	}

	var req UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "", "Invalid request body")
		return
	}

	input := services.UpdateOfferInput{
		Title:               req.Title,
		Department:          req.Department,
		Location:            req.Location,
		Description:         req.Description,
		Requirements:        req.Requirements,
		SalaryRange:         req.SalaryRange,
		ApplicationDeadline: req.ApplicationDeadline,
		ClearDeadline:       req.ClearDeadline,
	}
	if req.EmploymentType != nil {
		et := models.EmploymentType(*req.EmploymentType)
		input.EmploymentType = &et
	}
	if req.Status != nil {
		status := models.JobOfferStatus(*req.Status)
		input.Status = &status
	}

	offer, err := h.jobService.UpdateOffer(id, input)
	if err != nil {
		respondJobError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "Offer updated", dto.ToJobOfferDTO(*offer))
}

// DeleteOffer removes an offer together with its applications.
func (h *JobHandler) DeleteOffer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.jobService.DeleteOffer(id); err != nil {
		respondJobError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "Offer deleted", nil)
}

// Apply submits a public job application.
func (h *JobHandler) Apply(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type ApplyRequest struct {
		Name        string `json:"name" binding:"required"`
		Email       string `json:"email" binding:"required,email"`
		Phone       string `json:"phone"`
		CoverLetter string `json:"cover_letter"`
		ResumeURL   string `json:"resume_url"`
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "", "Invalid request body")
		return
	}

	app, err := h.jobService.Apply(services.ApplyInput{
		JobOfferID:  id,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
	})
	if err != nil {
		respondJobError(c, err)
		return
	}

	apierrors.OK(c, http.StatusCreated, "Application received", dto.ToJobApplicationDTO(*app))
}

// ListApplications returns applications for the admin console.
func (h *JobHandler) ListApplications(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	input := services.ListApplicationsInput{
		Email:    c.Query("email"),
		SortBy:   c.Query("sort"),
		SortDesc: c.DefaultQuery("order", "desc") == "desc",
		Page:     params.Page,
		PageSize: params.Limit,
	}
	if v := c.Query("job_offer_id"); v != "" {
		offerID, err := uuid.Parse(v)
		if err != nil {
			apierrors.BadRequest(c, "", "Invalid job_offer_id parameter")
			return
		}
		input.JobOfferID = &offerID
	}
	if v := c.Query("status"); v != "" {
		status := models.ApplicationStatus(v)
		input.Status = &status
	}

	apps, total, err := h.jobService.ListApplications(input)
	if err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}

	apierrors.OK(c, http.StatusOK, "", dto.NewJobApplicationListResponse(apps, utils.NewPaginationMeta(params, total)))
}

// UpdateApplicationStatus moves an application through the hiring pipeline.
func (h *JobHandler) UpdateApplicationStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type StatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "", "Invalid request body")
		return
	}

	reviewerID, _ := middleware.GetUserID(c)

	app, err := h.jobService.UpdateApplicationStatus(id, models.ApplicationStatus(req.Status), reviewerID)
	if err != nil {
		respondJobError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "Application updated", dto.ToJobApplicationDTO(*app))
}

// Stats returns job counts for the admin dashboard.
func (h *JobHandler) Stats(c *gin.Context) {
	stats, err := h.jobService.Stats()
	if err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}

	apierrors.OK(c, http.StatusOK, "", stats)
}

func respondJobError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOfferNotFound),
		errors.Is(err, services.ErrApplicationNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrDuplicateApplication):
		apierrors.BadRequest(c, apierrors.CodeAlreadyExists, err.Error())
	case errors.Is(err, services.ErrDeadlinePassed):
		apierrors.BadRequest(c, apierrors.CodeDeadlinePassed, err.Error())
	case errors.Is(err, services.ErrOfferNotOpen):
		apierrors.BadRequest(c, apierrors.CodeNotOpen, err.Error())
	case errors.Is(err, services.ErrOfferTitleRequired),
		errors.Is(err, services.ErrInvalidEmploymentType),
		errors.Is(err, services.ErrInvalidOfferStatus),
		errors.Is(err, services.ErrInvalidAppStatus),
		errors.Is(err, services.ErrApplicantIncomplete):
		apierrors.BadRequest(c, "", err.Error())
	case errors.Is(err, repository.ErrNoValidFields):
		apierrors.BadRequest(c, apierrors.CodeNoValidFields, err.Error())
	default:
		apierrors.InternalError(c, err.Error())
	}
}
