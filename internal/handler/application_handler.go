package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lesenhub/internal/domain"
	"lesenhub/internal/port"
	"lesenhub/internal/service"
)

// ApplicationHandler handles the license application lifecycle endpoints.
type ApplicationHandler struct {
	appService service.ApplicationService
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(appService service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appService: appService}
}

type applicationRequest struct {
	CompanyID          uuid.UUID                 `json:"company_id" binding:"required"`
	LicenseTypeID      uuid.UUID                 `json:"license_type_id" binding:"required"`
	OperationalDetails domain.OperationalDetails `json:"operational_details" binding:"required"`
}

// Create handles POST /api/v1/permohonan
func (h *ApplicationHandler) Create(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req applicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "company_id, license_type_id, and operational_details are required")
		return
	}

	app, err := h.appService.Create(c.Request.Context(), service.CreateApplicationInput{
		ActorID:            userID,
		CompanyID:          req.CompanyID,
		LicenseTypeID:      req.LicenseTypeID,
		OperationalDetails: req.OperationalDetails,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, app)
}

// List handles GET /api/v1/permohonan
// Filters: status, jenis_lesen_id, tarikh_dari, tarikh_hingga. Newest first.
func (h *ApplicationHandler) List(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	page, perPage := parsePagination(c)
	filter := port.ApplicationFilter{
		Offset: (page - 1) * perPage,
		Limit:  perPage,
	}

	if status := c.Query("status"); status != "" {
		s := domain.ApplicationStatus(status)
		if !s.Valid() {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "status must be one of: draft, submitted, cancelled")
			return
		}
		filter.Status = s
	}
	if raw := c.Query("jenis_lesen_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid jenis_lesen_id")
			return
		}
		filter.LicenseTypeID = &id
	}
	if raw := c.Query("tarikh_dari"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "tarikh_dari must be YYYY-MM-DD")
			return
		}
		filter.DateFrom = &t
	}
	if raw := c.Query("tarikh_hingga"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "tarikh_hingga must be YYYY-MM-DD")
			return
		}
		// Inclusive upper bound: extend to the end of the day.
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &end
	}

	apps, total, err := h.appService.List(c.Request.Context(), userID, filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, apps, PagMeta{Total: total, Page: page, PerPage: perPage})
}

// Show handles GET /api/v1/permohonan/:id
func (h *ApplicationHandler) Show(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	appID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid application ID")
		return
	}

	view, err := h.appService.Get(c.Request.Context(), userID, appID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// Update handles PUT /api/v1/permohonan/:id
func (h *ApplicationHandler) Update(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	appID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid application ID")
		return
	}

	var req applicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "company_id, license_type_id, and operational_details are required")
		return
	}

	app, err := h.appService.Update(c.Request.Context(), service.UpdateApplicationInput{
		ActorID:            userID,
		ApplicationID:      appID,
		CompanyID:          req.CompanyID,
		LicenseTypeID:      req.LicenseTypeID,
		OperationalDetails: req.OperationalDetails,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, app)
}

// Submit handles POST /api/v1/permohonan/:id/submit
func (h *ApplicationHandler) Submit(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	appID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid application ID")
		return
	}

	app, err := h.appService.Submit(c.Request.Context(), userID, appID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, app)
}

// Cancel handles POST /api/v1/permohonan/:id/cancel
func (h *ApplicationHandler) Cancel(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	appID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid application ID")
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	// The body is optional; an empty reason is fine.
	_ = c.ShouldBindJSON(&req)

	if err := h.appService.Cancel(c.Request.Context(), userID, appID, req.Reason); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "application cancelled"})
}
