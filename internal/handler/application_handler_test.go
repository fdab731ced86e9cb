package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"lesenhub/internal/domain"
	"lesenhub/internal/handler"
	"lesenhub/internal/middleware"
	"lesenhub/internal/service"
	"lesenhub/mocks"
)

// testRouter wires the application and document handlers behind a stub auth
// layer injecting the given user.
func testRouter(userID uuid.UUID, appSvc service.ApplicationService, docSvc service.DocumentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, userID)
		c.Next()
	})

	appH := handler.NewApplicationHandler(appSvc)
	docH := handler.NewDocumentHandler(docSvc)

	apps := r.Group("/api/v1/permohonan")
	apps.POST("", appH.Create)
	apps.GET("", appH.List)
	apps.GET("/:id", appH.Show)
	apps.PUT("/:id", appH.Update)
	apps.POST("/:id/submit", appH.Submit)
	apps.POST("/:id/cancel", appH.Cancel)
	apps.DELETE("/:id/dokumen/:documentId", docH.Delete)
	return r
}

func createBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(gin.H{
		"company_id":      uuid.New(),
		"license_type_id": uuid.New(),
		"operational_details": gin.H{
			"premise_address": gin.H{
				"line1":    "12 Jalan Ampang",
				"city":     "Kuala Lumpur",
				"postcode": "50450",
				"state":    "Wilayah Persekutuan",
			},
			"business_name": "Kedai Kopi Maju",
		},
	})
	assert.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestApplicationHandler_Create_Returns201(t *testing.T) {
	userID := uuid.New()
	appSvc := new(mocks.MockApplicationService)
	appSvc.On("Create", mock.Anything, mock.AnythingOfType("service.CreateApplicationInput")).
		Return(&domain.Application{ID: uuid.New(), OwnerUserID: userID, Status: domain.StatusDraft}, nil)

	r := testRouter(userID, appSvc, new(mocks.MockDocumentService))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/permohonan", createBody(t))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestApplicationHandler_Create_ValidationErrorReturns422WithFields(t *testing.T) {
	userID := uuid.New()
	appSvc := new(mocks.MockApplicationService)
	appSvc.On("Create", mock.Anything, mock.AnythingOfType("service.CreateApplicationInput")).
		Return(nil, domain.NewValidationError(map[string]string{
			"operational_details.business_name": "business name is required",
			"company_id":                        "unknown company",
		}))

	r := testRouter(userID, appSvc, new(mocks.MockDocumentService))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/permohonan", createBody(t))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_FAILED")
	assert.Contains(t, w.Body.String(), "operational_details.business_name")
	assert.Contains(t, w.Body.String(), "company_id")
}

func TestApplicationHandler_Show_NotOwnerReturnsGeneric403(t *testing.T) {
	userID := uuid.New()
	appID := uuid.New()
	appSvc := new(mocks.MockApplicationService)
	appSvc.On("Get", mock.Anything, userID, appID).
		Return(nil, domain.NewAuthorizationError(domain.DenyNotOwner))

	r := testRouter(userID, appSvc, new(mocks.MockDocumentService))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/permohonan/"+appID.String(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
	// The deny reason is logged, never leaked.
	assert.NotContains(t, w.Body.String(), "not_owner")
}

func TestApplicationHandler_Show_UnknownIDReturns404(t *testing.T) {
	userID := uuid.New()
	appID := uuid.New()
	appSvc := new(mocks.MockApplicationService)
	appSvc.On("Get", mock.Anything, userID, appID).Return(nil, domain.ErrNotFound)

	r := testRouter(userID, appSvc, new(mocks.MockDocumentService))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/permohonan/"+appID.String(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApplicationHandler_Submit_IncompleteReturns422WithGapList(t *testing.T) {
	userID := uuid.New()
	appID := uuid.New()
	missing := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	appSvc := new(mocks.MockApplicationService)
	appSvc.On("Submit", mock.Anything, userID, appID).
		Return(nil, &domain.CompletenessError{
			MissingRequirementIDs: missing,
			Fields:                map[string]string{"operational_details.premise_address.state": "state is required"},
		})

	r := testRouter(userID, appSvc, new(mocks.MockDocumentService))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/permohonan/"+appID.String()+"/submit", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Error struct {
			Code                string            `json:"code"`
			Fields              map[string]string `json:"fields"`
			MissingRequirements []uuid.UUID       `json:"missing_requirements"`
		} `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INCOMPLETE", resp.Error.Code)
	assert.Equal(t, missing, resp.Error.MissingRequirements)
	assert.Contains(t, resp.Error.Fields, "operational_details.premise_address.state")
}

func TestApplicationHandler_List_InvalidStatusReturns400(t *testing.T) {
	userID := uuid.New()
	r := testRouter(userID, new(mocks.MockApplicationService), new(mocks.MockDocumentService))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/permohonan?status=approved", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApplicationHandler_List_PaginationMeta(t *testing.T) {
	userID := uuid.New()
	appSvc := new(mocks.MockApplicationService)
	appSvc.On("List", mock.Anything, userID, mock.AnythingOfType("port.ApplicationFilter")).
		Return([]domain.Application{}, 42, nil)

	r := testRouter(userID, appSvc, new(mocks.MockDocumentService))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/permohonan?page=3&per_page=10", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":42`)
	assert.Contains(t, w.Body.String(), `"page":3`)
	assert.Contains(t, w.Body.String(), `"per_page":10`)
}

func TestDocumentHandler_Delete_Returns204(t *testing.T) {
	userID := uuid.New()
	appID := uuid.New()
	docID := uuid.New()
	docSvc := new(mocks.MockDocumentService)
	docSvc.On("Delete", mock.Anything, userID, appID, docID).Return(nil)

	r := testRouter(userID, new(mocks.MockApplicationService), docSvc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete,
		"/api/v1/permohonan/"+appID.String()+"/dokumen/"+docID.String(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestDocumentHandler_Delete_ValidatedReturns409(t *testing.T) {
	userID := uuid.New()
	appID := uuid.New()
	docID := uuid.New()
	docSvc := new(mocks.MockDocumentService)
	docSvc.On("Delete", mock.Anything, userID, appID, docID).Return(domain.ErrDocumentValidated)

	r := testRouter(userID, new(mocks.MockApplicationService), docSvc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete,
		"/api/v1/permohonan/"+appID.String()+"/dokumen/"+docID.String(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "DOCUMENT_VALIDATED")
}

func TestApplicationHandler_Cancel_Returns200(t *testing.T) {
	userID := uuid.New()
	appID := uuid.New()
	appSvc := new(mocks.MockApplicationService)
	appSvc.On("Cancel", mock.Anything, userID, appID, "changed plans").Return(nil)

	r := testRouter(userID, appSvc, new(mocks.MockDocumentService))
	body, _ := json.Marshal(gin.H{"reason": "changed plans"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/permohonan/"+appID.String()+"/cancel", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
