package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lesenhub/internal/service"
)

// DocumentHandler handles requirement-document endpoints nested under an
// application.
type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Upload handles POST /api/v1/permohonan/:id/dokumen
// Multipart form: keperluan_dokumen_id + file. Uploading to an occupied
// requirement slot replaces the previous document atomically.
func (h *DocumentHandler) Upload(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	appID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid application ID")
		return
	}

	requirementID, err := uuid.Parse(c.PostForm("keperluan_dokumen_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "keperluan_dokumen_id is required and must be a UUID")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "unable to read uploaded file")
		return
	}
	defer file.Close()

	doc, err := h.documentService.Upload(c.Request.Context(), service.DocumentUploadInput{
		ActorID:       userID,
		ApplicationID: appID,
		RequirementID: requirementID,
		File:          file,
		Header:        fileHeader,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, doc)
}

// Delete handles DELETE /api/v1/permohonan/:id/dokumen/:documentId
func (h *DocumentHandler) Delete(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	appID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid application ID")
		return
	}
	docID, err := uuid.Parse(c.Param("documentId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), userID, appID, docID); err != nil {
		HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DownloadURL handles GET /api/v1/permohonan/:id/dokumen/:documentId/url
// Returns a short-lived presigned URL; the blob store is never exposed
// directly.
func (h *DocumentHandler) DownloadURL(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	appID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid application ID")
		return
	}
	docID, err := uuid.Parse(c.Param("documentId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	url, err := h.documentService.GetDownloadURL(c.Request.Context(), userID, appID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"url": url})
}
