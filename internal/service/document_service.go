package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"lesenhub/internal/authz"
	"lesenhub/internal/config"
	"lesenhub/internal/domain"
	"lesenhub/internal/port"
)

// DocumentUploadInput is the DTO for requirement-document uploads.
type DocumentUploadInput struct {
	ActorID       uuid.UUID
	ApplicationID uuid.UUID
	RequirementID uuid.UUID
	File          multipart.File
	Header        *multipart.FileHeader
}

// DocumentService owns the one-document-per-requirement slot invariant.
// Upload to an occupied slot is an atomic replace; delete is restricted to
// unvalidated documents on draft applications.
type DocumentService interface {
	Upload(ctx context.Context, input DocumentUploadInput) (*domain.Document, error)
	Delete(ctx context.Context, actorID, applicationID, documentID uuid.UUID) error
	GetDownloadURL(ctx context.Context, actorID, applicationID, documentID uuid.UUID) (string, error)
}

type documentService struct {
	appRepo         port.ApplicationRepository
	documentRepo    port.DocumentRepository
	requirementRepo port.RequirementRepository
	storage         port.ObjectStorage
	events          port.EventSink
	cfg             *config.S3Config
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(
	appRepo port.ApplicationRepository,
	documentRepo port.DocumentRepository,
	requirementRepo port.RequirementRepository,
	storage port.ObjectStorage,
	events port.EventSink,
	cfg *config.S3Config,
) DocumentService {
	return &documentService{
		appRepo:         appRepo,
		documentRepo:    documentRepo,
		requirementRepo: requirementRepo,
		storage:         storage,
		events:          events,
		cfg:             cfg,
	}
}

func (s *documentService) Upload(ctx context.Context, input DocumentUploadInput) (*domain.Document, error) {
	app, err := s.appRepo.GetByID(ctx, input.ApplicationID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanUploadDocument(domain.Actor{ID: input.ActorID}, app).Err(); err != nil {
		return nil, err
	}

	req, err := s.requirementRepo.GetByID(ctx, input.RequirementID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError(map[string]string{
				"keperluan_dokumen_id": "unknown document requirement",
			})
		}
		return nil, fmt.Errorf("loading requirement: %w", err)
	}
	if req.LicenseTypeID != app.LicenseTypeID {
		return nil, domain.NewValidationError(map[string]string{
			"keperluan_dokumen_id": "requirement does not belong to this application's license type",
		})
	}

	// File policy runs before any storage write.
	fileType, contentType, err := s.checkFilePolicy(input.File, input.Header)
	if err != nil {
		return nil, err
	}

	docID := uuid.New()
	storageKey := fmt.Sprintf("applications/%s/documents/%s/%s",
		app.ID, docID, input.Header.Filename)

	doc := &domain.Document{
		ID:               docID,
		ApplicationID:    app.ID,
		RequirementID:    req.ID,
		Filename:         input.Header.Filename,
		MimeType:         contentType,
		SizeBytes:        input.Header.Size,
		StorageKey:       storageKey,
		ValidationStatus: domain.ValidationUnvalidated,
		UploadedByUserID: input.ActorID,
	}

	log.Printf("documentService.Upload: uploading %s (%s, %d bytes) for application %s requirement %s",
		input.Header.Filename, fileType, input.Header.Size, app.ID, req.ID)

	// Write the new blob first: a failure here leaves any previous slot
	// occupant fully intact.
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         storageKey,
		Body:        input.File,
		ContentType: contentType,
		Size:        input.Header.Size,
	})
	if err != nil {
		log.Printf("documentService.Upload: storage upload failed for application %s: %v", app.ID, err)
		return nil, domain.ErrUploadFailed
	}

	replaced, err := s.documentRepo.ReplaceSlot(ctx, doc)
	if err != nil {
		// Metadata failed after the blob write: compensate by removing the
		// fresh blob so nothing references a half-replaced slot.
		if delErr := s.storage.Delete(ctx, s.cfg.Bucket, storageKey); delErr != nil {
			log.Printf("documentService.Upload: orphaned blob %s after failed replace: %v", storageKey, delErr)
		}
		return nil, fmt.Errorf("replacing document slot: %w", err)
	}

	metadata := map[string]interface{}{
		"requirement_id": req.ID.String(),
		"filename":       doc.Filename,
		"size_bytes":     doc.SizeBytes,
	}
	if replaced != nil {
		metadata["replaced_document_id"] = replaced.ID.String()
		// Old blob last: a failure here leaves only an orphan, reclaimable
		// by an external sweep.
		if err := s.storage.Delete(ctx, s.cfg.Bucket, replaced.StorageKey); err != nil {
			log.Printf("documentService.Upload: orphaned old blob %s: %v", replaced.StorageKey, err)
		}
	}

	s.events.Emit(ctx, domain.NewEvent(domain.EventDocumentUploaded, input.ActorID, app.ID, metadata))

	return doc, nil
}

func (s *documentService) Delete(ctx context.Context, actorID, applicationID, documentID uuid.UUID) error {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	doc, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		return err
	}
	if doc.ApplicationID != app.ID {
		return domain.ErrNotFound
	}

	if d := authz.CanDeleteDocument(domain.Actor{ID: actorID}, app, doc); !d.Allowed {
		if d.Reason == domain.DenyAlreadyValidated {
			return domain.ErrDocumentValidated
		}
		return d.Err()
	}

	if err := s.documentRepo.Delete(ctx, doc.ID); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if err := s.storage.Delete(ctx, s.cfg.Bucket, doc.StorageKey); err != nil {
		log.Printf("documentService.Delete: orphaned blob %s: %v", doc.StorageKey, err)
	}

	s.events.Emit(ctx, domain.NewEvent(domain.EventDocumentDeleted, actorID, app.ID,
		map[string]interface{}{
			"document_id":    doc.ID.String(),
			"requirement_id": doc.RequirementID.String(),
			"filename":       doc.Filename,
		}))

	return nil
}

func (s *documentService) GetDownloadURL(ctx context.Context, actorID, applicationID, documentID uuid.UUID) (string, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return "", err
	}
	if err := authz.CanView(domain.Actor{ID: actorID}, app).Err(); err != nil {
		return "", err
	}
	doc, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		return "", err
	}
	if doc.ApplicationID != app.ID {
		return "", domain.ErrNotFound
	}
	return s.storage.GetPresignedURL(ctx, s.cfg.Bucket, doc.StorageKey, s.cfg.PresignExpiry)
}

// checkFilePolicy enforces the upload allow-list and size ceiling, returning
// the detected file type and canonical content type.
func (s *documentService) checkFilePolicy(file multipart.File, header *multipart.FileHeader) (domain.FileType, string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return "", "", domain.NewValidationError(map[string]string{
			"file": "unsupported file type; allowed: pdf, jpg, png",
		})
	}

	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if header.Size > maxBytes {
		return "", "", domain.NewValidationError(map[string]string{
			"file": fmt.Sprintf("file exceeds maximum allowed size of %d MB", s.cfg.MaxFileSizeMB),
		})
	}

	// Magic-byte check: the claimed extension must match the content.
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", "", fmt.Errorf("reading file header: %w", err)
	}
	detected := http.DetectContentType(buf[:n])
	if _, ok := domain.AllowedContentTypes[detected]; !ok {
		return "", "", domain.NewValidationError(map[string]string{
			"file": "file content does not match an allowed type",
		})
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", "", fmt.Errorf("seeking file: %w", err)
	}

	return fileType, domain.AllowedFileTypes[fileType], nil
}
