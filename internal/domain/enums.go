package domain

// ApplicationStatus is the lifecycle state of an application.
// Transitions are one-directional: draft -> submitted, draft -> cancelled.
type ApplicationStatus string

const (
	StatusDraft     ApplicationStatus = "draft"
	StatusSubmitted ApplicationStatus = "submitted"
	StatusCancelled ApplicationStatus = "cancelled"
)

// Terminal reports whether no further write operation may succeed.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusSubmitted || s == StatusCancelled
}

// Valid reports whether s is a known lifecycle status.
func (s ApplicationStatus) Valid() bool {
	return s == StatusDraft || s == StatusSubmitted || s == StatusCancelled
}

// ValidationStatus is the post-submission reviewer verdict on a document.
// It never affects pre-submission completeness.
type ValidationStatus string

const (
	ValidationUnvalidated ValidationStatus = "unvalidated"
	ValidationValidated   ValidationStatus = "validated"
)

// DenyReason is the machine-readable reason attached to an authorization
// denial so callers can surface distinct messages while the HTTP layer
// collapses most of them to a generic status.
type DenyReason string

const (
	DenyNotOwner         DenyReason = "not_owner"
	DenyWrongStatus      DenyReason = "wrong_status"
	DenyUnverified       DenyReason = "unverified"
	DenyIncomplete       DenyReason = "incomplete"
	DenyAlreadyValidated DenyReason = "already_validated"
)

// CompanyStatusActive is the only company status an application may reference.
const CompanyStatusActive = "active"

// FileType represents the allowed document file types.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}
