package domain

import (
	"context"
	"io"
	"time"
)

// Virus scan states. Uploads start pending; no scanner is wired yet.
const (
	ScanPending = "pending"
	ScanClean   = "clean"
	ScanFlagged = "flagged"
)

// FileItem is the metadata of one stored version of an uploaded document.
type FileItem struct {
	ID               int64     `json:"id"`
	ProjectID        int64     `json:"project_id"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"original_filename"`
	StoredPath       string    `json:"-"`
	MimeType         *string   `json:"mime_type"`
	FileSize         int64     `json:"file_size"`
	Version          int       `json:"version"`
	ParentVersionID  *int64    `json:"parent_version_id"`
	PreviewPath      *string   `json:"-"`
	ThumbnailPath    *string   `json:"-"`
	HasPreview       bool      `json:"has_preview"`
	HasThumbnail     bool      `json:"has_thumbnail"`
	ScanStatus       string    `json:"scan_status"`
	Uploader         string    `json:"uploader"`
	UploadedAt       time.Time `json:"uploaded_at"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// FileUpload is an incoming document before validation.
type FileUpload struct {
	ProjectID   int64
	Uploader    string
	Filename    string
	ContentType string
	Content     []byte
}

// FileContent is an opened stored object ready to stream to a client.
type FileContent struct {
	Body        io.ReadCloser
	Filename    string
	ContentType string
}

// FileKind selects which stored representation of a file to open.
type FileKind int

const (
	FileOriginal FileKind = iota
	FilePreview
	FileThumbnail
)

// FileRepository defines the interface for file metadata storage.
type FileRepository interface {
	Create(ctx context.Context, file *FileItem) error
	GetByID(ctx context.Context, id int64) (*FileItem, error)
	LatestVersion(ctx context.Context, projectID int64, filename string) (*FileItem, error)
	ListVersions(ctx context.Context, projectID int64, filename string) ([]*FileItem, error)
	Source(projectID int64) PageSource[*FileItem]
}

// FileStorage stores file bytes under opaque keys.
type FileStorage interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Open returns ErrFileContentMissing when nothing is stored under key.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// PreviewGenerator renders a thumbnail and a preview for a document. Either
// result may be nil when the type has no rendering.
type PreviewGenerator interface {
	Generate(ctx context.Context, mimeType string, content []byte) (preview, thumbnail []byte, err error)
}

// FileService manages the project file room.
type FileService interface {
	ListFiles(ctx context.Context, projectID int64, req PageRequest) (Page[*FileItem], error)
	Upload(ctx context.Context, upload FileUpload) (*FileItem, error)
	ListVersions(ctx context.Context, id int64) ([]*FileItem, error)
	Open(ctx context.Context, id int64, kind FileKind) (*FileContent, error)
}
