package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"lawflow/internal/domain"
)

// Storage key prefixes for the three representations of a file.
const (
	uploadsPrefix    = "uploads"
	previewsPrefix   = "previews"
	thumbnailsPrefix = "thumbnails"
)

const previewContentType = "image/jpeg"

// maxVersionAttempts bounds how often an upload is renumbered after losing a
// version to a concurrent upload.
const maxVersionAttempts = 3

type fileService struct {
	fileRepo       domain.FileRepository
	projectRepo    domain.ProjectRepository
	storage        domain.FileStorage
	previews       domain.PreviewGenerator
	recorder       *ActivityRecorder
	logger         *slog.Logger
	maxBytes       int64
	contextTimeout time.Duration
}

func NewFileService(fileRepo domain.FileRepository,
	projectRepo domain.ProjectRepository,
	storage domain.FileStorage,
	previews domain.PreviewGenerator,
	recorder *ActivityRecorder,
	logger *slog.Logger,
	maxBytes int64,
	timeout time.Duration,
) domain.FileService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &fileService{
		fileRepo:       fileRepo,
		projectRepo:    projectRepo,
		storage:        storage,
		previews:       previews,
		recorder:       recorder,
		logger:         logger,
		maxBytes:       maxBytes,
		contextTimeout: timeout,
	}
}

func (s *fileService) ListFiles(ctx context.Context, projectID int64, req domain.PageRequest) (domain.Page[*domain.FileItem], error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	page, err := domain.Paginate(ctx, s.fileRepo.Source(projectID), req, domain.SortableFor(domain.EntityFiles))
	if err != nil {
		return page, fmt.Errorf("list files: %w", err)
	}
	return page, nil
}

func (s *fileService) Upload(ctx context.Context, u domain.FileUpload) (*domain.FileItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	safeName, err := SafeFilename(u.Filename)
	if err != nil {
		return nil, err
	}
	mimeType, err := validateUpload(u, s.maxBytes)
	if err != nil {
		return nil, err
	}
	if err := requireProject(ctx, s.projectRepo, u.ProjectID); err != nil {
		return nil, err
	}

	item := &domain.FileItem{
		ProjectID:        u.ProjectID,
		Filename:         safeName,
		OriginalFilename: safeName,
		MimeType:         &mimeType,
		FileSize:         int64(len(u.Content)),
		Version:          1,
		ScanStatus:       domain.ScanPending,
		Uploader:         actorOrDefault(strings.TrimSpace(u.Uploader)),
	}
	if err := s.assignVersion(ctx, item); err != nil {
		return nil, err
	}

	base := fmt.Sprintf("%d/%s", u.ProjectID, uuid.NewString())
	item.StoredPath = path.Join(uploadsPrefix, base+"__"+safeName)
	if err := s.storage.Save(ctx, item.StoredPath, bytes.NewReader(u.Content), item.FileSize, mimeType); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}
	s.storePreviews(ctx, item, base, u.Content)

	now := time.Now().UTC()
	item.UploadedAt = now
	item.CreatedAt = now
	item.UpdatedAt = now
	if err := s.createVersion(ctx, item); err != nil {
		s.discard(ctx, item)
		return nil, fmt.Errorf("create file record: %w", err)
	}
	item.HasPreview = item.PreviewPath != nil
	item.HasThumbnail = item.ThumbnailPath != nil
	s.recorder.Record(ctx, item.ProjectID, item.Uploader, "Uploaded file", safeName)
	return item, nil
}

// assignVersion numbers item after the latest stored version of its filename.
func (s *fileService) assignVersion(ctx context.Context, item *domain.FileItem) error {
	item.Version, item.ParentVersionID = 1, nil
	latest, err := s.fileRepo.LatestVersion(ctx, item.ProjectID, item.OriginalFilename)
	switch {
	case err == nil:
		item.Version = latest.Version + 1
		item.ParentVersionID = &latest.ID
	case !errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("find previous version: %w", err)
	}
	return nil
}

// createVersion inserts item, renumbering it when a concurrent upload of the
// same filename took its version first.
func (s *fileService) createVersion(ctx context.Context, item *domain.FileItem) error {
	for attempt := 1; ; attempt++ {
		err := s.fileRepo.Create(ctx, item)
		if err == nil || !errors.Is(err, domain.ErrConflict) || attempt == maxVersionAttempts {
			return err
		}
		s.logger.InfoContext(ctx, "file version taken, retrying", "filename", item.OriginalFilename, "version", item.Version, "attempt", attempt)
		if err := s.assignVersion(ctx, item); err != nil {
			return err
		}
	}
}

// storePreviews renders and stores previews. Failures leave the paths nil.
func (s *fileService) storePreviews(ctx context.Context, item *domain.FileItem, base string, content []byte) {
	preview, thumb, err := s.previews.Generate(ctx, *item.MimeType, content)
	if err != nil {
		s.logger.WarnContext(ctx, "preview generation failed", "filename", item.Filename, "err", err)
	}
	item.PreviewPath = s.saveRendition(ctx, path.Join(previewsPrefix, base+"_preview.jpg"), preview)
	item.ThumbnailPath = s.saveRendition(ctx, path.Join(thumbnailsPrefix, base+"_thumb.jpg"), thumb)
}

func (s *fileService) saveRendition(ctx context.Context, key string, b []byte) *string {
	if len(b) == 0 {
		return nil
	}
	if err := s.storage.Save(ctx, key, bytes.NewReader(b), int64(len(b)), previewContentType); err != nil {
		s.logger.WarnContext(ctx, "store rendition failed", "key", key, "err", err)
		return nil
	}
	return &key
}

func (s *fileService) discard(ctx context.Context, item *domain.FileItem) {
	keys := []string{item.StoredPath}
	for _, p := range []*string{item.PreviewPath, item.ThumbnailPath} {
		if p != nil {
			keys = append(keys, *p)
		}
	}
	for _, k := range keys {
		if err := s.storage.Delete(ctx, k); err != nil {
			s.logger.WarnContext(ctx, "remove orphaned object failed", "key", k, "err", err)
		}
	}
}

func (s *fileService) ListVersions(ctx context.Context, id int64) ([]*domain.FileItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	f, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}
	versions, err := s.fileRepo.ListVersions(ctx, f.ProjectID, f.OriginalFilename)
	if err != nil {
		return nil, fmt.Errorf("list file versions: %w", err)
	}
	return versions, nil
}

// Open does not apply the service timeout; the body is streamed after it returns.
func (s *fileService) Open(ctx context.Context, id int64, kind domain.FileKind) (*domain.FileContent, error) {
	f, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	stem := strings.TrimSuffix(f.Filename, path.Ext(f.Filename))
	var key, name, contentType string
	switch kind {
	case domain.FilePreview:
		if f.PreviewPath == nil {
			return nil, fmt.Errorf("%w: no preview for file %d", domain.ErrNotFound, id)
		}
		key, name, contentType = *f.PreviewPath, stem+"_preview.jpg", previewContentType
	case domain.FileThumbnail:
		if f.ThumbnailPath == nil {
			return nil, fmt.Errorf("%w: no thumbnail for file %d", domain.ErrNotFound, id)
		}
		key, name, contentType = *f.ThumbnailPath, stem+"_thumb.jpg", previewContentType
	default:
		key, name, contentType = f.StoredPath, f.Filename, "application/octet-stream"
		if f.MimeType != nil && *f.MimeType != "" {
			contentType = *f.MimeType
		}
	}

	body, err := s.storage.Open(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("open file %d: %w", id, err)
	}
	return &domain.FileContent{Body: body, Filename: name, ContentType: contentType}, nil
}
