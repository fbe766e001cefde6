package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"lawflow/internal/domain"
)

const fileColumns = `id, project_id, filename, original_filename, stored_path, mime_type, file_size, version, parent_version_id,
	preview_path, thumbnail_path, scan_status, uploader, uploaded_at, created_at, updated_at`

type fileRepository struct {
	DB *DB
}

// NewFileRepository returns a domain.FileRepository backed by db.
func NewFileRepository(db *DB) domain.FileRepository {
	return &fileRepository{DB: db}
}

func scanFile(row rowScanner) (*domain.FileItem, error) {
	var f domain.FileItem
	err := row.Scan(&f.ID, &f.ProjectID, &f.Filename, &f.OriginalFilename, &f.StoredPath, &f.MimeType, &f.FileSize,
		&f.Version, &f.ParentVersionID, &f.PreviewPath, &f.ThumbnailPath, &f.ScanStatus, &f.Uploader,
		&f.UploadedAt, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	f.HasPreview = f.PreviewPath != nil && *f.PreviewPath != ""
	f.HasThumbnail = f.ThumbnailPath != nil && *f.ThumbnailPath != ""
	return &f, nil
}

func (r *fileRepository) Create(ctx context.Context, f *domain.FileItem) error {
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO files (project_id, filename, original_filename, stored_path, mime_type, file_size, version, parent_version_id,
			preview_path, thumbnail_path, scan_status, uploader, uploaded_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`,
		f.ProjectID, f.Filename, f.OriginalFilename, f.StoredPath, f.MimeType, f.FileSize, f.Version, f.ParentVersionID,
		f.PreviewPath, f.ThumbnailPath, f.ScanStatus, f.Uploader, f.UploadedAt, f.CreatedAt, f.UpdatedAt,
	).Scan(&f.ID)
	return mapWriteError(err)
}

func (r *fileRepository) GetByID(ctx context.Context, id int64) (*domain.FileItem, error) {
	f, err := scanFile(r.DB.QueryRowContext(ctx, `SELECT `+fileColumns+` FROM files WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// LatestVersion returns the highest version of filename in a project.
func (r *fileRepository) LatestVersion(ctx context.Context, projectID int64, filename string) (*domain.FileItem, error) {
	f, err := scanFile(r.DB.QueryRowContext(ctx,
		`SELECT `+fileColumns+` FROM files WHERE project_id = $1 AND original_filename = $2 ORDER BY version DESC LIMIT 1`,
		projectID, filename))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// ListVersions returns every version of filename in a project, newest first.
func (r *fileRepository) ListVersions(ctx context.Context, projectID int64, filename string) ([]*domain.FileItem, error) {
	q := listQuery{
		from:         "files",
		columns:      fileColumns,
		defaultOrder: "version DESC, id DESC",
	}.where("project_id", projectID).where("original_filename", filename)
	return pageSource[*domain.FileItem]{db: r.DB, query: q, scan: scanFile}.all(ctx)
}

func (r *fileRepository) Source(projectID int64) domain.PageSource[*domain.FileItem] {
	q := listQuery{
		from:         "files",
		columns:      fileColumns,
		defaultOrder: "uploaded_at DESC, id DESC",
	}
	if projectID != 0 {
		q = q.where("project_id", projectID)
	}
	return pageSource[*domain.FileItem]{db: r.DB, query: q, scan: scanFile}
}
