package store

import (
	"context"
	"fmt"

	"serviceplan/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
)

const uploadTableName = "service_uploads"

var uploadTableColumns = []string{
	"id",
	"service_id",
	"file_id",
	"COALESCE(file_name, '') AS file_name",
	"COALESCE(team, '') AS team",
	"uploaded_at",
}

type UploadRepository struct {
	db DB
}

func NewUploadRepository(db DB) *UploadRepository {
	return &UploadRepository{db: db}
}

// CreateUpload appends an upload row. The referenced service entry is not
// checked for existence.
func (r *UploadRepository) CreateUpload(ctx context.Context, upload *types.Upload) (int64, error) {
	query, args, err := psql().
		Insert(uploadTableName).
		Columns("service_id", "file_id", "file_name", "team").
		Values(upload.ServiceID, upload.FileID, upload.FileName, upload.Team).
		Suffix("RETURNING id, uploaded_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate insert upload query: %w", err)
	}

	err = r.db.QueryRow(ctx, query, args...).Scan(&upload.ID, &upload.UploadedAt)
	if err != nil {
		return 0, types.NewStorageError("create upload", err)
	}

	return upload.ID, nil
}

// UploadsByService returns the uploads of a service entry in insertion order.
func (r *UploadRepository) UploadsByService(ctx context.Context, serviceID int64) ([]*types.Upload, error) {
	query, args, err := psql().
		Select(uploadTableColumns...).
		From(uploadTableName).
		Where(sq.Eq{"service_id": serviceID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate uploads query: %w", err)
	}

	var uploads = make([]*types.Upload, 0)
	err = pgxscan.Select(ctx, r.db, &uploads, query, args...)
	if err != nil {
		return nil, types.NewStorageError("fetch uploads", err)
	}

	return uploads, nil
}
