package store

import (
	"context"
	"fmt"

	"serviceplan/internal/utils"
	"serviceplan/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
)

const mediaTableName = "media_files"

var mediaColumns = utils.StructTagValues(types.MediaFile{})

type MediaRepository struct {
	db DB
}

func NewMediaRepository(db DB) *MediaRepository {
	return &MediaRepository{db: db}
}

func (r *MediaRepository) CreateMediaFile(ctx context.Context, file *types.MediaFile) (int64, error) {
	query, args, err := psql().
		Insert(mediaTableName).
		Columns("storage_key", "file_name", "content_type", "size_bytes").
		Values(file.StorageKey, file.FileName, file.ContentType, file.SizeBytes).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate insert media file query: %w", err)
	}

	err = r.db.QueryRow(ctx, query, args...).Scan(&file.ID, &file.CreatedAt)
	if err != nil {
		return 0, types.NewStorageError("create media file", err)
	}

	return file.ID, nil
}

func (r *MediaRepository) MediaFile(ctx context.Context, id int64) (*types.MediaFile, error) {
	query, args, err := psql().
		Select(mediaColumns...).
		From(mediaTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate media file query: %w", err)
	}

	var file types.MediaFile
	err = pgxscan.Get(ctx, r.db, &file, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrMediaNotFound
		}
		return nil, types.NewStorageError("fetch media file", err)
	}

	return &file, nil
}
