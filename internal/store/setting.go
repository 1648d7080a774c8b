package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"serviceplan/pkg/types"

	sq "github.com/Masterminds/squirrel"
)

const settingTableName = "settings"

// SettingRepository stores named JSON blobs.
type SettingRepository struct {
	db DB
}

func NewSettingRepository(db DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Setting decodes the blob stored under name into dst. It reports false when
// no such setting exists.
func (r *SettingRepository) Setting(ctx context.Context, name string, dst any) (bool, error) {
	query, args, err := psql().
		Select("value").
		From(settingTableName).
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate setting query: %w", err)
	}

	var raw []byte
	err = r.db.QueryRow(ctx, query, args...).Scan(&raw)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, types.NewStorageError("fetch setting "+name, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("failed to decode setting %s: %w", name, err)
	}

	return true, nil
}

// SaveSetting replaces the blob stored under name.
func (r *SettingRepository) SaveSetting(ctx context.Context, name string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode setting %s: %w", name, err)
	}

	query, args, err := psql().
		Insert(settingTableName).
		Columns("name", "value", "updated_at").
		Values(name, raw, time.Now()).
		Suffix("ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate save setting query: %w", err)
	}

	_, err = r.db.Exec(ctx, query, args...)
	if err != nil {
		return types.NewStorageError("save setting "+name, err)
	}

	return nil
}
