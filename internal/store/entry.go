package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"serviceplan/internal/utils"
	"serviceplan/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
)

const entryTableName = "service_plan"

var entryColumns = utils.StructTagValues(types.ServiceEntry{})

// entrySelectColumns reads nullable text columns as empty strings.
var entrySelectColumns = func() []string {
	out := make([]string, 0, len(entryColumns))
	for _, col := range entryColumns {
		switch col {
		case "id", "date":
			out = append(out, col)
		default:
			out = append(out, fmt.Sprintf("COALESCE(%s, '') AS %s", col, col))
		}
	}
	return out
}()

type EntryRepository struct {
	db DB
}

func NewEntryRepository(db DB) *EntryRepository {
	return &EntryRepository{db: db}
}

func (r *EntryRepository) Entry(ctx context.Context, id int64) (*types.ServiceEntry, error) {
	query, args, err := psql().
		Select(entrySelectColumns...).
		From(entryTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate entry query: %w", err)
	}

	var entry = new(types.ServiceEntry)
	err = pgxscan.Get(ctx, r.db, entry, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrEntryNotFound
		}
		return nil, types.NewStorageError("fetch entry", err)
	}

	return entry, nil
}

// Entries returns entries ordered by date. An empty result is not an error.
func (r *EntryRepository) Entries(ctx context.Context, filter types.EntryFilter) ([]*types.ServiceEntry, error) {
	builder := psql().
		Select(entrySelectColumns...).
		From(entryTableName).
		OrderBy("date ASC", "id ASC")

	if filter.OnlyUpcoming {
		builder = builder.Where(sq.GtOrEq{"date": filter.Now})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate entries query: %w", err)
	}

	var entries = make([]*types.ServiceEntry, 0)
	err = pgxscan.Select(ctx, r.db, &entries, query, args...)
	if err != nil {
		return nil, types.NewStorageError("fetch entries", err)
	}

	return entries, nil
}

// LatestDate returns the greatest stored date, or nil if there are no entries.
func (r *EntryRepository) LatestDate(ctx context.Context) (*time.Time, error) {
	query, args, err := psql().
		Select("MAX(date)").
		From(entryTableName).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate latest date query: %w", err)
	}

	var latest *time.Time
	err = r.db.QueryRow(ctx, query, args...).Scan(&latest)
	if err != nil {
		return nil, types.NewStorageError("fetch latest date", err)
	}

	return latest, nil
}

func (r *EntryRepository) CreateEntry(ctx context.Context, entry *types.ServiceEntry) (int64, error) {

	entryMap := utils.StructToMap(entry)
	delete(entryMap, "id")

	query, args, err := psql().
		Insert(entryTableName).
		SetMap(entryMap).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate insert entry query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, query, args...).Scan(&id)
	if err != nil {
		return 0, types.NewStorageError("create entry", err)
	}

	entry.ID = id
	return id, nil
}

// UpdateEntry overwrites every field of the stored entry with entry's values.
func (r *EntryRepository) UpdateEntry(ctx context.Context, entry *types.ServiceEntry) error {

	entryMap := utils.StructToMap(entry)
	delete(entryMap, "id")

	query, args, err := psql().
		Update(entryTableName).
		SetMap(entryMap).
		Where(sq.Eq{"id": entry.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update entry query for entry %d: %w", entry.ID, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return types.NewStorageError("update entry", err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrEntryNotFound
	}

	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
