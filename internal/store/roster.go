package store

import (
	"context"

	"serviceplan/pkg/types"
)

// RosterRepository keeps the roster as a single settings blob that is
// replaced wholesale on every save.
type RosterRepository struct {
	settings *SettingRepository
}

func NewRosterRepository(db DB) *RosterRepository {
	return &RosterRepository{settings: NewSettingRepository(db)}
}

func (r *RosterRepository) Roster(ctx context.Context) (types.Roster, error) {
	roster := types.Roster{}
	if _, err := r.settings.Setting(ctx, types.RosterSettingName, &roster); err != nil {
		return nil, err
	}
	return roster.Normalize(), nil
}

func (r *RosterRepository) SaveRoster(ctx context.Context, roster types.Roster) error {
	return r.settings.SaveSetting(ctx, types.RosterSettingName, roster.Normalize())
}
