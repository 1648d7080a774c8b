// Package plan holds the service plan form, list and roster logic independent
// of HTTP.
package plan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"serviceplan/pkg/types"

	"github.com/sirupsen/logrus"
)

type EntryStore interface {
	Entry(ctx context.Context, id int64) (*types.ServiceEntry, error)
	Entries(ctx context.Context, filter types.EntryFilter) ([]*types.ServiceEntry, error)
	CreateEntry(ctx context.Context, entry *types.ServiceEntry) (int64, error)
	UpdateEntry(ctx context.Context, entry *types.ServiceEntry) error
}

type UploadStore interface {
	CreateUpload(ctx context.Context, upload *types.Upload) (int64, error)
	UploadsByService(ctx context.Context, serviceID int64) ([]*types.Upload, error)
}

type RosterStore interface {
	Roster(ctx context.Context) (types.Roster, error)
	SaveRoster(ctx context.Context, roster types.Roster) error
}

// MediaStore keeps uploaded binaries and issues the file ids uploads refer to.
type MediaStore interface {
	Store(ctx context.Context, fileName, contentType string, body io.Reader, size int64) (int64, error)
	URL(ctx context.Context, fileID int64) (string, error)
}

// SundayPlanner proposes the date for a new entry.
type SundayPlanner interface {
	NextAvailableSunday(ctx context.Context) (time.Time, error)
	Location() *time.Location
	Now() time.Time
}

type Controller struct {
	entries EntryStore
	uploads UploadStore
	roster  RosterStore
	media   MediaStore
	planner SundayPlanner
	logger  *logrus.Logger

	listColumns []types.FieldKey
	linkRows    bool
}

func NewController(
	entries EntryStore,
	uploads UploadStore,
	roster RosterStore,
	media MediaStore,
	planner SundayPlanner,
	logger *logrus.Logger,
) *Controller {
	return &Controller{
		entries: entries,
		uploads: uploads,
		roster:  roster,
		media:   media,
		planner: planner,
		logger:  logger,

		listColumns: types.ContentFieldKeys(),
		linkRows:    true,
	}
}

// Form is everything needed to render the entry form.
type Form struct {
	State   State
	Caps    types.Capabilities
	Entry   *types.ServiceEntry
	Roster  types.Roster
	Uploads []types.TeamUploads
}

// ID returns the addressed entry id, 0 for a new entry.
func (f *Form) ID() int64 {
	if f.State.HasEntry() {
		return f.Entry.ID
	}
	return 0
}

func (f *Form) ReadOnly() bool {
	return !f.State.Writable()
}

// CanUpload reports whether the upload panel accepts files.
func (f *Form) CanUpload() bool {
	return f.State.HasEntry() && f.Caps.CanUpload
}

// Load resolves the form for req. An id that matches no entry falls back to
// the new-entry defaults.
func (c *Controller) Load(ctx context.Context, req Request) (*Form, error) {
	state := DeriveState(req)
	form := &Form{State: state, Caps: req.Caps}

	if state.HasEntry() {
		entry, err := c.entries.Entry(ctx, req.EditID)
		switch {
		case errors.Is(err, types.ErrEntryNotFound):
			c.logger.WithField("entry_id", req.EditID).Info("entry not found, showing new entry form")
			req.EditID = 0
			form.State = DeriveState(req)
		case err != nil:
			return nil, err
		default:
			entry.Date = entry.Date.In(c.planner.Location())
			form.Entry = entry

			uploads, err := c.uploads.UploadsByService(ctx, entry.ID)
			if err != nil {
				return nil, err
			}
			form.Uploads = GroupByTeam(uploads)
		}
	}

	if form.Entry == nil {
		date, err := c.planner.NextAvailableSunday(ctx)
		if err != nil {
			return nil, err
		}
		form.Entry = &types.ServiceEntry{Date: date}
	}

	roster, err := c.roster.Roster(ctx)
	if err != nil {
		return nil, err
	}
	form.Roster = roster

	return form, nil
}

type SaveResult struct {
	ID      int64
	Written bool
	Created bool
}

// Save writes entry according to the state derived from req. Writes the
// caller is not permitted to make are dropped without error. entry carries
// the complete field set; omitted fields are stored empty.
func (c *Controller) Save(ctx context.Context, req Request, entry *types.ServiceEntry) (SaveResult, error) {
	state := DeriveState(req)
	log := c.logger.WithFields(logrus.Fields{"entry_id": req.EditID, "state": state.String()})

	switch state {
	case StateNew:
		entry.ID = 0
		id, err := c.entries.CreateEntry(ctx, entry)
		if err != nil {
			return SaveResult{}, err
		}
		log.WithField("created_id", id).Info("service entry created")
		return SaveResult{ID: id, Written: true, Created: true}, nil

	case StateEdit:
		entry.ID = req.EditID
		err := c.entries.UpdateEntry(ctx, entry)
		if errors.Is(err, types.ErrEntryNotFound) {
			log.Info("update of missing entry ignored")
			return SaveResult{}, nil
		}
		if err != nil {
			return SaveResult{}, err
		}
		log.Info("service entry updated")
		return SaveResult{ID: entry.ID, Written: true}, nil
	}

	log.Debug("save ignored for read-only request")
	return SaveResult{ID: req.EditID}, nil
}

// UploadFile is one file of an upload submission.
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

type UploadResult struct {
	Accepted bool
	Stored   int
	Failed   int
}

// Upload stores files for the entry addressed by req under team. Each file is
// handled on its own: a failing file is logged and skipped. The entry id is
// not validated; a missing entry leaves the date out of the stored names.
func (c *Controller) Upload(ctx context.Context, req Request, team string, files []UploadFile) (UploadResult, error) {
	if req.EditID <= 0 || !req.Caps.CanUpload {
		c.logger.WithField("entry_id", req.EditID).Debug("upload ignored for request without permission")
		return UploadResult{}, nil
	}

	result := UploadResult{Accepted: true}
	if len(files) == 0 {
		return result, nil
	}

	var date time.Time
	entry, err := c.entries.Entry(ctx, req.EditID)
	switch {
	case errors.Is(err, types.ErrEntryNotFound):
		c.logger.WithField("entry_id", req.EditID).Warn("uploading to an entry that does not exist")
	case err != nil:
		return UploadResult{}, err
	default:
		date = entry.Date.In(c.planner.Location())
	}

	for _, file := range files {
		log := c.logger.WithFields(logrus.Fields{"entry_id": req.EditID, "team": team, "file": file.Name})

		if err := c.storeUpload(ctx, req.EditID, date, team, file); err != nil {
			log.WithError(err).Warn("failed to store upload")
			result.Failed++
			continue
		}

		result.Stored++
	}

	return result, nil
}

func (c *Controller) storeUpload(ctx context.Context, serviceID int64, date time.Time, team string, file UploadFile) error {
	name := UploadFileName(date, team, file.Name)

	body, err := file.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer body.Close()

	fileID, err := c.media.Store(ctx, name, file.ContentType, body, file.Size)
	if err != nil {
		return err
	}

	_, err = c.uploads.CreateUpload(ctx, &types.Upload{
		ServiceID: serviceID,
		FileID:    fileID,
		FileName:  name,
		Team:      team,
	})
	return err
}

// Location is the zone dates are shown and entered in.
func (c *Controller) Location() *time.Location {
	return c.planner.Location()
}

// DownloadURL returns a link to the stored file of an upload.
func (c *Controller) DownloadURL(ctx context.Context, fileID int64) (string, error) {
	return c.media.URL(ctx, fileID)
}
