package plan

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"
	"time"

	"serviceplan/pkg/types"

	"github.com/sirupsen/logrus"
)

type fakeEntries struct {
	byID    map[int64]*types.ServiceEntry
	list    []*types.ServiceEntry
	nextID  int64
	err     error
	created []*types.ServiceEntry
	updated []*types.ServiceEntry
	filter  types.EntryFilter
}

func newFakeEntries(entries ...*types.ServiceEntry) *fakeEntries {
	f := &fakeEntries{byID: map[int64]*types.ServiceEntry{}, nextID: 100}
	for _, e := range entries {
		f.byID[e.ID] = e
		f.list = append(f.list, e)
	}
	return f
}

func (f *fakeEntries) Entry(ctx context.Context, id int64) (*types.ServiceEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.byID[id]
	if !ok {
		return nil, types.ErrEntryNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEntries) Entries(ctx context.Context, filter types.EntryFilter) ([]*types.ServiceEntry, error) {
	f.filter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

func (f *fakeEntries) CreateEntry(ctx context.Context, entry *types.ServiceEntry) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	entry.ID = f.nextID
	f.created = append(f.created, entry)
	return entry.ID, nil
}

func (f *fakeEntries) UpdateEntry(ctx context.Context, entry *types.ServiceEntry) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[entry.ID]; !ok {
		return types.ErrEntryNotFound
	}
	f.updated = append(f.updated, entry)
	return nil
}

type fakeUploads struct {
	created []*types.Upload
	list    []*types.Upload
	err     error
}

func (f *fakeUploads) CreateUpload(ctx context.Context, upload *types.Upload) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	upload.ID = int64(len(f.created) + 1)
	f.created = append(f.created, upload)
	return upload.ID, nil
}

func (f *fakeUploads) UploadsByService(ctx context.Context, serviceID int64) ([]*types.Upload, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*types.Upload
	for _, u := range f.list {
		if u.ServiceID == serviceID {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeRoster struct {
	roster types.Roster
	saved  types.Roster
	err    error
}

func (f *fakeRoster) Roster(ctx context.Context) (types.Roster, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.roster == nil {
		return types.Roster{}, nil
	}
	return f.roster, nil
}

func (f *fakeRoster) SaveRoster(ctx context.Context, roster types.Roster) error {
	if f.err != nil {
		return f.err
	}
	f.saved = roster
	return nil
}

type storedObject struct {
	name string
	body string
}

type fakeMedia struct {
	stored []storedObject
	failOn string
}

func (f *fakeMedia) Store(ctx context.Context, fileName, contentType string, body io.Reader, size int64) (int64, error) {
	if f.failOn != "" && bytes.Contains([]byte(fileName), []byte(f.failOn)) {
		return 0, errors.New("bucket unavailable")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return 0, err
	}
	f.stored = append(f.stored, storedObject{name: fileName, body: string(data)})
	return int64(len(f.stored) + 500), nil
}

func (f *fakeMedia) URL(ctx context.Context, fileID int64) (string, error) {
	return "https://files.example/" + strconv.FormatInt(fileID, 10), nil
}

type fakePlanner struct {
	next time.Time
	now  time.Time
	loc  *time.Location
	err  error
}

func (f *fakePlanner) NextAvailableSunday(ctx context.Context) (time.Time, error) {
	return f.next, f.err
}

func (f *fakePlanner) Location() *time.Location { return f.loc }

func (f *fakePlanner) Now() time.Time { return f.now }

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func fileFrom(name, body string) UploadFile {
	return UploadFile{
		Name:        name,
		ContentType: "application/pdf",
		Size:        int64(len(body)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewBufferString(body)), nil
		},
	}
}
