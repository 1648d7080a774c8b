package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"serviceplan/internal"
	"serviceplan/internal/plan"
	"serviceplan/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memEntries struct {
	entries map[int64]*types.ServiceEntry
	nextID  int64
	err     error
}

func (m *memEntries) Entry(ctx context.Context, id int64) (*types.ServiceEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.entries[id]
	if !ok {
		return nil, types.ErrEntryNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *memEntries) Entries(ctx context.Context, filter types.EntryFilter) ([]*types.ServiceEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*types.ServiceEntry
	for _, e := range m.entries {
		if filter.OnlyUpcoming && e.Date.Before(filter.Now) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memEntries) CreateEntry(ctx context.Context, entry *types.ServiceEntry) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.nextID++
	entry.ID = m.nextID
	m.entries[entry.ID] = entry
	return entry.ID, nil
}

func (m *memEntries) UpdateEntry(ctx context.Context, entry *types.ServiceEntry) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.entries[entry.ID]; !ok {
		return types.ErrEntryNotFound
	}
	m.entries[entry.ID] = entry
	return nil
}

type memUploads struct {
	uploads []*types.Upload
}

func (m *memUploads) CreateUpload(ctx context.Context, upload *types.Upload) (int64, error) {
	upload.ID = int64(len(m.uploads) + 1)
	m.uploads = append(m.uploads, upload)
	return upload.ID, nil
}

func (m *memUploads) UploadsByService(ctx context.Context, serviceID int64) ([]*types.Upload, error) {
	var out []*types.Upload
	for _, u := range m.uploads {
		if u.ServiceID == serviceID {
			out = append(out, u)
		}
	}
	return out, nil
}

type memRoster struct {
	roster types.Roster
}

func (m *memRoster) Roster(ctx context.Context) (types.Roster, error) {
	if m.roster == nil {
		return types.Roster{}, nil
	}
	return m.roster, nil
}

func (m *memRoster) SaveRoster(ctx context.Context, roster types.Roster) error {
	m.roster = roster
	return nil
}

type memMedia struct {
	names []string
}

func (m *memMedia) Store(ctx context.Context, fileName, contentType string, body io.Reader, size int64) (int64, error) {
	if _, err := io.ReadAll(body); err != nil {
		return 0, err
	}
	m.names = append(m.names, fileName)
	return int64(len(m.names)), nil
}

func (m *memMedia) URL(ctx context.Context, fileID int64) (string, error) {
	if fileID > int64(len(m.names)) {
		return "", types.ErrMediaNotFound
	}
	return "https://files.example/" + m.names[fileID-1], nil
}

type fixedPlanner struct{}

func (fixedPlanner) NextAvailableSunday(ctx context.Context) (time.Time, error) {
	return time.Date(2024, 6, 16, 10, 0, 0, 0, time.UTC), nil
}

func (fixedPlanner) Location() *time.Location { return time.UTC }

func (fixedPlanner) Now() time.Time { return time.Date(2024, 6, 4, 12, 0, 0, 0, time.UTC) }

type testEnv struct {
	svc     *Service
	entries *memEntries
	uploads *memUploads
	roster  *memRoster
	media   *memMedia
}

const (
	editorPassword = "psalm23"
	adminPassword  = "john316"
)

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	editorHash, err := bcrypt.GenerateFromPassword([]byte(editorPassword), bcrypt.MinCost)
	require.NoError(t, err)
	adminHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &types.Config{
		ServerPort:         0,
		Language:           "de",
		LanguageSwitchable: true,
		UploadsInTab:       true,
		MaxUploadMB:        8,
		EditorCanCreate:    true,
		EditorCanEdit:      true,
		EditorCanUpload:    true,
		EditorPasswordHash: string(editorHash),
		AdminPasswordHash:  string(adminHash),
		CookieName:         "serviceplan_session",
		SessionMaxAgeSec:   3600,
	}

	env := &testEnv{
		entries: &memEntries{entries: map[int64]*types.ServiceEntry{
			7: {ID: 7, Date: time.Date(2024, 6, 9, 10, 0, 0, 0, time.UTC), Sermon: "Anna", Info: "**Abendmahl**"},
			3: {ID: 3, Date: time.Date(2024, 5, 26, 10, 0, 0, 0, time.UTC), Sermon: "Vergangen"},
		}, nextID: 100},
		uploads: &memUploads{},
		roster:  &memRoster{},
		media:   &memMedia{},
	}

	controller := plan.NewController(env.entries, env.uploads, env.roster, env.media, fixedPlanner{}, logger)

	env.svc, err = New(cfg, logger, controller)
	require.NoError(t, err)

	return env
}

func (e *testEnv) do(t *testing.T, req *http.Request, role types.Role) *httptest.ResponseRecorder {
	t.Helper()

	if role != types.RoleAnonymous {
		value, err := e.svc.cookie.Encode(internal.SESSION_VALUE_NAME, session{Role: role, IssuedAt: time.Now()})
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: e.svc.config.CookieName, Value: value})
	}

	rec := httptest.NewRecorder()
	e.svc.Handler().ServeHTTP(rec, req)
	return rec
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHomeRedirects(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/", nil), types.RoleAnonymous)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/plan", rec.Header().Get("Location"))
}

func TestListUpcoming(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/plan", nil), types.RoleAnonymous)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "2024-06-09")
	assert.Contains(t, body, "/plan/form?edit_id=7")
	assert.Contains(t, body, "Anna")
	assert.NotContains(t, body, "Vergangen")
	assert.NotContains(t, body, "new_entry=true")
}

func TestListShowAll(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/plan?show_all=1", nil), types.RoleEditor)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Vergangen")
	assert.Contains(t, body, "new_entry=true")
}

func TestListStorageError(t *testing.T) {
	env := newTestEnv(t)
	env.entries.err = types.NewStorageError("fetch entries", errors.New("connection refused"))

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/plan", nil), types.RoleAnonymous)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Die Daten konnten nicht geladen oder gespeichert werden.")
}

func TestListLanguageSwitch(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/plan?lang=en", nil), types.RoleAnonymous)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Service Plan")

	var found bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == internal.COOKIE_LANGUAGE_NAME {
			found = true
			assert.Equal(t, "en", c.Value)
		}
	}
	assert.True(t, found)
}

func TestFormViewForAnonymous(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/plan/form?edit_id=7", nil), types.RoleAnonymous)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `data-state="view"`)
	assert.Contains(t, body, "Anna")
	assert.Contains(t, body, "<strong>Abendmahl</strong>")
	assert.NotContains(t, body, `action="/plan/uploads"`)
	assert.NotContains(t, body, `name="sermon"`)
}

func TestFormEditForEditor(t *testing.T) {
	env := newTestEnv(t)
	env.roster.roster = types.Roster{types.FieldSermon: {"Anna", "Ben"}}

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/plan/form?edit_id=7", nil), types.RoleEditor)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `data-state="edit"`)
	assert.Contains(t, body, `name="sermon" value="Anna"`)
	assert.Contains(t, body, `<datalist id="roster-sermon">`)
	assert.Contains(t, body, `value="2024-06-09T10:00"`)
	assert.Contains(t, body, `action="/plan/uploads"`)
}

func TestFormNewDefaultsToNextSunday(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/plan/form?edit_id=7&new_entry=true", nil), types.RoleEditor)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `data-state="new"`)
	assert.Contains(t, body, `value="2024-06-16T10:00"`)
	assert.NotContains(t, body, `action="/plan/uploads"`)
}

func TestPostFormCreates(t *testing.T) {
	env := newTestEnv(t)

	values := url.Values{
		"edit_id": {"0"},
		"date":    {"2024-06-16T10:00"},
		"sermon":  {"Clara"},
	}

	rec := env.do(t, postForm("/plan/form", values), types.RoleEditor)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/plan/form?edit_id=101", rec.Header().Get("Location"))

	created := env.entries.entries[101]
	require.NotNil(t, created)
	assert.Equal(t, "Clara", created.Sermon)
	assert.True(t, created.Date.Equal(time.Date(2024, 6, 16, 10, 0, 0, 0, time.UTC)))
}

func TestPostFormUpdates(t *testing.T) {
	env := newTestEnv(t)

	values := url.Values{
		"edit_id": {"7"},
		"date":    {"2024-06-09T11:00"},
		"sermon":  {"Dora"},
	}

	rec := env.do(t, postForm("/plan/form", values), types.RoleEditor)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/plan/form?edit_id=7", rec.Header().Get("Location"))

	updated := env.entries.entries[7]
	assert.Equal(t, "Dora", updated.Sermon)
	assert.Equal(t, "", updated.Info)
}

func TestPostFormIgnoredForAnonymous(t *testing.T) {
	env := newTestEnv(t)

	values := url.Values{"edit_id": {"7"}, "date": {"2024-06-09T10:00"}, "sermon": {"Mallory"}}

	rec := env.do(t, postForm("/plan/form", values), types.RoleAnonymous)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Anna", env.entries.entries[7].Sermon)
	assert.Contains(t, rec.Body.String(), "Anna")
}

func TestPostFormInvalidDate(t *testing.T) {
	env := newTestEnv(t)

	values := url.Values{"edit_id": {"7"}, "date": {"next sunday"}, "sermon": {"Dora"}, "info": {"Abendmahl"}}

	rec := env.do(t, postForm("/plan/form", values), types.RoleEditor)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Bitte ein gültiges Datum angeben.")
	assert.Contains(t, body, `name="date" value="next sunday"`)
	assert.Contains(t, body, `name="sermon" value="Dora"`)
	assert.Contains(t, body, ">Abendmahl</textarea>")
	assert.NotContains(t, body, `name="sermon" value="Anna"`)
	assert.Equal(t, "Anna", env.entries.entries[7].Sermon)
}

func TestPostFormStorageError(t *testing.T) {
	env := newTestEnv(t)
	env.entries.err = types.NewStorageError("create entry", errors.New("disk full"))

	values := url.Values{"edit_id": {"0"}, "date": {"2024-06-16T10:00"}}

	rec := env.do(t, postForm("/plan/form", values), types.RoleEditor)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Die Daten konnten nicht geladen oder gespeichert werden.")
}

func uploadRequest(t *testing.T, editID, team string, files map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("edit_id", editID))
	require.NoError(t, mw.WriteField("team", team))
	for name, content := range files {
		part, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/plan/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploads(t *testing.T) {
	env := newTestEnv(t)

	req := uploadRequest(t, "7", "🎵 Musik & Technik", map[string]string{"Plan.pdf": "pdf"})
	rec := env.do(t, req, types.RoleEditor)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/plan/form?edit_id=7&mode=edit", rec.Header().Get("Location"))

	require.Len(t, env.uploads.uploads, 1)
	assert.Equal(t, "csp_2024-06-09_Musik__Technik_Plan.pdf", env.uploads.uploads[0].FileName)
	assert.Equal(t, "🎵 Musik & Technik", env.uploads.uploads[0].Team)

	rec = env.do(t, httptest.NewRequest(http.MethodGet, "/plan/form?edit_id=7&mode=edit", nil), types.RoleEditor)
	assert.Contains(t, rec.Body.String(), "csp_2024-06-09_Musik__Technik_Plan.pdf")
	assert.Contains(t, rec.Body.String(), "/plan/files/download?file_id=1")
}

func TestUploadsIgnoredForAnonymous(t *testing.T) {
	env := newTestEnv(t)

	req := uploadRequest(t, "7", "🎈 Kinder", map[string]string{"a.pdf": "a"})
	rec := env.do(t, req, types.RoleAnonymous)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/plan/form?edit_id=7", rec.Header().Get("Location"))
	assert.Empty(t, env.uploads.uploads)
}

func TestDownload(t *testing.T) {
	env := newTestEnv(t)
	env.media.names = []string{"csp_a.pdf"}

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/plan/files/download?file_id=1", nil), types.RoleAnonymous)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://files.example/csp_a.pdf", rec.Header().Get("Location"))

	rec = env.do(t, httptest.NewRequest(http.MethodGet, "/plan/files/download?file_id=9", nil), types.RoleAnonymous)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRosterRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)

	for _, role := range []types.Role{types.RoleAnonymous, types.RoleEditor} {
		rec := env.do(t, httptest.NewRequest(http.MethodGet, "/admin/roster", nil), role)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, rec.Body.String())

		rec = env.do(t, postForm("/admin/roster", url.Values{"sermon": {"Eve"}}), role)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	}

	assert.Nil(t, env.roster.roster)
}

func TestRosterEditor(t *testing.T) {
	env := newTestEnv(t)
	env.roster.roster = types.Roster{types.FieldSermon: {"Anna", "Ben"}}

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/admin/roster", nil), types.RoleAdmin)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `name="sermon" value="Anna, Ben"`)
	assert.NotContains(t, body, `name="date"`)
	assert.Equal(t, 13, strings.Count(body, `id="roster-`))

	rec = env.do(t, postForm("/admin/roster", url.Values{
		"sermon":     {"Clara, Dora ,"},
		"music_resp": {"Eve"},
	}), types.RoleAdmin)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/roster?saved=1", rec.Header().Get("Location"))

	assert.Equal(t, types.Roster{
		types.FieldSermon:    {"Clara", "Dora"},
		types.FieldMusicResp: {"Eve"},
	}, env.roster.roster)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, postForm("/login", url.Values{"password": {"wrong"}}), types.RoleAnonymous)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Das Passwort ist falsch.")

	rec = env.do(t, postForm("/login", url.Values{"password": {adminPassword}, "next": {"/admin/roster"}}), types.RoleAnonymous)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/roster", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/admin/roster", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	env.svc.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginEditorRedirectsSafely(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, postForm("/login", url.Values{"password": {editorPassword}, "next": {"//evil.example"}}), types.RoleAnonymous)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/plan", rec.Header().Get("Location"))
}

func TestCalendarFeed(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/plan.ics", nil), types.RoleAnonymous)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Equal(t, 1, strings.Count(body, "BEGIN:VEVENT"))
	assert.Contains(t, body, "SUMMARY:Gottesdienst: Anna")
}
