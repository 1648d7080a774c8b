package server

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"serviceplan/internal/calendar"
	"serviceplan/internal/plan"
	"serviceplan/pkg/types"
)

type ListPageData struct {
	types.BasePageData
	View      *plan.ListView
	CanCreate bool
}

type FormPageData struct {
	types.BasePageData
	State        string
	EntryID      int64
	ReadOnly     bool
	CanCreate    bool
	CanEdit      bool
	CanUpload    bool
	UploadsInTab bool
	Tabs         []FormTab
	Teams        []string
	Uploads      []types.TeamUploads
}

type FormTab struct {
	Key    string
	Label  string
	Fields []FormField
}

type FormField struct {
	Key         string
	Label       string
	Widget      string
	Value       string
	Markdown    template.HTML
	Suggestions []string
}

func (s *Service) handleHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/plan", http.StatusSeeOther)
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Service) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data := &ListPageData{
		BasePageData: s.basePage(w, r),
		CanCreate:    s.capabilities(r).CanCreate,
	}

	showAll := queryBool(r, "show_all")
	view, err := s.plan.List(ctx, plan.ListRequest{ShowAll: showAll, Lang: s.language(w, r)})
	if err != nil {
		s.logger.WithError(err).Error("failed to load service entries")
		data.Error = data.Labels.T("storage_error")
		view = &plan.ListView{ShowAll: showAll}
	}
	data.View = view

	if err := s.renderTemplate(w, r, "page.list", data); err != nil {
		s.logger.WithError(err).Error("failed to render list page")
		s.internalServerError(w)
	}
}

func (s *Service) formRequest(w http.ResponseWriter, r *http.Request, editID int64) plan.Request {
	return plan.Request{
		EditID:   editID,
		Mode:     r.URL.Query().Get("mode"),
		NewEntry: queryBool(r, "new_entry"),
		Caps:     s.capabilities(r),
		Lang:     s.language(w, r),
	}
}

func (s *Service) handleGetForm(w http.ResponseWriter, r *http.Request) {
	req := s.formRequest(w, r, queryInt64(r, "edit_id"))
	s.renderForm(w, r, req, "", nil)
}

// renderForm loads and renders the form for req. A storage failure renders
// the page with an inline message instead of the form. Values of a rejected
// submission replace the loaded ones.
func (s *Service) renderForm(w http.ResponseWriter, r *http.Request, req plan.Request, message string, submitted *types.EntryForm) {
	ctx := r.Context()

	data := &FormPageData{
		BasePageData: s.basePage(w, r),
		UploadsInTab: s.config.UploadsInTab,
		CanCreate:    req.Caps.CanCreate,
	}
	data.Error = message

	form, err := s.plan.Load(ctx, req)
	if err != nil {
		s.logger.WithError(err).WithField("entry_id", req.EditID).Error("failed to load service entry")
		data.Error = data.Labels.T("storage_error")
		data.State = plan.StateDenied.String()
		data.ReadOnly = true
	} else {
		s.fillForm(data, form)
		if submitted != nil {
			keepSubmitted(data, *submitted)
		}
	}

	if err := s.renderTemplate(w, r, "page.form", data); err != nil {
		s.logger.WithError(err).Error("failed to render form page")
		s.internalServerError(w)
	}
}

func (s *Service) fillForm(data *FormPageData, form *plan.Form) {
	labels := data.Labels
	loc := s.plan.Location()

	data.State = form.State.String()
	data.EntryID = form.ID()
	data.ReadOnly = form.ReadOnly()
	data.CanEdit = form.State == plan.StateView && form.Caps.CanEdit
	data.CanUpload = form.CanUpload()
	data.Teams = labels.GroupLabels()
	data.Uploads = form.Uploads

	for _, g := range types.Groups {
		tab := FormTab{Key: string(g), Label: labels.Group(g)}

		for _, f := range types.FieldsInGroup(g) {
			field := FormField{
				Key:    string(f.Key),
				Label:  labels.Field(f.Key),
				Widget: string(f.Widget),
			}

			if f.Key == types.FieldDate {
				field.Value = plan.FormDateValue(form.Entry.Date, loc)
			} else {
				field.Value = form.Entry.Value(f.Key)
				field.Suggestions = form.Roster.Names(f.Key)
			}

			if f.Widget == types.WidgetTextarea && data.ReadOnly && field.Value != "" {
				field.Markdown = renderMarkdown(field.Value)
			}

			tab.Fields = append(tab.Fields, field)
		}

		data.Tabs = append(data.Tabs, tab)
	}
}

func keepSubmitted(data *FormPageData, submitted types.EntryForm) {
	entry := plan.EntryFromForm(submitted)
	for i := range data.Tabs {
		for j := range data.Tabs[i].Fields {
			field := &data.Tabs[i].Fields[j]
			if field.Key == string(types.FieldDate) {
				field.Value = submitted.Date
				continue
			}
			field.Value = entry.Value(types.FieldKey(field.Key))
		}
	}
}

func (s *Service) handleCalendar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entries, err := s.plan.Entries(ctx, queryBool(r, "show_all"))
	if err != nil {
		s.logger.WithError(err).Error("failed to load service entries for calendar")
		http.Error(w, "service plan unavailable", http.StatusServiceUnavailable)
		return
	}

	labels := types.LabelsFor(s.language(w, r))
	base := requestBaseURL(r)

	cal := calendar.Build(entries, calendar.Options{
		Name:   labels.T("title"),
		Title:  labels.T("service"),
		Labels: labels,
		Link:   func(id int64) string { return base + plan.FormLink(id) },
	})

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `inline; filename="plan.ics"`)
	_, _ = w.Write([]byte(cal.Serialize()))
}

func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, r.Host)
}

func queryInt64(r *http.Request, key string) int64 {
	return parseID(r.URL.Query().Get(key))
}

// parseID reads a positive id; anything else is 0.
func parseID(v string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

func queryBool(r *http.Request, key string) bool {
	switch r.URL.Query().Get(key) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func (s *Service) internalServerError(w http.ResponseWriter) {
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
