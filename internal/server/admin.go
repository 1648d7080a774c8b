package server

import (
	"net/http"

	"serviceplan/internal/plan"
	"serviceplan/pkg/types"
)

type RosterPageData struct {
	types.BasePageData
	Fields []plan.RosterField
}

func (s *Service) handleGetRoster(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data := &RosterPageData{BasePageData: s.basePage(w, r)}
	if queryBool(r, "saved") {
		data.Notice = data.Labels.T("roster_saved")
	}

	roster, err := s.plan.Roster(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to load roster")
		data.Error = data.Labels.T("storage_error")
		roster = types.Roster{}
	}
	data.Fields = plan.RosterEditorFields(roster, data.Labels)

	if err := s.renderTemplate(w, r, "page.admin.roster", data); err != nil {
		s.logger.WithError(err).Error("failed to render roster page")
		s.internalServerError(w)
	}
}

func (s *Service) handlePostRoster(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	roster := plan.ParseRosterForm(r.PostForm)

	if err := s.plan.SaveRoster(ctx, roster); err != nil {
		s.logger.WithError(err).Error("failed to save roster")

		data := &RosterPageData{BasePageData: s.basePage(w, r)}
		data.Error = data.Labels.T("storage_error")
		data.Fields = plan.RosterEditorFields(roster, data.Labels)

		if err := s.renderTemplate(w, r, "page.admin.roster", data); err != nil {
			s.logger.WithError(err).Error("failed to render roster page")
			s.internalServerError(w)
		}
		return
	}

	http.Redirect(w, r, "/admin/roster?saved=1", http.StatusSeeOther)
}
