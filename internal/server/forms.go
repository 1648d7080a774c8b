package server

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"unicode/utf8"

	"serviceplan/internal/plan"
	"serviceplan/pkg/types"

	"github.com/sirupsen/logrus"
)

const maxTeamLength = 64

func (s *Service) handlePostForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		s.logger.WithError(err).Warn("failed to parse entry form")
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	var input types.EntryForm
	if err := decoder.Decode(&input, r.PostForm); err != nil {
		s.logger.WithError(err).Warn("failed to decode entry form")
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	req := s.formRequest(w, r, input.EditID)
	labels := types.LabelsFor(req.Lang)

	if !plan.DeriveState(req).Writable() {
		s.renderForm(w, r, req, "", nil)
		return
	}

	entry, err := plan.ParseEntryForm(input, s.plan.Location())
	if err != nil {
		s.renderForm(w, r, req, labels.T("invalid_date"), &input)
		return
	}

	result, err := s.plan.Save(ctx, req, entry)
	if err != nil {
		s.logger.WithError(err).WithField("entry_id", req.EditID).Error("failed to save service entry")
		s.renderForm(w, r, req, labels.T("storage_error"), &input)
		return
	}

	if !result.Written {
		s.renderForm(w, r, req, "", nil)
		return
	}

	s.redirectToForm(w, r, result.ID, "")
}

func (s *Service) handlePostUploads(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "upload too large", http.StatusRequestEntityTooLarge)
			return
		}
		s.logger.WithError(err).Warn("failed to parse upload form")
		http.Error(w, "invalid upload", http.StatusBadRequest)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	editID := formInt64(r, "edit_id")
	req := s.formRequest(w, r, editID)
	team := uploadTeam(r.FormValue("team"))

	result, err := s.plan.Upload(ctx, req, team, uploadFiles(r.MultipartForm.File["files"]))
	if err != nil {
		s.logger.WithError(err).WithField("entry_id", editID).Error("failed to process uploads")
		s.renderForm(w, r, req, types.LabelsFor(req.Lang).T("storage_error"), nil)
		return
	}

	if !result.Accepted {
		s.redirectToForm(w, r, editID, "")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"entry_id": editID,
		"stored":   result.Stored,
		"failed":   result.Failed,
	}).Info("uploads processed")

	s.redirectToForm(w, r, editID, plan.ModeEdit)
}

func (s *Service) handleDownload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	fileID := queryInt64(r, "file_id")
	if fileID == 0 {
		http.NotFound(w, r)
		return
	}

	url, err := s.plan.DownloadURL(ctx, fileID)
	if err != nil {
		if errors.Is(err, types.ErrMediaNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.WithError(err).WithField("file_id", fileID).Error("failed to resolve download")
		http.Error(w, "file unavailable", http.StatusServiceUnavailable)
		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}

func uploadFiles(headers []*multipart.FileHeader) []plan.UploadFile {
	files := make([]plan.UploadFile, 0, len(headers))
	for _, fh := range headers {
		if fh.Filename == "" {
			continue
		}
		files = append(files, plan.UploadFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}
	return files
}

// uploadTeam trims the label to the width of the team column.
func uploadTeam(team string) string {
	team = strings.TrimSpace(team)
	for utf8.RuneCountInString(team) > maxTeamLength {
		_, size := utf8.DecodeLastRuneInString(team)
		team = team[:len(team)-size]
	}
	return team
}

func formInt64(r *http.Request, key string) int64 {
	return parseID(r.FormValue(key))
}
