package server

import (
	"net/http"
	"time"

	"serviceplan/internal"
	"serviceplan/pkg/types"

	"golang.org/x/crypto/bcrypt"
)

func (s *Service) handleGetLogin(w http.ResponseWriter, r *http.Request) {
	data := &types.LoginPageData{
		BasePageData: s.basePage(w, r),
		Next:         safeNext(r.URL.Query().Get("next")),
	}

	if err := s.renderTemplate(w, r, "page.login", data); err != nil {
		s.logger.WithError(err).Error("failed to render login page")
		s.internalServerError(w)
	}
}

func (s *Service) handlePostLogin(w http.ResponseWriter, r *http.Request) {
	password := r.FormValue("password")
	next := safeNext(r.FormValue("next"))

	role, ok := s.authenticate(password)
	if !ok {
		s.logger.Info("login failed")

		data := &types.LoginPageData{BasePageData: s.basePage(w, r), Next: next}
		data.Error = data.Labels.T("login_failed")

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnauthorized)
		if err := s.renderTemplate(w, r, "page.login", data); err != nil {
			s.logger.WithError(err).Error("failed to render login page")
		}
		return
	}

	encoded, err := s.cookie.Encode(internal.SESSION_VALUE_NAME, session{Role: role, IssuedAt: time.Now()})
	if err != nil {
		s.logger.WithError(err).Error("failed to encode session")
		s.internalServerError(w)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.config.CookieName,
		Value:    encoded,
		HttpOnly: true,
		Secure:   s.config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   s.config.SessionMaxAgeSec,
		Path:     "/",
	})

	s.logger.WithField("role", role).Info("user logged in")
	http.Redirect(w, r, next, http.StatusSeeOther)
}

func (s *Service) handlePostLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.CookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   s.config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})

	http.Redirect(w, r, "/plan", http.StatusSeeOther)
}

// authenticate checks password against the admin passphrase first.
func (s *Service) authenticate(password string) (types.Role, bool) {
	if password == "" {
		return types.RoleAnonymous, false
	}

	if matches(s.config.AdminPasswordHash, password) {
		return types.RoleAdmin, true
	}
	if matches(s.config.EditorPasswordHash, password) {
		return types.RoleEditor, true
	}

	return types.RoleAnonymous, false
}

func matches(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
