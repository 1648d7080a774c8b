package server

import (
	"net/http"

	"serviceplan/internal"
	"serviceplan/pkg/types"

	"github.com/gorilla/csrf"
)

func (s *Service) renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) error {
	role := roleFromContext(r.Context())

	if setter, ok := data.(types.NavbarDataSetter); ok {
		nav := types.NavbarData{
			Role:      role,
			IsEditor:  role == types.RoleEditor || role == types.RoleAdmin,
			IsAdmin:   role == types.RoleAdmin,
			Lang:      s.language(w, r),
			CSRFField: csrf.TemplateField(r),
		}
		if s.config.LanguageSwitchable {
			nav.Languages = []types.Language{types.LanguageGerman, types.LanguageEnglish}
		}
		setter.SetNavbarData(nav)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return s.templates.ExecuteTemplate(w, templateName, data)
}

// language picks the display language. With switching enabled a ?lang=
// parameter wins and is remembered in a cookie.
func (s *Service) language(w http.ResponseWriter, r *http.Request) types.Language {
	fallback, ok := types.ParseLanguage(s.config.Language)
	if !ok {
		fallback = types.LanguageGerman
	}

	if !s.config.LanguageSwitchable {
		return fallback
	}

	if lang, ok := types.ParseLanguage(r.URL.Query().Get("lang")); ok {
		http.SetCookie(w, &http.Cookie{
			Name:     internal.COOKIE_LANGUAGE_NAME,
			Value:    string(lang),
			HttpOnly: true,
			Secure:   s.config.SecureCookies,
			SameSite: http.SameSiteLaxMode,
			Path:     "/",
			MaxAge:   365 * 24 * 60 * 60,
		})
		return lang
	}

	if cookie, err := r.Cookie(internal.COOKIE_LANGUAGE_NAME); err == nil {
		if lang, ok := types.ParseLanguage(cookie.Value); ok {
			return lang
		}
	}

	return fallback
}

func (s *Service) basePage(w http.ResponseWriter, r *http.Request) types.BasePageData {
	labels := types.LabelsFor(s.language(w, r))
	return types.BasePageData{
		Title:  labels.T("title"),
		Labels: labels,
	}
}

func (s *Service) capabilities(r *http.Request) types.Capabilities {
	return types.CapabilitiesFor(s.config, roleFromContext(r.Context()))
}
