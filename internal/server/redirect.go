package server

import (
	"fmt"
	"net/http"
	"strings"

	"serviceplan/internal/plan"
)

func (s *Service) redirectToForm(w http.ResponseWriter, r *http.Request, id int64, mode string) {
	target := "/plan/form"
	if id > 0 {
		target = plan.FormLink(id)
		if mode != "" {
			target += fmt.Sprintf("&mode=%s", mode)
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// safeNext only allows local absolute paths as a post login target.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/plan"
	}
	return next
}
