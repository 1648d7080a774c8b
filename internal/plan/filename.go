package plan

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"serviceplan/pkg/types"
)

var (
	leadingNonWord   = regexp.MustCompile(`^[^\p{L}\p{N}_]+`)
	pictographs      = regexp.MustCompile(`[\x{1F300}-\x{1FAFF}]`)
	unsafeFileRunes  = regexp.MustCompile(`[^A-Za-z0-9_.\-]`)
	umlautReplacer   = strings.NewReplacer("ä", "ae", "ö", "oe", "ü", "ue", "Ä", "Ae", "Ö", "Oe", "Ü", "Ue", "ß", "ss", " ", "_")
	uploadNamePrefix = "csp_"
)

// TeamFileLabel turns a team label such as "🎵 Musik & Technik" into the
// ASCII-leaning form used in stored file names.
func TeamFileLabel(team string) string {
	label := leadingNonWord.ReplaceAllString(team, "")
	label = pictographs.ReplaceAllString(label, "")
	label = strings.TrimSpace(label)
	return umlautReplacer.Replace(label)
}

// UploadFileName builds the stored name of an uploaded file:
// csp_<YYYY-MM-DD>_<team>_<base>.<ext>, restricted to [A-Za-z0-9_.-].
// A zero date leaves the date segment empty.
func UploadFileName(date time.Time, team, original string) string {
	var day string
	if !date.IsZero() {
		day = date.Format(types.ListDateLayout)
	}

	original = filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(original, ext)
	if ext == "." {
		ext = ""
	}

	// only the team label is transliterated; the base name is stripped as is
	name := uploadNamePrefix + day + "_" + TeamFileLabel(team) + "_" + base + ext

	return unsafeFileRunes.ReplaceAllString(name, "")
}
