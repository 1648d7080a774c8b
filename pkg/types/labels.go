package types

type Language string

const (
	LanguageGerman  Language = "de"
	LanguageEnglish Language = "en"
)

func ParseLanguage(s string) (Language, bool) {
	switch Language(s) {
	case LanguageGerman, LanguageEnglish:
		return Language(s), true
	}
	return "", false
}

type Labels struct {
	Fields map[FieldKey]string
	Groups map[GroupKey]string
	UI     map[string]string
}

// T returns the interface text for key, or key itself when missing.
func (l Labels) T(key string) string {
	if v, ok := l.UI[key]; ok {
		return v
	}
	return key
}

func (l Labels) Field(key FieldKey) string {
	if v, ok := l.Fields[key]; ok {
		return v
	}
	return string(key)
}

func (l Labels) Group(g GroupKey) string {
	if v, ok := l.Groups[g]; ok {
		return v
	}
	return string(g)
}

// GroupLabels returns the group labels in tab order. They double as the team
// choices offered for uploads.
func (l Labels) GroupLabels() []string {
	out := make([]string, len(Groups))
	for i, g := range Groups {
		out[i] = l.Group(g)
	}
	return out
}

var labels = map[Language]Labels{
	LanguageGerman: {
		Fields: map[FieldKey]string{
			FieldDate:             "📅 Datum",
			FieldWelcome:          "👋 Begrüßung",
			FieldModeration:       "🎤 Moderation",
			FieldSermon:           "📖 Predigt",
			FieldKids1Topic:       "🧒 Kids 1",
			FieldKids1Resp:        "👨‍🏫 Kids 1 Mitarbeiter",
			FieldKids2Topic:       "🧑 Kids 2",
			FieldKids2Resp:        "👩‍🏫 Kids 2 Mitarbeiter",
			FieldMusicKeys:        "🎹 Klavier",
			FieldMusicResp:        "🎵 Musik",
			FieldTechSound:        "🔊 Sound",
			FieldTechPresentation: "📽️ Präsentation",
			FieldInfo:             "ℹ️ Info",
			FieldComment:          "💬 Kommentare",
		},
		Groups: map[GroupKey]string{
			GroupGeneral:   "📅 Allgemein",
			GroupKids:      "🎈 Kinder",
			GroupMusicTech: "🎵 Musik & Technik",
			GroupOther:     "💬 Sonstiges",
		},
		UI: map[string]string{
			"title":         "Gottesdienstplan",
			"service":       "Gottesdienst",
			"overview":      "Übersicht",
			"show_all":      "Alle anzeigen",
			"show_upcoming": "Nur kommende anzeigen",
			"no_entries":    "Keine Einträge vorhanden.",
			"new_entry":     "Neuer Eintrag",
			"edit":          "Bearbeiten",
			"save":          "Speichern",
			"read_only":     "Nur Ansicht",
			"uploads":       "📎 Dateien",
			"upload":        "Hochladen",
			"team":          "Team",
			"files":         "Dateien auswählen",
			"no_uploads":    "Noch keine Dateien.",
			"login":         "Anmelden",
			"logout":        "Abmelden",
			"password":      "Passwort",
			"login_failed":  "Das Passwort ist falsch.",
			"roster":        "Teams verwalten",
			"roster_help":   "Namen jeweils durch Komma trennen.",
			"roster_saved":  "Die Teams wurden gespeichert.",
			"storage_error": "Die Daten konnten nicht geladen oder gespeichert werden.",
			"invalid_date":  "Bitte ein gültiges Datum angeben.",
			"calendar":      "Kalender abonnieren",
		},
	},
	LanguageEnglish: {
		Fields: map[FieldKey]string{
			FieldDate:             "📅 Date",
			FieldWelcome:          "👋 Welcome",
			FieldModeration:       "🎤 Moderation",
			FieldSermon:           "📖 Sermon",
			FieldKids1Topic:       "🧒 Kids Group 1 Topic",
			FieldKids1Resp:        "👨‍🏫 Kids Group 1 Leader",
			FieldKids2Topic:       "🧑 Kids Group 2 Topic",
			FieldKids2Resp:        "👩‍🏫 Kids Group 2 Leader",
			FieldMusicKeys:        "🎹 Keyboard",
			FieldMusicResp:        "🎵 Music Leader",
			FieldTechSound:        "🔊 Sound",
			FieldTechPresentation: "📽️ Presentation",
			FieldInfo:             "ℹ️ Info",
			FieldComment:          "💬 Comment",
		},
		Groups: map[GroupKey]string{
			GroupGeneral:   "📅 General",
			GroupKids:      "🎈 Kids Ministry",
			GroupMusicTech: "🎵 Music & Tech",
			GroupOther:     "💬 Other",
		},
		UI: map[string]string{
			"title":         "Service Plan",
			"service":       "Service",
			"overview":      "Overview",
			"show_all":      "Show all",
			"show_upcoming": "Show upcoming only",
			"no_entries":    "No entries yet.",
			"new_entry":     "New entry",
			"edit":          "Edit",
			"save":          "Save",
			"read_only":     "Read only",
			"uploads":       "📎 Files",
			"upload":        "Upload",
			"team":          "Team",
			"files":         "Choose files",
			"no_uploads":    "No files yet.",
			"login":         "Sign in",
			"logout":        "Sign out",
			"password":      "Password",
			"login_failed":  "The password is wrong.",
			"roster":        "Manage teams",
			"roster_help":   "Separate names with commas.",
			"roster_saved":  "The teams have been saved.",
			"storage_error": "The data could not be loaded or saved.",
			"invalid_date":  "Please enter a valid date.",
			"calendar":      "Subscribe to calendar",
		},
	},
}

// LabelsFor returns the label set for lang, falling back to German.
func LabelsFor(lang Language) Labels {
	if l, ok := labels[lang]; ok {
		return l
	}
	return labels[LanguageGerman]
}
