package types

import (
	"errors"
	"time"
)

var ErrEntryNotFound = errors.New("service entry not found")

// ServiceEntry is one scheduled service. Content columns are nullable in the
// database and always read back as empty strings.
type ServiceEntry struct {
	ID               int64     `db:"id"`
	Date             time.Time `db:"date"`
	Welcome          string    `db:"welcome"`
	Moderation       string    `db:"moderation"`
	Sermon           string    `db:"sermon"`
	Kids1Topic       string    `db:"kids1topic"`
	Kids1Resp        string    `db:"kids1resp"`
	Kids2Topic       string    `db:"kids2topic"`
	Kids2Resp        string    `db:"kids2resp"`
	MusicKeys        string    `db:"music_keys"`
	MusicResp        string    `db:"music_resp"`
	TechSound        string    `db:"tech_sound"`
	TechPresentation string    `db:"tech_presentation"`
	Info             string    `db:"info"`
	Comment          string    `db:"comment"`
}

// Value returns the content field named by key. The date is not a content
// field and yields "".
func (e *ServiceEntry) Value(key FieldKey) string {
	switch key {
	case FieldWelcome:
		return e.Welcome
	case FieldModeration:
		return e.Moderation
	case FieldSermon:
		return e.Sermon
	case FieldKids1Topic:
		return e.Kids1Topic
	case FieldKids1Resp:
		return e.Kids1Resp
	case FieldKids2Topic:
		return e.Kids2Topic
	case FieldKids2Resp:
		return e.Kids2Resp
	case FieldMusicKeys:
		return e.MusicKeys
	case FieldMusicResp:
		return e.MusicResp
	case FieldTechSound:
		return e.TechSound
	case FieldTechPresentation:
		return e.TechPresentation
	case FieldInfo:
		return e.Info
	case FieldComment:
		return e.Comment
	}
	return ""
}

// SetValue assigns a content field and reports whether key named one.
func (e *ServiceEntry) SetValue(key FieldKey, v string) bool {
	switch key {
	case FieldWelcome:
		e.Welcome = v
	case FieldModeration:
		e.Moderation = v
	case FieldSermon:
		e.Sermon = v
	case FieldKids1Topic:
		e.Kids1Topic = v
	case FieldKids1Resp:
		e.Kids1Resp = v
	case FieldKids2Topic:
		e.Kids2Topic = v
	case FieldKids2Resp:
		e.Kids2Resp = v
	case FieldMusicKeys:
		e.MusicKeys = v
	case FieldMusicResp:
		e.MusicResp = v
	case FieldTechSound:
		e.TechSound = v
	case FieldTechPresentation:
		e.TechPresentation = v
	case FieldInfo:
		e.Info = v
	case FieldComment:
		e.Comment = v
	default:
		return false
	}
	return true
}

type EntryFilter struct {
	OnlyUpcoming bool
	// Now is the reference instant for OnlyUpcoming.
	Now time.Time
}

// EntryForm is the decoded body of the entry form.
type EntryForm struct {
	EditID           int64  `form:"edit_id"`
	Date             string `form:"date"`
	Welcome          string `form:"welcome"`
	Moderation       string `form:"moderation"`
	Sermon           string `form:"sermon"`
	Kids1Topic       string `form:"kids1topic"`
	Kids1Resp        string `form:"kids1resp"`
	Kids2Topic       string `form:"kids2topic"`
	Kids2Resp        string `form:"kids2resp"`
	MusicKeys        string `form:"music_keys"`
	MusicResp        string `form:"music_resp"`
	TechSound        string `form:"tech_sound"`
	TechPresentation string `form:"tech_presentation"`
	Info             string `form:"info"`
	Comment          string `form:"comment"`
}

// DateInputLayout is the layout of a datetime-local input.
const DateInputLayout = "2006-01-02T15:04"

// ListDateLayout is how dates appear in the list view and upload names.
const ListDateLayout = "2006-01-02"
