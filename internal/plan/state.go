package plan

import "serviceplan/pkg/types"

// State is the form mode of a single request.
type State int

const (
	// StateNew shows an empty form for a new entry.
	StateNew State = iota
	// StateEdit shows an existing entry for editing.
	StateEdit
	// StateView shows an existing entry read-only.
	StateView
	// StateDenied shows new-entry defaults read-only to a caller who may not create.
	StateDenied
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateEdit:
		return "edit"
	case StateView:
		return "view"
	case StateDenied:
		return "denied"
	}
	return "unknown"
}

// Writable reports whether a save submitted in this state is accepted.
func (s State) Writable() bool {
	return s == StateNew || s == StateEdit
}

// HasEntry reports whether the state addresses a stored entry.
func (s State) HasEntry() bool {
	return s == StateEdit || s == StateView
}

const (
	ModeEdit = "edit"
	ModeShow = "show"
)

// Request carries everything the form needs to know about the incoming
// request: the addressed entry, the requested mode and the caller's
// capabilities.
type Request struct {
	EditID   int64
	Mode     string
	NewEntry bool
	Caps     types.Capabilities
	Lang     types.Language
}

// DeriveState computes the form mode from r.
func DeriveState(r Request) State {
	if r.EditID <= 0 || r.NewEntry {
		if r.Caps.CanCreate {
			return StateNew
		}
		return StateDenied
	}

	if r.Mode == ModeShow || !r.Caps.CanEdit {
		return StateView
	}

	return StateEdit
}
