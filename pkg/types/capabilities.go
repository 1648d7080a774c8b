package types

type Role string

const (
	RoleAnonymous Role = ""
	RoleEditor    Role = "editor"
	RoleAdmin     Role = "admin"
)

// Capabilities are the write permissions granted to the current request.
type Capabilities struct {
	CanCreate bool
	CanEdit   bool
	CanUpload bool
}

// CapabilitiesFor resolves the capability flags of role from config.
func CapabilitiesFor(cfg *Config, role Role) Capabilities {
	if role == RoleEditor || role == RoleAdmin {
		return Capabilities{
			CanCreate: cfg.EditorCanCreate,
			CanEdit:   cfg.EditorCanEdit,
			CanUpload: cfg.EditorCanUpload,
		}
	}
	return Capabilities{
		CanCreate: cfg.PublicCanCreate,
		CanEdit:   cfg.PublicCanEdit,
		CanUpload: cfg.PublicCanUpload,
	}
}
