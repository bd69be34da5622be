package domain

// Role is the flat role hierarchy. Authorization is a total order over ranks:
// a role satisfies a requirement iff its rank is >= the required rank.
// Services never consult this — gating happens at the middleware layer and the
// engine trusts its caller.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleManager        Role = "manager"
	RoleContentManager Role = "content_manager"
	RoleCashier        Role = "cashier"
	RoleViewer         Role = "viewer"
)

// roleRank assigns each role its level. Unknown roles rank 0 and therefore
// satisfy nothing.
var roleRank = map[Role]int{
	RoleAdmin:          5,
	RoleManager:        4,
	RoleContentManager: 3,
	RoleCashier:        2,
	RoleViewer:         1,
}

// HasPermission reports whether role meets or exceeds required.
func HasPermission(role, required Role) bool {
	return roleRank[role] >= roleRank[required]
}

// ValidRole reports whether r is one of the five known roles.
func ValidRole(r Role) bool {
	_, ok := roleRank[r]
	return ok
}

// RolePermissions is the capability snapshot exposed to the presentation layer
// so it can enable/disable UI actions without hardcoding the hierarchy.
type RolePermissions struct {
	View          bool `json:"view"`
	Create        bool `json:"create"`
	Edit          bool `json:"edit"`
	Delete        bool `json:"delete"`
	ManageUsers   bool `json:"manage_users"`
	ManageContent bool `json:"manage_content"`
	ViewAudit     bool `json:"view_audit"`
}

// Permissions maps a role to its capability set. Everyone can view; write
// capabilities accumulate with rank, user administration and audit access are
// admin-only.
func Permissions(role Role) RolePermissions {
	p := RolePermissions{View: true}
	switch role {
	case RoleAdmin:
		p.Create, p.Edit, p.Delete = true, true, true
		p.ManageUsers, p.ManageContent, p.ViewAudit = true, true, true
	case RoleManager:
		p.Create, p.Edit, p.Delete = true, true, true
		p.ManageContent = true
	case RoleContentManager:
		p.Create, p.Edit = true, true
		p.ManageContent = true
	case RoleCashier:
		p.Create, p.Edit = true, true
	}
	return p
}
