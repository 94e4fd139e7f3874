package models

const (
	PermManageUsers          = "manage_users"
	PermViewUsers            = "view_users"
	PermManageRoles          = "manage_roles"
	PermManageStaff          = "manage_staff"
	PermManageBookings       = "manage_bookings"
	PermViewBookings         = "view_bookings"
	PermManageRooms          = "manage_rooms"
	PermViewRooms            = "view_rooms"
	PermManageProperties     = "manage_properties"
	PermViewProperties       = "view_properties"
	PermManageExpenses       = "manage_expenses"
	PermViewExpenses         = "view_expenses"
	PermViewReports          = "view_reports"
	PermManageSettings       = "manage_settings"
	PermViewSettings         = "view_settings"
	PermUpdateCleaningStatus = "update_cleaning_status"
	PermViewCleaningStatus   = "view_cleaning_status"
	PermManageOwners         = "manage_owners"
	PermViewOwners           = "view_owners"
	PermViewAuditLogs        = "view_audit_logs"
)

// PermissionCategories groups the catalogue the way the role editor shows it.
var PermissionCategories = []struct {
	Category    string
	Permissions []string
}{
	{"users", []string{PermManageUsers, PermViewUsers, PermManageRoles, PermManageStaff}},
	{"bookings", []string{PermManageBookings, PermViewBookings}},
	{"rooms", []string{PermManageRooms, PermViewRooms}},
	{"properties", []string{PermManageProperties, PermViewProperties}},
	{"finances", []string{PermManageExpenses, PermViewExpenses, PermViewReports}},
	{"settings", []string{PermManageSettings, PermViewSettings}},
	{"cleaning", []string{PermUpdateCleaningStatus, PermViewCleaningStatus}},
	{"owners", []string{PermManageOwners, PermViewOwners}},
	{"security", []string{PermViewAuditLogs}},
}

func AllPermissions() []string {
	var out []string
	for _, c := range PermissionCategories {
		out = append(out, c.Permissions...)
	}
	return out
}

func IsPermission(p string) bool {
	for _, c := range PermissionCategories {
		for _, known := range c.Permissions {
			if known == p {
				return true
			}
		}
	}
	return false
}

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
	RoleOwner   = "owner"
)

// DefaultRolePermissions is what seeding grants a role that has none yet.
func DefaultRolePermissions() map[string][]string {
	return map[string][]string{
		RoleAdmin: AllPermissions(),
		RoleManager: {
			PermViewUsers, PermManageStaff,
			PermManageBookings, PermViewBookings,
			PermManageRooms, PermViewRooms,
			PermManageProperties, PermViewProperties,
			PermManageExpenses, PermViewExpenses, PermViewReports,
			PermViewSettings,
			PermUpdateCleaningStatus, PermViewCleaningStatus,
			PermManageOwners, PermViewOwners,
		},
		RoleStaff: {
			PermManageBookings, PermViewBookings,
			PermViewRooms, PermViewProperties,
			PermUpdateCleaningStatus, PermViewCleaningStatus,
		},
		RoleOwner: {
			PermViewBookings, PermViewRooms, PermViewProperties,
			PermViewCleaningStatus, PermViewReports,
		},
	}
}
