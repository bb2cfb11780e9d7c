package constants

// System role names (mirrors the roles table seeded at startup)
const (
	RoleSuperAdmin      = "super_admin"
	RoleManagementAdmin = "management_admin"
	RoleTeacher         = "teacher"
	RoleStudentParent   = "student_parent"
)

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleSuperAdmin,
		RoleManagementAdmin,
		RoleTeacher,
		RoleStudentParent,
	}

	AdminRoles = []string{
		RoleSuperAdmin,
		RoleManagementAdmin,
	}

	StaffRoles = []string{
		RoleSuperAdmin,
		RoleManagementAdmin,
		RoleTeacher,
	}
)
