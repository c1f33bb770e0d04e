package user

type Permission string

const (
	// Self service
	PermissionRequestCreate  Permission = "request.create"
	PermissionRequestViewOwn Permission = "request.view_own"
	PermissionGrantClaim     Permission = "grant.claim"
	PermissionPunchRecord    Permission = "attendance.punch"

	// Approval
	PermissionRequestViewAll Permission = "request.view_all"
	PermissionRequestDecide  Permission = "request.decide"

	// Administration
	PermissionEmployeeManage Permission = "employee.manage"
	PermissionShiftManage    Permission = "shift.manage"
	PermissionHolidayManage  Permission = "holiday.manage"
)

var selfService = []Permission{
	PermissionRequestCreate,
	PermissionRequestViewOwn,
	PermissionGrantClaim,
	PermissionPunchRecord,
}

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleEmployee: selfService,
	RoleHOD: append(append([]Permission{}, selfService...),
		PermissionRequestViewAll,
		PermissionRequestDecide,
	),
	RoleCEO: append(append([]Permission{}, selfService...),
		PermissionRequestViewAll,
		PermissionRequestDecide,
	),
	RoleAdmin: append(append([]Permission{}, selfService...),
		PermissionRequestViewAll,
		PermissionRequestDecide,
		PermissionEmployeeManage,
		PermissionShiftManage,
		PermissionHolidayManage,
	),
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
