package enums

import (
	"fmt"
	"strings"
)

// StaffRole differentiates staff duties with a single role tag; there is no
// per-role record type.
type StaffRole string

const (
	StaffRoleManager      StaffRole = "manager"
	StaffRoleBilling      StaffRole = "billing"
	StaffRoleRegistration StaffRole = "registration"
	StaffRoleWarehouse    StaffRole = "warehouse"
)

var validStaffRoles = []StaffRole{
	StaffRoleManager,
	StaffRoleBilling,
	StaffRoleRegistration,
	StaffRoleWarehouse,
}

// String implements fmt.Stringer.
func (s StaffRole) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StaffRole.
func (s StaffRole) IsValid() bool {
	for _, candidate := range validStaffRoles {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStaffRole converts raw input into a StaffRole. Legacy job titles used
// on payroll records are accepted as aliases.
func ParseStaffRole(value string) (StaffRole, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "manager", "assistant manager":
		return StaffRoleManager, nil
	case "billing", "billing staff", "cashier":
		return StaffRoleBilling, nil
	case "registration":
		return StaffRoleRegistration, nil
	case "warehouse", "warehouse checker":
		return StaffRoleWarehouse, nil
	}
	return "", fmt.Errorf("invalid staff role %q", value)
}
