package auth

import (
	"slices"

	"github.com/wolfeidau/studiodesk/internal/models"
)

// Capability represents an authorized action. Handlers gate on capabilities,
// not on role lists, so the role->permission mapping lives in exactly one
// place.
type Capability string

const (
	// CapBypassScope lets a role see resources in organizations it is not a
	// member of. This is the elevated-role bypass, kept separate from the
	// membership invariant.
	CapBypassScope Capability = "scope:bypass"

	CapViewAdminResources Capability = "admin:view"
	CapManageProjects     Capability = "projects:manage"
	CapManageTasks        Capability = "tasks:manage"
	CapViewInvoices       Capability = "invoices:view"
	CapSubmitChanges      Capability = "changes:submit"
)

// RoleCapabilities maps each role to its allowed capabilities.
var RoleCapabilities = map[models.Role][]Capability{
	models.RoleClient: {
		CapViewInvoices,
		CapSubmitChanges,
	},
	models.RoleStaff: {
		CapManageTasks,
		CapViewInvoices,
	},
	models.RoleAdmin: {
		CapBypassScope,
		CapViewAdminResources,
		CapManageProjects,
		CapManageTasks,
		CapViewInvoices,
		CapSubmitChanges,
	},
	models.RoleCEO: {
		CapBypassScope,
		CapViewAdminResources,
		CapManageProjects,
		CapManageTasks,
		CapViewInvoices,
		CapSubmitChanges,
	},
	models.RoleCFO: {
		CapBypassScope,
		CapViewAdminResources,
		CapViewInvoices,
	},
}

// HasCapability checks if a role has a specific capability.
func HasCapability(role models.Role, cap Capability) bool {
	caps, ok := RoleCapabilities[role]
	if !ok {
		return false
	}
	return slices.Contains(caps, cap)
}
