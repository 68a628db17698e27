package store

import (
	"github.com/google/uuid"
)

// AccessFilter restricts resource queries to rows reachable by a caller. It
// is built once per request from the caller's organization memberships and
// passed explicitly into store lookups.
//
// The zero value matches nothing, which is the fail-closed default for an
// identity with no resolvable memberships.
type AccessFilter struct {
	// OrgIDs are the organizations the caller belongs to.
	OrgIDs []uuid.UUID

	// Unbounded marks an elevated-role caller whose queries are not
	// restricted by organization. This is an explicit bypass, distinct from
	// membership in every organization.
	Unbounded bool
}

// MatchesNothing reports whether the filter can never match a row.
func (f AccessFilter) MatchesNothing() bool {
	return !f.Unbounded && len(f.OrgIDs) == 0
}

// AllowsOrg reports whether the filter admits rows under the given
// organization.
func (f AccessFilter) AllowsOrg(orgID uuid.UUID) bool {
	if f.Unbounded {
		return true
	}
	for _, id := range f.OrgIDs {
		if id == orgID {
			return true
		}
	}
	return false
}

// Stores bundles the per-entity stores so wiring code can pass one value
// around. Implementations (postgres, memory) populate every field.
type Stores struct {
	Organizations  OrganizationStore
	Users          UserStore
	Projects       ProjectStore
	Tasks          TaskStore
	Invoices       InvoiceStore
	Plans          PlanStore
	Leads          LeadStore
	ChangeRequests ChangeRequestStore
	Notifications  NotificationStore
}
