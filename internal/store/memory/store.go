// Package memory provides in-memory store implementations for development
// and tests. Data is lost on restart.
package memory

import (
	"github.com/wolfeidau/studiodesk/internal/store"
)

// NewStores creates a full set of in-memory stores.
func NewStores() store.Stores {
	return store.Stores{
		Organizations:  NewOrganizationStore(),
		Users:          NewUserStore(),
		Projects:       NewProjectStore(),
		Tasks:          NewTaskStore(),
		Invoices:       NewInvoiceStore(),
		Plans:          NewPlanStore(),
		Leads:          NewLeadStore(),
		ChangeRequests: NewChangeRequestStore(),
		Notifications:  NewNotificationStore(),
	}
}
