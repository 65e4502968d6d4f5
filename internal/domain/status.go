package domain

import "strings"

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusPreparing OrderStatus = "Preparing"
	StatusPaid      OrderStatus = "Paid"
	StatusCompleted OrderStatus = "Completed"
	StatusCancelled OrderStatus = "Cancelled"

	// StatusActive is a legacy spelling of Pending still found in old rows.
	StatusActive OrderStatus = "Active"
)

// Statuses lists every canonical status
var Statuses = []OrderStatus{StatusPending, StatusPreparing, StatusPaid, StatusCompleted, StatusCancelled}

// Status groups used by the bulk operations and queries
var (
	PayableStatuses = []OrderStatus{StatusPending, StatusActive, StatusPreparing}
	ActiveStatuses  = []OrderStatus{StatusPending, StatusActive, StatusPreparing, StatusPaid}
	SettledStatuses = []OrderStatus{StatusPaid, StatusCompleted}
)

// ParseStatus maps user input onto a canonical status. Matching ignores case
// and surrounding whitespace; the legacy "Active" becomes Pending.
func ParseStatus(s string) (OrderStatus, bool) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, string(StatusActive)) {
		return StatusPending, true
	}
	for _, st := range Statuses {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	return "", false
}

// StatusStrings converts statuses for use as query arguments
func StatusStrings(statuses []OrderStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
