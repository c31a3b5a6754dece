package models

// DueDateLayout is the calendar-date layout used for CAPA due dates. Due
// dates carry no time of day; comparisons happen at day granularity.
const DueDateLayout = "2006-01-02"

// CAPAStatus is the resolution state of a corrective/preventive action.
// Transitions are explicit user actions; nothing moves a record to Overdue
// automatically.
type CAPAStatus string

const (
	CAPAOpen     CAPAStatus = "Open"
	CAPAResolved CAPAStatus = "Resolved"
	CAPAOverdue  CAPAStatus = "Overdue"
)

// Valid reports whether s is one of the three known CAPA states.
func (s CAPAStatus) Valid() bool {
	switch s {
	case CAPAOpen, CAPAResolved, CAPAOverdue:
		return true
	}
	return false
}

// CAPA is one Corrective and Preventive Action record, tied to exactly one
// indicator. RPIID is a weak reference: a dangling id renders as "unknown
// indicator" downstream rather than failing.
type CAPA struct {
	ID         string     `json:"id"`
	RPIID      string     `json:"rpiId"`
	RootCause  string     `json:"rootCause"`
	ActionPlan string     `json:"actionPlan"`
	Owner      string     `json:"owner"`
	DueDate    string     `json:"dueDate"` // DueDateLayout
	Status     CAPAStatus `json:"status"`
}

// CAPADraft is the caller-supplied portion of a new CAPA. The store assigns
// the id and forces status to Open.
type CAPADraft struct {
	RPIID      string `json:"rpiId"`
	RootCause  string `json:"rootCause"`
	ActionPlan string `json:"actionPlan"`
	Owner      string `json:"owner"`
	DueDate    string `json:"dueDate"`
}

// CAPAUpdate replaces every mutable field of an existing record. Unlike
// Create, status is freely settable here.
type CAPAUpdate struct {
	RPIID      string     `json:"rpiId"`
	RootCause  string     `json:"rootCause"`
	ActionPlan string     `json:"actionPlan"`
	Owner      string     `json:"owner"`
	DueDate    string     `json:"dueDate"`
	Status     CAPAStatus `json:"status"`
}

// Draft returns the validatable portion of the update.
func (u CAPAUpdate) Draft() CAPADraft {
	return CAPADraft{
		RPIID:      u.RPIID,
		RootCause:  u.RootCause,
		ActionPlan: u.ActionPlan,
		Owner:      u.Owner,
		DueDate:    u.DueDate,
	}
}

// CAPAListRequest carries the registry filters: an optional status (the
// zero value or "All" matches everything) and an optional case-insensitive
// substring matched against root cause and action plan.
type CAPAListRequest struct {
	Status string `form:"status" json:"status,omitempty"`
	Query  string `form:"q" json:"q,omitempty"`
}

// CAPAListResponse is the envelope for CAPA listings.
type CAPAListResponse struct {
	CAPAs []*CAPA `json:"capas"`
	Total int     `json:"total"`
}

// ValidationErrors maps a field name to a human-readable message. An empty
// map means the draft is valid.
type ValidationErrors map[string]string

// HasErrors reports whether any field failed validation.
func (v ValidationErrors) HasErrors() bool { return len(v) > 0 }
