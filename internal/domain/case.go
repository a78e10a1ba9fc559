package domain

import "time"

// CaseStatus enumerates lifecycle states for cases.
type CaseStatus string

const (
	CaseStatusPending    CaseStatus = "pending"
	CaseStatusAccepted   CaseStatus = "accepted"
	CaseStatusInProgress CaseStatus = "in_progress"
	CaseStatusDelivered  CaseStatus = "delivered"
	CaseStatusDone       CaseStatus = "done"
)

var statusLabels = map[CaseStatus]string{
	CaseStatusPending:    "待處理",
	CaseStatusAccepted:   "已接取",
	CaseStatusInProgress: "進行中",
	CaseStatusDelivered:  "已送達",
	CaseStatusDone:       "已完成",
}

// Valid reports whether the status is one of the known lifecycle values.
func (s CaseStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Terminal reports whether the status freezes the case against further updates.
func (s CaseStatus) Terminal() bool {
	return s == CaseStatusDone
}

// Label returns the display label for the status, falling back to the raw value.
func (s CaseStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Case is the aggregate for a client's document/delivery request.
type Case struct {
	ID               string
	DocumentName     *string
	DeliveryTarget   string
	GivenLocation    string
	GivenToStaffTime time.Time
	Note             *string
	Status           CaseStatus
	AccountID        string
	CreatedAt        time.Time
}
