package events

import (
	"time"

	"github.com/spec-kit/case-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCaseCreated EventType = "case_created"
	EventCaseUpdated EventType = "case_updated"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	AccountID string             `json:"account_id"`
	Role      domain.AccountRole `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	CaseID    string      `json:"case_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// CaseCreatedPayload payload.
type CaseCreatedPayload struct {
	DeliveryTarget string  `json:"delivery_target"`
	GivenLocation  string  `json:"given_location"`
	DocumentName   *string `json:"document_name,omitempty"`
}

// CaseUpdatedPayload payload.
type CaseUpdatedPayload struct {
	OldStatus domain.CaseStatus `json:"old_status"`
	NewStatus domain.CaseStatus `json:"new_status"`
	Note      *string           `json:"note,omitempty"`
	Location  *string           `json:"location,omitempty"`
}
