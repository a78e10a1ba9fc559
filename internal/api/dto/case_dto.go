package dto

import "time"

// timeLayout is the fixed wire format for timestamps.
const timeLayout = "2006-01-02 15:04:05"

// FormatTime renders a timestamp in the fixed wire format.
func FormatTime(t time.Time) string {
	return t.Format(timeLayout)
}

// CreateCaseRequest payload.
type CreateCaseRequest struct {
	DocumentName     *string `json:"document_name"`
	DeliveryTarget   string  `json:"delivery_target"`
	GivenLocation    string  `json:"given_location"`
	GivenToStaffTime string  `json:"given_to_staff_time"`
	Note             *string `json:"note"`
}

// UpdateCaseRequest payload for staff progress updates.
type UpdateCaseRequest struct {
	Status   *string `json:"status"`
	Note     *string `json:"note"`
	Location *string `json:"location"`
}

// CaseSummary response. Status carries the display label.
type CaseSummary struct {
	ID               string `json:"id"`
	DocumentName     string `json:"document_name"`
	DeliveryTarget   string `json:"delivery_target"`
	GivenLocation    string `json:"given_location"`
	GivenToStaffTime string `json:"given_to_staff_time"`
	Status           string `json:"status"`
	Note             string `json:"note"`
	AccountID        string `json:"account_id,omitempty"`
}

// CaseUpdateEntry is one history row. Status here is the raw lifecycle value.
type CaseUpdateEntry struct {
	Status   string  `json:"status"`
	Note     *string `json:"note"`
	Location *string `json:"location"`
	Time     string  `json:"time"`
}

// CaseDetail pairs a summary with its ordered history.
type CaseDetail struct {
	CaseSummary
	Updates []CaseUpdateEntry `json:"updates"`
}
