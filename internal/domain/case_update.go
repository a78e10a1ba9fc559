package domain

import "time"

// CaseUpdate is an immutable progress entry. One row is appended per accepted
// staff update and never mutated afterwards; rows read in UpdateTime order
// reconstruct the full status history of a case.
type CaseUpdate struct {
	ID         string
	CaseID     string
	Status     CaseStatus
	Note       *string
	Location   *string
	UpdateTime time.Time
	CreatedAt  time.Time
}
