package model

import "time"

// ReplacementRequest status constants
const (
	ReplacementStatusPending  = "pending"
	ReplacementStatusApproved = "approved"
	ReplacementStatusRejected = "rejected"
)

// Replacement is a student's request to make up a missed lesson on another date.
type Replacement struct {
	ID            int64      `json:"id"`
	StudentID     int64      `json:"student_id"`
	StudentName   string     `json:"student_name"`
	ClassID       int64      `json:"class_id,omitempty"`
	ClassName     string     `json:"class_name"`
	OriginalDate  Date       `json:"original_date"`
	RequestedDate Date       `json:"requested_date"`
	Reason        string     `json:"reason"`
	Status        string     `json:"status"`
	RequestDate   time.Time  `json:"request_date"`
	ApprovedBy    *string    `json:"approved_by"`
	ApprovedDate  *time.Time `json:"approved_date"`
	Notes         string     `json:"notes"`
}

// IsPending checks if request is pending
func (r *Replacement) IsPending() bool {
	return r.Status == ReplacementStatusPending
}

func (r Replacement) Clone() Replacement {
	r.ApprovedBy = stringPtr(r.ApprovedBy)
	r.ApprovedDate = timePtr(r.ApprovedDate)
	return r
}

// Decide records an approve/reject decision made by approver at now.
func (r *Replacement) Decide(status, approver, notes string, now time.Time) {
	r.Status = status
	r.ApprovedBy = &approver
	r.ApprovedDate = &now
	r.Notes = notes
}

type ReplacementPatch struct {
	StudentID     *int64              `json:"student_id"`
	StudentName   *string             `json:"student_name"`
	ClassID       *int64              `json:"class_id"`
	ClassName     *string             `json:"class_name"`
	OriginalDate  Optional[Date]      `json:"original_date,omitzero"`
	RequestedDate Optional[Date]      `json:"requested_date,omitzero"`
	Reason        *string             `json:"reason"`
	Status        *string             `json:"status"`
	RequestDate   *time.Time          `json:"request_date"`
	ApprovedBy    Optional[string]    `json:"approved_by,omitzero"`
	ApprovedDate  Optional[time.Time] `json:"approved_date,omitzero"`
	Notes         *string             `json:"notes"`
}

func (p ReplacementPatch) Apply(r *Replacement) {
	if p.StudentID != nil {
		r.StudentID = *p.StudentID
	}
	if p.StudentName != nil {
		r.StudentName = *p.StudentName
	}
	if p.ClassID != nil {
		r.ClassID = *p.ClassID
	}
	if p.ClassName != nil {
		r.ClassName = *p.ClassName
	}
	p.OriginalDate.applyValue(&r.OriginalDate)
	p.RequestedDate.applyValue(&r.RequestedDate)
	if p.Reason != nil {
		r.Reason = *p.Reason
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.RequestDate != nil {
		r.RequestDate = *p.RequestDate
	}
	p.ApprovedBy.applyPtr(&r.ApprovedBy)
	p.ApprovedDate.applyPtr(&r.ApprovedDate)
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
}
