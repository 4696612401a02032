package model

import "time"

const (
	EnrollmentStatusActive    = "active"
	EnrollmentStatusInactive  = "inactive"
	EnrollmentStatusCompleted = "completed"
	EnrollmentStatusPaused    = "paused"
)

type Enrollment struct {
	ClassID   int64  `json:"class_id,omitempty"`
	ClassName string `json:"class_name"`
	Status    string `json:"status"`
	StartDate Date   `json:"start_date"`
}

type Student struct {
	ID               int64        `json:"id"`
	Name             string       `json:"name"`
	Email            string       `json:"email"`
	Phone            string       `json:"phone"`
	DateOfBirth      Date         `json:"date_of_birth"`
	Address          string       `json:"address"`
	EmergencyContact string       `json:"emergency_contact"`
	ParentName       string       `json:"parent_name"`
	ParentEmail      string       `json:"parent_email"`
	ParentPhone      string       `json:"parent_phone"`
	Enrollments      []Enrollment `json:"enrollments"`
	Notes            string       `json:"notes"`
	CreatedAt        time.Time    `json:"created_at"`
	LastActivity     time.Time    `json:"last_activity"`
}

// HasEnrollmentStatus reports whether any enrollment is in the given status.
func (s *Student) HasEnrollmentStatus(status string) bool {
	for _, e := range s.Enrollments {
		if e.Status == status {
			return true
		}
	}
	return false
}

// IsActive checks if the student has at least one active enrollment
func (s *Student) IsActive() bool {
	return s.HasEnrollmentStatus(EnrollmentStatusActive)
}

func (s Student) Clone() Student {
	if s.Enrollments != nil {
		s.Enrollments = append([]Enrollment(nil), s.Enrollments...)
	}
	return s
}

// StudentPatch carries the fields of a partial update; nil fields are left alone.
type StudentPatch struct {
	Name             *string        `json:"name"`
	Email            *string        `json:"email"`
	Phone            *string        `json:"phone"`
	DateOfBirth      Optional[Date] `json:"date_of_birth,omitzero"`
	Address          *string        `json:"address"`
	EmergencyContact *string        `json:"emergency_contact"`
	ParentName       *string        `json:"parent_name"`
	ParentEmail      *string        `json:"parent_email"`
	ParentPhone      *string        `json:"parent_phone"`
	Enrollments      *[]Enrollment  `json:"enrollments"`
	Notes            *string        `json:"notes"`
}

func (p StudentPatch) Apply(s *Student) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.Phone != nil {
		s.Phone = *p.Phone
	}
	p.DateOfBirth.applyValue(&s.DateOfBirth)
	if p.Address != nil {
		s.Address = *p.Address
	}
	if p.EmergencyContact != nil {
		s.EmergencyContact = *p.EmergencyContact
	}
	if p.ParentName != nil {
		s.ParentName = *p.ParentName
	}
	if p.ParentEmail != nil {
		s.ParentEmail = *p.ParentEmail
	}
	if p.ParentPhone != nil {
		s.ParentPhone = *p.ParentPhone
	}
	if p.Enrollments != nil {
		s.Enrollments = append([]Enrollment(nil), (*p.Enrollments)...)
	}
	if p.Notes != nil {
		s.Notes = *p.Notes
	}
}
