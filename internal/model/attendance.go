package model

import "time"

const (
	AttendanceStatusPresent = "present"
	AttendanceStatusAbsent  = "absent"
	AttendanceStatusLate    = "late"
)

// Attendance links to a student and a class by denormalized names; the id
// fields are optional and only validated when set.
type Attendance struct {
	ID           int64      `json:"id"`
	EnrollmentID int64      `json:"enrollment_id,omitempty"`
	StudentID    int64      `json:"student_id,omitempty"`
	ClassID      int64      `json:"class_id,omitempty"`
	StudentName  string     `json:"student_name"`
	ClassName    string     `json:"class_name"`
	TeacherName  string     `json:"teacher_name"`
	Date         Date       `json:"date"`
	Status       string     `json:"status"`
	CheckedInAt  *time.Time `json:"checked_in_at"`
	Notes        string     `json:"notes"`
}

func (a *Attendance) IsPresent() bool {
	return a.Status == AttendanceStatusPresent
}

func (a Attendance) Clone() Attendance {
	a.CheckedInAt = timePtr(a.CheckedInAt)
	return a
}

// CheckInTime returns the check-in stamp for a record created with status at now.
// Only present records are checked in.
func CheckInTime(status string, now time.Time) *time.Time {
	if status != AttendanceStatusPresent {
		return nil
	}
	return &now
}

type AttendancePatch struct {
	EnrollmentID *int64              `json:"enrollment_id"`
	StudentID    *int64              `json:"student_id"`
	ClassID      *int64              `json:"class_id"`
	StudentName  *string             `json:"student_name"`
	ClassName    *string             `json:"class_name"`
	TeacherName  *string             `json:"teacher_name"`
	Date         Optional[Date]      `json:"date,omitzero"`
	Status       *string             `json:"status"`
	CheckedInAt  Optional[time.Time] `json:"checked_in_at,omitzero"` // null снимает отметку о приходе
	Notes        *string             `json:"notes"`
}

func (p AttendancePatch) Apply(a *Attendance) {
	if p.EnrollmentID != nil {
		a.EnrollmentID = *p.EnrollmentID
	}
	if p.StudentID != nil {
		a.StudentID = *p.StudentID
	}
	if p.ClassID != nil {
		a.ClassID = *p.ClassID
	}
	if p.StudentName != nil {
		a.StudentName = *p.StudentName
	}
	if p.ClassName != nil {
		a.ClassName = *p.ClassName
	}
	if p.TeacherName != nil {
		a.TeacherName = *p.TeacherName
	}
	p.Date.applyValue(&a.Date)
	if p.Status != nil {
		a.Status = *p.Status
	}
	p.CheckedInAt.applyPtr(&a.CheckedInAt)
	if p.Notes != nil {
		a.Notes = *p.Notes
	}
}
