package model

import "time"

const (
	TeacherStatusActive   = "active"
	TeacherStatusInactive = "inactive"
)

type Teacher struct {
	ID              int64               `json:"id"`
	Name            string              `json:"name"`
	Email           string              `json:"email"`
	Phone           string              `json:"phone"`
	Specializations []string            `json:"specializations"`
	Experience      string              `json:"experience"`
	HourlyRate      float64             `json:"hourly_rate"`
	CommissionRate  float64             `json:"commission_rate"` // доля от оплаты, 0.3 = 30%
	JoiningDate     Date                `json:"joining_date"`
	Status          string              `json:"status"`
	TotalStudents   int                 `json:"total_students"`
	MonthlyEarnings float64             `json:"monthly_earnings"`
	Availability    map[string][]string `json:"availability"` // день недели -> ["10:00", "14:00"]
	CreatedAt       time.Time           `json:"created_at"`
}

func (t *Teacher) IsActive() bool {
	return t.Status == TeacherStatusActive
}

// HasSpecialization checks for an exact tag match
func (t *Teacher) HasSpecialization(spec string) bool {
	for _, s := range t.Specializations {
		if s == spec {
			return true
		}
	}
	return false
}

func (t Teacher) Clone() Teacher {
	if t.Specializations != nil {
		t.Specializations = append([]string(nil), t.Specializations...)
	}
	t.Availability = cloneAvailability(t.Availability)
	return t
}

func cloneAvailability(src map[string][]string) map[string][]string {
	if src == nil {
		return nil
	}
	dst := make(map[string][]string, len(src))
	for day, times := range src {
		dst[day] = append([]string(nil), times...)
	}
	return dst
}

type TeacherPatch struct {
	Name            *string              `json:"name"`
	Email           *string              `json:"email"`
	Phone           *string              `json:"phone"`
	Specializations *[]string            `json:"specializations"`
	Experience      *string              `json:"experience"`
	HourlyRate      *float64             `json:"hourly_rate"`
	CommissionRate  *float64             `json:"commission_rate"`
	JoiningDate     Optional[Date]       `json:"joining_date,omitzero"`
	Status          *string              `json:"status"`
	TotalStudents   *int                 `json:"total_students"`
	MonthlyEarnings *float64             `json:"monthly_earnings"`
	Availability    *map[string][]string `json:"availability"`
}

func (p TeacherPatch) Apply(t *Teacher) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Email != nil {
		t.Email = *p.Email
	}
	if p.Phone != nil {
		t.Phone = *p.Phone
	}
	if p.Specializations != nil {
		t.Specializations = append([]string(nil), (*p.Specializations)...)
	}
	if p.Experience != nil {
		t.Experience = *p.Experience
	}
	if p.HourlyRate != nil {
		t.HourlyRate = *p.HourlyRate
	}
	if p.CommissionRate != nil {
		t.CommissionRate = *p.CommissionRate
	}
	p.JoiningDate.applyValue(&t.JoiningDate)
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.TotalStudents != nil {
		t.TotalStudents = *p.TotalStudents
	}
	if p.MonthlyEarnings != nil {
		t.MonthlyEarnings = *p.MonthlyEarnings
	}
	if p.Availability != nil {
		t.Availability = cloneAvailability(*p.Availability)
	}
}
