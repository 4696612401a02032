// Package seed loads the initial contents of the record stores.
package seed

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/music_school/internal/model"
)

// Имена наборов: ключ JSON-файла фикстур и суффикс таблицы seed_<name>
const (
	SetStudents     = "students"
	SetTeachers     = "teachers"
	SetClasses      = "classes"
	SetAttendance   = "attendance"
	SetEvents       = "events"
	SetBilling      = "billing"
	SetReplacements = "replacements"
)

// Sets lists every seed set in load order.
var Sets = []string{
	SetStudents,
	SetTeachers,
	SetClasses,
	SetAttendance,
	SetEvents,
	SetBilling,
	SetReplacements,
}

// Dataset holds the initial records of all seven stores.
type Dataset struct {
	Students     []model.Student
	Teachers     []model.Teacher
	Classes      []model.Class
	Attendance   []model.Attendance
	Events       []model.Event
	Billing      []model.Bill
	Replacements []model.Replacement
}

// Source produces a Dataset.
type Source interface {
	Load(ctx context.Context) (*Dataset, error)
}

// Counts returns the number of records per set.
func (d *Dataset) Counts() map[string]int {
	return map[string]int{
		SetStudents:     len(d.Students),
		SetTeachers:     len(d.Teachers),
		SetClasses:      len(d.Classes),
		SetAttendance:   len(d.Attendance),
		SetEvents:       len(d.Events),
		SetBilling:      len(d.Billing),
		SetReplacements: len(d.Replacements),
	}
}

// target возвращает указатель на срез набора, в который декодируются записи
func (d *Dataset) target(set string) (any, error) {
	switch set {
	case SetStudents:
		return &d.Students, nil
	case SetTeachers:
		return &d.Teachers, nil
	case SetClasses:
		return &d.Classes, nil
	case SetAttendance:
		return &d.Attendance, nil
	case SetEvents:
		return &d.Events, nil
	case SetBilling:
		return &d.Billing, nil
	case SetReplacements:
		return &d.Replacements, nil
	default:
		return nil, fmt.Errorf("unknown seed set %q", set)
	}
}

// Validate checks that ids inside every set are positive and unique.
func (d *Dataset) Validate() error {
	checks := []struct {
		set string
		ids []int64
	}{
		{SetStudents, idsOf(d.Students, func(s model.Student) int64 { return s.ID })},
		{SetTeachers, idsOf(d.Teachers, func(t model.Teacher) int64 { return t.ID })},
		{SetClasses, idsOf(d.Classes, func(c model.Class) int64 { return c.ID })},
		{SetAttendance, idsOf(d.Attendance, func(a model.Attendance) int64 { return a.ID })},
		{SetEvents, idsOf(d.Events, func(e model.Event) int64 { return e.ID })},
		{SetBilling, idsOf(d.Billing, func(b model.Bill) int64 { return b.ID })},
		{SetReplacements, idsOf(d.Replacements, func(r model.Replacement) int64 { return r.ID })},
	}

	for _, c := range checks {
		seen := make(map[int64]struct{}, len(c.ids))
		for _, id := range c.ids {
			if id <= 0 {
				return fmt.Errorf("%s: invalid id %d", c.set, id)
			}
			if _, dup := seen[id]; dup {
				return fmt.Errorf("%s: duplicate id %d", c.set, id)
			}
			seen[id] = struct{}{}
		}
	}
	return nil
}

func idsOf[T any](items []T, id func(T) int64) []int64 {
	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = id(item)
	}
	return ids
}
