package repository

import (
	"github.com/Freeeeeet/music_school/internal/repository/base"
	"github.com/Freeeeeet/music_school/internal/seed"
)

// Stores собирает все семь хранилищ записей, заполненных из одного набора данных
type Stores struct {
	Students     *StudentRepository
	Teachers     *TeacherRepository
	Classes      *ClassRepository
	Attendance   *AttendanceRepository
	Events       *EventRepository
	Billing      *BillingRepository
	Replacements *ReplacementRepository
}

func NewStores(ds *seed.Dataset, latency base.Latency) *Stores {
	if ds == nil {
		ds = &seed.Dataset{}
	}
	return &Stores{
		Students:     NewStudentRepository(ds.Students, latency),
		Teachers:     NewTeacherRepository(ds.Teachers, latency),
		Classes:      NewClassRepository(ds.Classes, latency),
		Attendance:   NewAttendanceRepository(ds.Attendance, latency),
		Events:       NewEventRepository(ds.Events, latency),
		Billing:      NewBillingRepository(ds.Billing, latency),
		Replacements: NewReplacementRepository(ds.Replacements, latency),
	}
}
