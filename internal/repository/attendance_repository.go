package repository

import (
	"context"
	"time"

	"github.com/Freeeeeet/music_school/internal/model"
	"github.com/Freeeeeet/music_school/internal/repository/base"
)

type AttendanceRepository struct {
	records *base.Collection[model.Attendance]
	latency base.Latency
}

func NewAttendanceRepository(seed []model.Attendance, latency base.Latency) *AttendanceRepository {
	return &AttendanceRepository{
		records: base.NewCollection(model.EntityAttendance, seed, attendanceID, model.Attendance.Clone),
		latency: latency,
	}
}

func attendanceID(a *model.Attendance) int64 { return a.ID }

func (r *AttendanceRepository) GetAll(ctx context.Context) ([]model.Attendance, error) {
	if err := base.Wait(ctx, r.latency.List); err != nil {
		return nil, err
	}
	return r.records.All(), nil
}

func (r *AttendanceRepository) GetByID(ctx context.Context, id int64) (*model.Attendance, error) {
	if err := base.Wait(ctx, r.latency.Get); err != nil {
		return nil, err
	}
	record, err := r.records.Get(id)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Create добавляет запись; checked_in_at ставится только для present
func (r *AttendanceRepository) Create(ctx context.Context, fields model.Attendance) (*model.Attendance, error) {
	if err := base.Wait(ctx, r.latency.Create); err != nil {
		return nil, err
	}

	now := time.Now()
	created := r.records.Insert(func(id int64) model.Attendance {
		a := fields
		a.ID = id
		a.CheckedInAt = model.CheckInTime(a.Status, now)
		return a
	})
	return &created, nil
}

func (r *AttendanceRepository) Update(ctx context.Context, id int64, patch model.AttendancePatch) (*model.Attendance, error) {
	if err := base.Wait(ctx, r.latency.Update); err != nil {
		return nil, err
	}
	updated, err := r.records.Update(id, patch.Apply)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *AttendanceRepository) Delete(ctx context.Context, id int64) (*model.Attendance, error) {
	if err := base.Wait(ctx, r.latency.Delete); err != nil {
		return nil, err
	}
	deleted, err := r.records.Delete(id)
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

func (r *AttendanceRepository) GetByStudent(ctx context.Context, studentID int64) ([]model.Attendance, error) {
	if err := base.Wait(ctx, r.latency.Filter); err != nil {
		return nil, err
	}
	return r.records.Filter(func(a *model.Attendance) bool {
		return a.StudentID == studentID
	}), nil
}

func (r *AttendanceRepository) GetByClass(ctx context.Context, classID int64) ([]model.Attendance, error) {
	if err := base.Wait(ctx, r.latency.Filter); err != nil {
		return nil, err
	}
	return r.records.Filter(func(a *model.Attendance) bool {
		return a.ClassID == classID
	}), nil
}

// GetByDateRange включает обе границы
func (r *AttendanceRepository) GetByDateRange(ctx context.Context, from, to model.Date) ([]model.Attendance, error) {
	if err := base.Wait(ctx, r.latency.Range); err != nil {
		return nil, err
	}
	return r.records.Filter(func(a *model.Attendance) bool {
		return a.Date.Within(from, to)
	}), nil
}

// MarkAttendance всегда добавляет новую запись на сегодня, существующие не меняются
func (r *AttendanceRepository) MarkAttendance(ctx context.Context, enrollmentID int64, status, notes string) (*model.Attendance, error) {
	return r.Mark(ctx, model.Attendance{EnrollmentID: enrollmentID, Status: status, Notes: notes})
}

// Mark is MarkAttendance with the denormalized student/class fields filled in
// by the caller. Date is forced to today.
func (r *AttendanceRepository) Mark(ctx context.Context, fields model.Attendance) (*model.Attendance, error) {
	if err := base.Wait(ctx, r.latency.Transition); err != nil {
		return nil, err
	}

	now := time.Now()
	created := r.records.Insert(func(id int64) model.Attendance {
		a := fields
		a.ID = id
		a.Date = model.DateOf(now)
		a.CheckedInAt = model.CheckInTime(a.Status, now)
		return a
	})
	return &created, nil
}
