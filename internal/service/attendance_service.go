package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/music_school/internal/model"
	"github.com/Freeeeeet/music_school/internal/repository"
	"go.uber.org/zap"
)

// AttendanceFilter: нулевые значения не участвуют в отборе; From/To включительно
type AttendanceFilter struct {
	StudentID int64
	ClassID   int64
	From      model.Date
	To        model.Date
}

func (f AttendanceFilter) hasRange() bool {
	return !f.From.IsZero() || !f.To.IsZero()
}

func (f AttendanceFilter) match(a *model.Attendance) bool {
	if f.StudentID != 0 && a.StudentID != f.StudentID {
		return false
	}
	if f.ClassID != 0 && a.ClassID != f.ClassID {
		return false
	}
	if !f.From.IsZero() && a.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && a.Date.After(f.To) {
		return false
	}
	return true
}

// MarkRequest describes a check-in made from the attendance screen.
type MarkRequest struct {
	EnrollmentID int64  `json:"enrollment_id"`
	StudentID    int64  `json:"student_id"`
	ClassID      int64  `json:"class_id"`
	Status       string `json:"status"`
	Notes        string `json:"notes"`
}

type AttendanceService struct {
	attendance *repository.AttendanceRepository
	students   *repository.StudentRepository
	classes    *repository.ClassRepository
	logger     *zap.Logger
}

func NewAttendanceService(
	attendance *repository.AttendanceRepository,
	students *repository.StudentRepository,
	classes *repository.ClassRepository,
	logger *zap.Logger,
) *AttendanceService {
	return &AttendanceService{
		attendance: attendance,
		students:   students,
		classes:    classes,
		logger:     logger,
	}
}

func (s *AttendanceService) List(ctx context.Context, f AttendanceFilter) ([]model.Attendance, error) {
	var (
		records []model.Attendance
		err     error
	)
	switch {
	case f.StudentID != 0:
		records, err = s.attendance.GetByStudent(ctx, f.StudentID)
	case f.ClassID != 0:
		records, err = s.attendance.GetByClass(ctx, f.ClassID)
	case f.hasRange():
		records, err = s.attendance.GetByDateRange(ctx, f.From, f.To)
	default:
		records, err = s.attendance.GetAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return keep(records, f.match), nil
}

func (s *AttendanceService) Get(ctx context.Context, id int64) (*model.Attendance, error) {
	record, err := s.attendance.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get attendance: %w", err)
	}
	return record, nil
}

func (s *AttendanceService) Create(ctx context.Context, fields model.Attendance) (*model.Attendance, error) {
	if err := s.resolve(ctx, &fields); err != nil {
		return nil, fmt.Errorf("create attendance: %w", err)
	}

	record, err := s.attendance.Create(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("create attendance: %w", err)
	}

	s.logger.Info("Attendance recorded",
		zap.Int64("attendance_id", record.ID),
		zap.Int64("student_id", record.StudentID),
		zap.Int64("class_id", record.ClassID),
		zap.String("status", record.Status))

	return record, nil
}

func (s *AttendanceService) Update(ctx context.Context, id int64, patch model.AttendancePatch) (*model.Attendance, error) {
	if patch.StudentID != nil && *patch.StudentID != 0 {
		student, err := s.students.Lookup(ctx, *patch.StudentID)
		if err != nil {
			return nil, fmt.Errorf("update attendance: %w", err)
		}
		if patch.StudentName == nil {
			patch.StudentName = &student.Name
		}
	}
	if patch.ClassID != nil && *patch.ClassID != 0 {
		class, err := s.classes.Lookup(ctx, *patch.ClassID)
		if err != nil {
			return nil, fmt.Errorf("update attendance: %w", err)
		}
		if patch.ClassName == nil {
			patch.ClassName = &class.Name
		}
		if patch.TeacherName == nil {
			patch.TeacherName = &class.TeacherName
		}
	}

	record, err := s.attendance.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update attendance: %w", err)
	}

	s.logger.Info("Attendance updated", zap.Int64("attendance_id", id))
	return record, nil
}

func (s *AttendanceService) Delete(ctx context.Context, id int64) (*model.Attendance, error) {
	record, err := s.attendance.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete attendance: %w", err)
	}

	s.logger.Info("Attendance deleted", zap.Int64("attendance_id", id))
	return record, nil
}

// Mark добавляет запись на сегодня; имена студента и класса подставляются по id
func (s *AttendanceService) Mark(ctx context.Context, req MarkRequest) (*model.Attendance, error) {
	fields := model.Attendance{
		EnrollmentID: req.EnrollmentID,
		StudentID:    req.StudentID,
		ClassID:      req.ClassID,
		Status:       req.Status,
		Notes:        req.Notes,
	}
	if err := s.resolve(ctx, &fields); err != nil {
		return nil, fmt.Errorf("mark attendance: %w", err)
	}

	record, err := s.attendance.Mark(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("mark attendance: %w", err)
	}

	s.logger.Info("Attendance marked",
		zap.Int64("attendance_id", record.ID),
		zap.Int64("enrollment_id", record.EnrollmentID),
		zap.String("status", record.Status))

	return record, nil
}

// resolve проверяет ненулевые ссылки и заполняет пустые денормализованные имена
func (s *AttendanceService) resolve(ctx context.Context, a *model.Attendance) error {
	if a.StudentID != 0 {
		student, err := s.students.Lookup(ctx, a.StudentID)
		if err != nil {
			return err
		}
		if a.StudentName == "" {
			a.StudentName = student.Name
		}
	}
	if a.ClassID != 0 {
		class, err := s.classes.Lookup(ctx, a.ClassID)
		if err != nil {
			return err
		}
		if a.ClassName == "" {
			a.ClassName = class.Name
		}
		if a.TeacherName == "" {
			a.TeacherName = class.TeacherName
		}
	}
	return nil
}
