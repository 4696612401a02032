package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/music_school/internal/model"
	"github.com/Freeeeeet/music_school/internal/repository"
	"go.uber.org/zap"
)

// StudentFilter: пустые поля не участвуют в отборе
type StudentFilter struct {
	Status string
	Query  string
}

type TeacherFilter struct {
	Specialization string
	Query          string
}

type ClassFilter struct {
	TeacherID int64
	Level     string
	Query     string
}

// RosterService отвечает за студентов, преподавателей и классы
type RosterService struct {
	students *repository.StudentRepository
	teachers *repository.TeacherRepository
	classes  *repository.ClassRepository
	logger   *zap.Logger
}

func NewRosterService(
	students *repository.StudentRepository,
	teachers *repository.TeacherRepository,
	classes *repository.ClassRepository,
	logger *zap.Logger,
) *RosterService {
	return &RosterService{
		students: students,
		teachers: teachers,
		classes:  classes,
		logger:   logger,
	}
}

// ListStudents: поиск имеет приоритет, статус дофильтровывается в памяти
func (s *RosterService) ListStudents(ctx context.Context, f StudentFilter) ([]model.Student, error) {
	var (
		students []model.Student
		err      error
	)
	switch {
	case f.Query != "":
		students, err = s.students.Search(ctx, f.Query)
	case f.Status != "":
		students, err = s.students.GetByEnrollmentStatus(ctx, f.Status)
	default:
		students, err = s.students.GetAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}

	if f.Query != "" && f.Status != "" {
		students = keep(students, func(st *model.Student) bool {
			return st.HasEnrollmentStatus(f.Status)
		})
	}
	return students, nil
}

func (s *RosterService) GetStudent(ctx context.Context, id int64) (*model.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}
	return student, nil
}

func (s *RosterService) CreateStudent(ctx context.Context, fields model.Student) (*model.Student, error) {
	student, err := s.students.Create(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("create student: %w", err)
	}

	s.logger.Info("Student created",
		zap.Int64("student_id", student.ID),
		zap.String("name", student.Name))

	return student, nil
}

func (s *RosterService) UpdateStudent(ctx context.Context, id int64, patch model.StudentPatch) (*model.Student, error) {
	student, err := s.students.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update student: %w", err)
	}

	s.logger.Info("Student updated", zap.Int64("student_id", id))
	return student, nil
}

// DeleteStudent не каскадирует: посещаемость, счета и заявки остаются
func (s *RosterService) DeleteStudent(ctx context.Context, id int64) (*model.Student, error) {
	student, err := s.students.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete student: %w", err)
	}

	s.logger.Info("Student deleted",
		zap.Int64("student_id", id),
		zap.String("name", student.Name))

	return student, nil
}

func (s *RosterService) ListTeachers(ctx context.Context, f TeacherFilter) ([]model.Teacher, error) {
	var (
		teachers []model.Teacher
		err      error
	)
	switch {
	case f.Query != "":
		teachers, err = s.teachers.Search(ctx, f.Query)
	case f.Specialization != "":
		teachers, err = s.teachers.GetBySpecialization(ctx, f.Specialization)
	default:
		teachers, err = s.teachers.GetAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}

	if f.Query != "" && f.Specialization != "" {
		teachers = keep(teachers, func(t *model.Teacher) bool {
			return t.HasSpecialization(f.Specialization)
		})
	}
	return teachers, nil
}

func (s *RosterService) GetTeacher(ctx context.Context, id int64) (*model.Teacher, error) {
	teacher, err := s.teachers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get teacher: %w", err)
	}
	return teacher, nil
}

func (s *RosterService) CreateTeacher(ctx context.Context, fields model.Teacher) (*model.Teacher, error) {
	teacher, err := s.teachers.Create(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("create teacher: %w", err)
	}

	s.logger.Info("Teacher created",
		zap.Int64("teacher_id", teacher.ID),
		zap.String("name", teacher.Name),
		zap.Strings("specializations", teacher.Specializations))

	return teacher, nil
}

func (s *RosterService) UpdateTeacher(ctx context.Context, id int64, patch model.TeacherPatch) (*model.Teacher, error) {
	teacher, err := s.teachers.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update teacher: %w", err)
	}

	s.logger.Info("Teacher updated", zap.Int64("teacher_id", id))
	return teacher, nil
}

// DeleteTeacher оставляет классы преподавателя как есть
func (s *RosterService) DeleteTeacher(ctx context.Context, id int64) (*model.Teacher, error) {
	teacher, err := s.teachers.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete teacher: %w", err)
	}

	s.logger.Info("Teacher deleted",
		zap.Int64("teacher_id", id),
		zap.String("name", teacher.Name))

	return teacher, nil
}

func (s *RosterService) ListClasses(ctx context.Context, f ClassFilter) ([]model.Class, error) {
	var (
		classes []model.Class
		err     error
	)
	switch {
	case f.Query != "":
		classes, err = s.classes.Search(ctx, f.Query)
	case f.TeacherID != 0:
		classes, err = s.classes.GetByTeacher(ctx, f.TeacherID)
	case f.Level != "":
		classes, err = s.classes.GetByLevel(ctx, f.Level)
	default:
		classes, err = s.classes.GetAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}

	return keep(classes, func(c *model.Class) bool {
		if f.TeacherID != 0 && c.TeacherID != f.TeacherID {
			return false
		}
		if f.Level != "" && !c.HasLevel(f.Level) {
			return false
		}
		return true
	}), nil
}

func (s *RosterService) GetClass(ctx context.Context, id int64) (*model.Class, error) {
	class, err := s.classes.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get class: %w", err)
	}
	return class, nil
}

// CreateClass требует существующего преподавателя; пустое teacher_name берётся из него
func (s *RosterService) CreateClass(ctx context.Context, fields model.Class) (*model.Class, error) {
	teacher, err := s.teachers.Lookup(ctx, fields.TeacherID)
	if err != nil {
		return nil, fmt.Errorf("create class: %w", err)
	}
	if strings.TrimSpace(fields.TeacherName) == "" {
		fields.TeacherName = teacher.Name
	}

	class, err := s.classes.Create(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("create class: %w", err)
	}

	s.logger.Info("Class created",
		zap.Int64("class_id", class.ID),
		zap.Int64("teacher_id", class.TeacherID),
		zap.String("name", class.Name))

	return class, nil
}

func (s *RosterService) UpdateClass(ctx context.Context, id int64, patch model.ClassPatch) (*model.Class, error) {
	if patch.TeacherID != nil {
		teacher, err := s.teachers.Lookup(ctx, *patch.TeacherID)
		if err != nil {
			return nil, fmt.Errorf("update class: %w", err)
		}
		if patch.TeacherName == nil {
			patch.TeacherName = &teacher.Name
		}
	}

	class, err := s.classes.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update class: %w", err)
	}

	s.logger.Info("Class updated", zap.Int64("class_id", id))
	return class, nil
}

func (s *RosterService) DeleteClass(ctx context.Context, id int64) (*model.Class, error) {
	class, err := s.classes.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete class: %w", err)
	}

	s.logger.Info("Class deleted",
		zap.Int64("class_id", id),
		zap.String("name", class.Name))

	return class, nil
}

// keep фильтрует срез на месте
func keep[T any](items []T, pred func(*T) bool) []T {
	out := items[:0]
	for i := range items {
		if pred(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}
