package repository

import (
	"context"
	"strings"
	"time"

	"github.com/Freeeeeet/music_school/internal/model"
	"github.com/Freeeeeet/music_school/internal/repository/base"
)

type TeacherRepository struct {
	teachers *base.Collection[model.Teacher]
	latency  base.Latency
}

func NewTeacherRepository(seed []model.Teacher, latency base.Latency) *TeacherRepository {
	return &TeacherRepository{
		teachers: base.NewCollection(model.EntityTeacher, seed, teacherID, model.Teacher.Clone),
		latency:  latency,
	}
}

func teacherID(t *model.Teacher) int64 { return t.ID }

func (r *TeacherRepository) GetAll(ctx context.Context) ([]model.Teacher, error) {
	if err := base.Wait(ctx, r.latency.List); err != nil {
		return nil, err
	}
	return r.teachers.All(), nil
}

func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*model.Teacher, error) {
	if err := base.Wait(ctx, r.latency.Get); err != nil {
		return nil, err
	}
	teacher, err := r.teachers.Get(id)
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

// Create добавляет учителя: статус active, дата прихода сегодня, счётчики обнулены
func (r *TeacherRepository) Create(ctx context.Context, fields model.Teacher) (*model.Teacher, error) {
	if err := base.Wait(ctx, r.latency.Create); err != nil {
		return nil, err
	}

	now := time.Now()
	created := r.teachers.Insert(func(id int64) model.Teacher {
		t := fields
		t.ID = id
		t.Status = model.TeacherStatusActive
		t.JoiningDate = model.DateOf(now)
		t.TotalStudents = 0
		t.MonthlyEarnings = 0
		t.CreatedAt = now
		return t
	})
	return &created, nil
}

func (r *TeacherRepository) Update(ctx context.Context, id int64, patch model.TeacherPatch) (*model.Teacher, error) {
	if err := base.Wait(ctx, r.latency.Update); err != nil {
		return nil, err
	}
	updated, err := r.teachers.Update(id, patch.Apply)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete удаляет учителя; классы с этим teacher_id остаются как есть
func (r *TeacherRepository) Delete(ctx context.Context, id int64) (*model.Teacher, error) {
	if err := base.Wait(ctx, r.latency.Delete); err != nil {
		return nil, err
	}
	deleted, err := r.teachers.Delete(id)
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

// GetBySpecialization ищет точное совпадение тега специализации
func (r *TeacherRepository) GetBySpecialization(ctx context.Context, specialization string) ([]model.Teacher, error) {
	if err := base.Wait(ctx, r.latency.Filter); err != nil {
		return nil, err
	}
	return r.teachers.Filter(func(t *model.Teacher) bool {
		return t.HasSpecialization(specialization)
	}), nil
}

// Search ищет по имени, email и любой специализации
func (r *TeacherRepository) Search(ctx context.Context, query string) ([]model.Teacher, error) {
	if err := base.Wait(ctx, r.latency.Search); err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	return r.teachers.Filter(func(t *model.Teacher) bool {
		if containsFold(t.Name, q) || containsFold(t.Email, q) {
			return true
		}
		for _, spec := range t.Specializations {
			if containsFold(spec, q) {
				return true
			}
		}
		return false
	}), nil
}

// Lookup returns the teacher without the simulated delay. Services use it to
// validate teacher_id references inside a write.
func (r *TeacherRepository) Lookup(ctx context.Context, id int64) (*model.Teacher, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	teacher, err := r.teachers.Get(id)
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}
