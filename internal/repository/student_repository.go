package repository

import (
	"context"
	"strings"
	"time"

	"github.com/Freeeeeet/music_school/internal/model"
	"github.com/Freeeeeet/music_school/internal/repository/base"
)

type StudentRepository struct {
	students *base.Collection[model.Student]
	latency  base.Latency
}

func NewStudentRepository(seed []model.Student, latency base.Latency) *StudentRepository {
	return &StudentRepository{
		students: base.NewCollection(model.EntityStudent, seed, studentID, model.Student.Clone),
		latency:  latency,
	}
}

func studentID(s *model.Student) int64 { return s.ID }

// GetAll возвращает копию всех студентов в порядке добавления
func (r *StudentRepository) GetAll(ctx context.Context) ([]model.Student, error) {
	if err := base.Wait(ctx, r.latency.List); err != nil {
		return nil, err
	}
	return r.students.All(), nil
}

// GetByID получает студента по ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	if err := base.Wait(ctx, r.latency.Get); err != nil {
		return nil, err
	}
	student, err := r.students.Get(id)
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// Create добавляет студента; ID, CreatedAt и LastActivity проставляются здесь
func (r *StudentRepository) Create(ctx context.Context, fields model.Student) (*model.Student, error) {
	if err := base.Wait(ctx, r.latency.Create); err != nil {
		return nil, err
	}

	now := time.Now()
	created := r.students.Insert(func(id int64) model.Student {
		s := fields
		s.ID = id
		s.CreatedAt = now
		s.LastActivity = now
		return s
	})
	return &created, nil
}

// Update частично обновляет студента
func (r *StudentRepository) Update(ctx context.Context, id int64, patch model.StudentPatch) (*model.Student, error) {
	if err := base.Wait(ctx, r.latency.Update); err != nil {
		return nil, err
	}
	updated, err := r.students.Update(id, patch.Apply)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete удаляет студента. Посещаемость и счета студента не трогаются.
func (r *StudentRepository) Delete(ctx context.Context, id int64) (*model.Student, error) {
	if err := base.Wait(ctx, r.latency.Delete); err != nil {
		return nil, err
	}
	deleted, err := r.students.Delete(id)
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

// GetByEnrollmentStatus получает студентов, у которых есть запись с указанным статусом
func (r *StudentRepository) GetByEnrollmentStatus(ctx context.Context, status string) ([]model.Student, error) {
	if err := base.Wait(ctx, r.latency.Filter); err != nil {
		return nil, err
	}
	return r.students.Filter(func(s *model.Student) bool {
		return s.HasEnrollmentStatus(status)
	}), nil
}

// Search ищет по имени, email и имени родителя без учёта регистра
func (r *StudentRepository) Search(ctx context.Context, query string) ([]model.Student, error) {
	if err := base.Wait(ctx, r.latency.Search); err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	return r.students.Filter(func(s *model.Student) bool {
		return containsFold(s.Name, q) ||
			containsFold(s.Email, q) ||
			containsFold(s.ParentName, q)
	}), nil
}

// Lookup returns the student without the simulated delay, for reference
// checks made by other stores' writes.
func (r *StudentRepository) Lookup(ctx context.Context, id int64) (*model.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	student, err := r.students.Get(id)
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// containsFold expects lowerQuery already lower-cased.
func containsFold(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}
