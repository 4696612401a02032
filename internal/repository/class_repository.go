package repository

import (
	"context"
	"strings"
	"time"

	"github.com/Freeeeeet/music_school/internal/model"
	"github.com/Freeeeeet/music_school/internal/repository/base"
)

type ClassRepository struct {
	classes *base.Collection[model.Class]
	latency base.Latency
}

func NewClassRepository(seed []model.Class, latency base.Latency) *ClassRepository {
	return &ClassRepository{
		classes: base.NewCollection(model.EntityClass, seed, classID, model.Class.Clone),
		latency: latency,
	}
}

func classID(c *model.Class) int64 { return c.ID }

func (r *ClassRepository) GetAll(ctx context.Context) ([]model.Class, error) {
	if err := base.Wait(ctx, r.latency.List); err != nil {
		return nil, err
	}
	return r.classes.All(), nil
}

func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*model.Class, error) {
	if err := base.Wait(ctx, r.latency.Get); err != nil {
		return nil, err
	}
	class, err := r.classes.Get(id)
	if err != nil {
		return nil, err
	}
	return &class, nil
}

// Create добавляет класс с нулевой наполненностью и статусом active
func (r *ClassRepository) Create(ctx context.Context, fields model.Class) (*model.Class, error) {
	if err := base.Wait(ctx, r.latency.Create); err != nil {
		return nil, err
	}

	now := time.Now()
	created := r.classes.Insert(func(id int64) model.Class {
		c := fields
		c.ID = id
		c.CurrentEnrollment = 0
		c.Status = model.ClassStatusActive
		c.CreatedAt = now
		return c
	})
	return &created, nil
}

func (r *ClassRepository) Update(ctx context.Context, id int64, patch model.ClassPatch) (*model.Class, error) {
	if err := base.Wait(ctx, r.latency.Update); err != nil {
		return nil, err
	}
	updated, err := r.classes.Update(id, patch.Apply)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *ClassRepository) Delete(ctx context.Context, id int64) (*model.Class, error) {
	if err := base.Wait(ctx, r.latency.Delete); err != nil {
		return nil, err
	}
	deleted, err := r.classes.Delete(id)
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

// GetByTeacher получает классы учителя
func (r *ClassRepository) GetByTeacher(ctx context.Context, teacherID int64) ([]model.Class, error) {
	if err := base.Wait(ctx, r.latency.Filter); err != nil {
		return nil, err
	}
	return r.classes.Filter(func(c *model.Class) bool {
		return c.TeacherID == teacherID
	}), nil
}

// GetByLevel сравнивает уровень без учёта регистра
func (r *ClassRepository) GetByLevel(ctx context.Context, level string) ([]model.Class, error) {
	if err := base.Wait(ctx, r.latency.Filter); err != nil {
		return nil, err
	}
	return r.classes.Filter(func(c *model.Class) bool {
		return c.HasLevel(level)
	}), nil
}

// Search ищет по названию, имени учителя и уровню
func (r *ClassRepository) Search(ctx context.Context, query string) ([]model.Class, error) {
	if err := base.Wait(ctx, r.latency.Search); err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	return r.classes.Filter(func(c *model.Class) bool {
		return containsFold(c.Name, q) ||
			containsFold(c.TeacherName, q) ||
			containsFold(c.Level, q)
	}), nil
}

func (r *ClassRepository) Lookup(ctx context.Context, id int64) (*model.Class, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	class, err := r.classes.Get(id)
	if err != nil {
		return nil, err
	}
	return &class, nil
}
