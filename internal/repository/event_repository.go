package repository

import (
	"context"

	"github.com/Freeeeeet/music_school/internal/model"
	"github.com/Freeeeeet/music_school/internal/repository/base"
)

type EventRepository struct {
	events  *base.Collection[model.Event]
	latency base.Latency
}

func NewEventRepository(seed []model.Event, latency base.Latency) *EventRepository {
	return &EventRepository{
		events:  base.NewCollection(model.EntityEvent, seed, eventID, model.Event.Clone),
		latency: latency,
	}
}

func eventID(e *model.Event) int64 { return e.ID }

func (r *EventRepository) GetAll(ctx context.Context) ([]model.Event, error) {
	if err := base.Wait(ctx, r.latency.List); err != nil {
		return nil, err
	}
	return r.events.All(), nil
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	if err := base.Wait(ctx, r.latency.Get); err != nil {
		return nil, err
	}
	event, err := r.events.Get(id)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Create добавляет событие в статусе scheduled
func (r *EventRepository) Create(ctx context.Context, fields model.Event) (*model.Event, error) {
	if err := base.Wait(ctx, r.latency.Create); err != nil {
		return nil, err
	}
	created := r.events.Insert(func(id int64) model.Event {
		e := fields
		e.ID = id
		e.Status = model.EventStatusScheduled
		return e
	})
	return &created, nil
}

func (r *EventRepository) Update(ctx context.Context, id int64, patch model.EventPatch) (*model.Event, error) {
	if err := base.Wait(ctx, r.latency.Update); err != nil {
		return nil, err
	}
	updated, err := r.events.Update(id, patch.Apply)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *EventRepository) Delete(ctx context.Context, id int64) (*model.Event, error) {
	if err := base.Wait(ctx, r.latency.Delete); err != nil {
		return nil, err
	}
	deleted, err := r.events.Delete(id)
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

func (r *EventRepository) GetByDate(ctx context.Context, date model.Date) ([]model.Event, error) {
	if err := base.Wait(ctx, r.latency.Filter); err != nil {
		return nil, err
	}
	return r.events.Filter(func(e *model.Event) bool {
		return e.Date.Equal(date)
	}), nil
}

func (r *EventRepository) GetByType(ctx context.Context, eventType string) ([]model.Event, error) {
	if err := base.Wait(ctx, r.latency.Filter); err != nil {
		return nil, err
	}
	return r.events.Filter(func(e *model.Event) bool {
		return e.Type == eventType
	}), nil
}

func (r *EventRepository) GetByDateRange(ctx context.Context, from, to model.Date) ([]model.Event, error) {
	if err := base.Wait(ctx, r.latency.Range); err != nil {
		return nil, err
	}
	return r.events.Filter(func(e *model.Event) bool {
		return e.Date.Within(from, to)
	}), nil
}
