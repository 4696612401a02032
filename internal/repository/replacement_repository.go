package repository

import (
	"context"
	"time"

	"github.com/Freeeeeet/music_school/internal/model"
	"github.com/Freeeeeet/music_school/internal/repository/base"
)

type ReplacementRepository struct {
	requests *base.Collection[model.Replacement]
	latency  base.Latency
}

func NewReplacementRepository(seed []model.Replacement, latency base.Latency) *ReplacementRepository {
	return &ReplacementRepository{
		requests: base.NewCollection(model.EntityReplacement, seed, replacementID, model.Replacement.Clone),
		latency:  latency,
	}
}

func replacementID(r *model.Replacement) int64 { return r.ID }

func (r *ReplacementRepository) GetAll(ctx context.Context) ([]model.Replacement, error) {
	if err := base.Wait(ctx, r.latency.List); err != nil {
		return nil, err
	}
	return r.requests.All(), nil
}

func (r *ReplacementRepository) GetByID(ctx context.Context, id int64) (*model.Replacement, error) {
	if err := base.Wait(ctx, r.latency.Get); err != nil {
		return nil, err
	}
	req, err := r.requests.Get(id)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Create создаёт заявку в статусе pending без решения
func (r *ReplacementRepository) Create(ctx context.Context, fields model.Replacement) (*model.Replacement, error) {
	if err := base.Wait(ctx, r.latency.Create); err != nil {
		return nil, err
	}

	now := time.Now()
	created := r.requests.Insert(func(id int64) model.Replacement {
		req := fields
		req.ID = id
		req.Status = model.ReplacementStatusPending
		req.RequestDate = now
		req.ApprovedBy = nil
		req.ApprovedDate = nil
		return req
	})
	return &created, nil
}

func (r *ReplacementRepository) Update(ctx context.Context, id int64, patch model.ReplacementPatch) (*model.Replacement, error) {
	if err := base.Wait(ctx, r.latency.Update); err != nil {
		return nil, err
	}
	updated, err := r.requests.Update(id, patch.Apply)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *ReplacementRepository) Delete(ctx context.Context, id int64) (*model.Replacement, error) {
	if err := base.Wait(ctx, r.latency.Delete); err != nil {
		return nil, err
	}
	deleted, err := r.requests.Delete(id)
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

func (r *ReplacementRepository) GetByStatus(ctx context.Context, status string) ([]model.Replacement, error) {
	if err := base.Wait(ctx, r.latency.Filter); err != nil {
		return nil, err
	}
	return r.requests.Filter(func(req *model.Replacement) bool {
		return req.Status == status
	}), nil
}

func (r *ReplacementRepository) GetByStudent(ctx context.Context, studentID int64) ([]model.Replacement, error) {
	if err := base.Wait(ctx, r.latency.Filter); err != nil {
		return nil, err
	}
	return r.requests.Filter(func(req *model.Replacement) bool {
		return req.StudentID == studentID
	}), nil
}

// Approve одобряет заявку
func (r *ReplacementRepository) Approve(ctx context.Context, id int64, approvedBy, notes string) (*model.Replacement, error) {
	return r.decide(ctx, id, model.ReplacementStatusApproved, approvedBy, notes)
}

// Reject отклоняет заявку; approved_by/approved_date хранят того, кто принял решение
func (r *ReplacementRepository) Reject(ctx context.Context, id int64, approvedBy, notes string) (*model.Replacement, error) {
	return r.decide(ctx, id, model.ReplacementStatusRejected, approvedBy, notes)
}

func (r *ReplacementRepository) decide(ctx context.Context, id int64, status, approvedBy, notes string) (*model.Replacement, error) {
	if err := base.Wait(ctx, r.latency.Transition); err != nil {
		return nil, err
	}

	now := time.Now()
	updated, err := r.requests.Update(id, func(req *model.Replacement) {
		req.Decide(status, approvedBy, notes, now)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
