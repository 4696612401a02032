package repository

import (
	"context"
	"time"

	"github.com/Freeeeeet/music_school/internal/model"
	"github.com/Freeeeeet/music_school/internal/repository/base"
)

type BillingRepository struct {
	bills   *base.Collection[model.Bill]
	latency base.Latency
}

func NewBillingRepository(seed []model.Bill, latency base.Latency) *BillingRepository {
	return &BillingRepository{
		bills:   base.NewCollection(model.EntityBill, seed, billID, model.Bill.Clone),
		latency: latency,
	}
}

func billID(b *model.Bill) int64 { return b.ID }

func (r *BillingRepository) GetAll(ctx context.Context) ([]model.Bill, error) {
	if err := base.Wait(ctx, r.latency.List); err != nil {
		return nil, err
	}
	return r.bills.All(), nil
}

func (r *BillingRepository) GetByID(ctx context.Context, id int64) (*model.Bill, error) {
	if err := base.Wait(ctx, r.latency.Get); err != nil {
		return nil, err
	}
	bill, err := r.bills.Get(id)
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// Create выставляет счёт: номер INV-<год>-<id>, статус по умолчанию unpaid
func (r *BillingRepository) Create(ctx context.Context, fields model.Bill) (*model.Bill, error) {
	if err := base.Wait(ctx, r.latency.Create); err != nil {
		return nil, err
	}

	now := time.Now()
	created := r.bills.Insert(func(id int64) model.Bill {
		b := fields
		b.ID = id
		b.InvoiceNumber = model.InvoiceNumber(now.Year(), id)
		b.CreatedAt = now
		if b.Status == "" {
			b.Status = model.BillStatusUnpaid
		}
		return b
	})
	return &created, nil
}

func (r *BillingRepository) Update(ctx context.Context, id int64, patch model.BillPatch) (*model.Bill, error) {
	if err := base.Wait(ctx, r.latency.Update); err != nil {
		return nil, err
	}
	updated, err := r.bills.Update(id, patch.Apply)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *BillingRepository) Delete(ctx context.Context, id int64) (*model.Bill, error) {
	if err := base.Wait(ctx, r.latency.Delete); err != nil {
		return nil, err
	}
	deleted, err := r.bills.Delete(id)
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

func (r *BillingRepository) GetByStudent(ctx context.Context, studentID int64) ([]model.Bill, error) {
	if err := base.Wait(ctx, r.latency.Filter); err != nil {
		return nil, err
	}
	return r.bills.Filter(func(b *model.Bill) bool {
		return b.StudentID == studentID
	}), nil
}

func (r *BillingRepository) GetByStatus(ctx context.Context, status string) ([]model.Bill, error) {
	if err := base.Wait(ctx, r.latency.Filter); err != nil {
		return nil, err
	}
	return r.bills.Filter(func(b *model.Bill) bool {
		return b.Status == status
	}), nil
}

// GetOverdueBills получает неоплаченные счета со сроком раньше сегодняшнего дня
func (r *BillingRepository) GetOverdueBills(ctx context.Context) ([]model.Bill, error) {
	if err := base.Wait(ctx, r.latency.Range); err != nil {
		return nil, err
	}
	today := model.Today()
	return r.bills.Filter(func(b *model.Bill) bool {
		return b.IsOverdue(today)
	}), nil
}

// MarkAsPaid переводит счёт в paid и проставляет дату и способ оплаты
func (r *BillingRepository) MarkAsPaid(ctx context.Context, id int64, paymentMethod string) (*model.Bill, error) {
	if err := base.Wait(ctx, r.latency.Transition); err != nil {
		return nil, err
	}

	paidDate := model.Today()
	updated, err := r.bills.Update(id, func(b *model.Bill) {
		b.Status = model.BillStatusPaid
		b.PaidDate = &paidDate
		b.PaymentMethod = paymentMethod
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
