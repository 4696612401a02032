package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/music_school/internal/model"
	"github.com/Freeeeeet/music_school/internal/repository"
	"go.uber.org/zap"
)

type BillFilter struct {
	StudentID int64
	Status    string
}

type BillingService struct {
	bills    *repository.BillingRepository
	students *repository.StudentRepository
	logger   *zap.Logger
}

func NewBillingService(bills *repository.BillingRepository, students *repository.StudentRepository, logger *zap.Logger) *BillingService {
	return &BillingService{
		bills:    bills,
		students: students,
		logger:   logger,
	}
}

func (s *BillingService) List(ctx context.Context, f BillFilter) ([]model.Bill, error) {
	var (
		bills []model.Bill
		err   error
	)
	switch {
	case f.StudentID != 0:
		bills, err = s.bills.GetByStudent(ctx, f.StudentID)
	case f.Status != "":
		bills, err = s.bills.GetByStatus(ctx, f.Status)
	default:
		bills, err = s.bills.GetAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}

	if f.StudentID != 0 && f.Status != "" {
		bills = keep(bills, func(b *model.Bill) bool { return b.Status == f.Status })
	}
	return bills, nil
}

func (s *BillingService) Get(ctx context.Context, id int64) (*model.Bill, error) {
	bill, err := s.bills.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return bill, nil
}

// Create: если указан student_id, студент должен существовать;
// пустые student_name и parent_name копируются из его карточки
func (s *BillingService) Create(ctx context.Context, fields model.Bill) (*model.Bill, error) {
	if fields.StudentID != 0 {
		student, err := s.students.Lookup(ctx, fields.StudentID)
		if err != nil {
			return nil, fmt.Errorf("create bill: %w", err)
		}
		if fields.StudentName == "" {
			fields.StudentName = student.Name
		}
		if fields.ParentName == "" {
			fields.ParentName = student.ParentName
		}
	}

	bill, err := s.bills.Create(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("create bill: %w", err)
	}

	s.logger.Info("Bill issued",
		zap.Int64("bill_id", bill.ID),
		zap.String("invoice_number", bill.InvoiceNumber),
		zap.Float64("amount", bill.Amount))

	return bill, nil
}

func (s *BillingService) Update(ctx context.Context, id int64, patch model.BillPatch) (*model.Bill, error) {
	if patch.StudentID != nil && *patch.StudentID != 0 {
		student, err := s.students.Lookup(ctx, *patch.StudentID)
		if err != nil {
			return nil, fmt.Errorf("update bill: %w", err)
		}
		if patch.StudentName == nil {
			patch.StudentName = &student.Name
		}
		if patch.ParentName == nil {
			patch.ParentName = &student.ParentName
		}
	}

	bill, err := s.bills.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update bill: %w", err)
	}

	s.logger.Info("Bill updated", zap.Int64("bill_id", id))
	return bill, nil
}

func (s *BillingService) Delete(ctx context.Context, id int64) (*model.Bill, error) {
	bill, err := s.bills.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete bill: %w", err)
	}

	s.logger.Info("Bill deleted",
		zap.Int64("bill_id", id),
		zap.String("invoice_number", bill.InvoiceNumber))

	return bill, nil
}

func (s *BillingService) Overdue(ctx context.Context) ([]model.Bill, error) {
	bills, err := s.bills.GetOverdueBills(ctx)
	if err != nil {
		return nil, fmt.Errorf("get overdue bills: %w", err)
	}
	return bills, nil
}

func (s *BillingService) MarkPaid(ctx context.Context, id int64, paymentMethod string) (*model.Bill, error) {
	bill, err := s.bills.MarkAsPaid(ctx, id, paymentMethod)
	if err != nil {
		s.logger.Error("Failed to mark bill as paid",
			zap.Int64("bill_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("mark bill paid: %w", err)
	}

	s.logger.Info("Bill paid",
		zap.Int64("bill_id", id),
		zap.String("invoice_number", bill.InvoiceNumber),
		zap.String("payment_method", paymentMethod))

	return bill, nil
}
