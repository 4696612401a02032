package model

import (
	"fmt"
	"time"
)

const (
	BillStatusPaid    = "paid"
	BillStatusUnpaid  = "unpaid"
	BillStatusPending = "pending"
	BillStatusPartial = "partial"
)

type Bill struct {
	ID            int64     `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
	StudentID     int64     `json:"student_id,omitempty"`
	StudentName   string    `json:"student_name"`
	ParentName    string    `json:"parent_name"`
	ClassName     string    `json:"class_name"`
	Amount        float64   `json:"amount"`
	DueDate       Date      `json:"due_date"`
	Status        string    `json:"status"`
	PaidDate      *Date     `json:"paid_date"`
	PaymentMethod string    `json:"payment_method,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (b *Bill) IsPaid() bool {
	return b.Status == BillStatusPaid
}

// IsOverdue checks if the bill is unpaid and its due date is before today
func (b *Bill) IsOverdue(today Date) bool {
	return b.Status == BillStatusUnpaid && !b.DueDate.IsZero() && b.DueDate.Before(today)
}

func (b Bill) Clone() Bill {
	b.PaidDate = datePtr(b.PaidDate)
	return b
}

// InvoiceNumber formats the invoice number for a bill issued in year with the given id.
func InvoiceNumber(year int, id int64) string {
	return fmt.Sprintf("INV-%d-%03d", year, id)
}

// BillPatch carries a partial update. Date fields accept null: paid_date
// null clears the payment date, due_date null resets it to the zero date.
type BillPatch struct {
	InvoiceNumber *string        `json:"invoice_number"`
	StudentID     *int64         `json:"student_id"`
	StudentName   *string        `json:"student_name"`
	ParentName    *string        `json:"parent_name"`
	ClassName     *string        `json:"class_name"`
	Amount        *float64       `json:"amount"`
	DueDate       Optional[Date] `json:"due_date,omitzero"`
	Status        *string        `json:"status"`
	PaidDate      Optional[Date] `json:"paid_date,omitzero"`
	PaymentMethod *string        `json:"payment_method"`
}

func (p BillPatch) Apply(b *Bill) {
	if p.InvoiceNumber != nil {
		b.InvoiceNumber = *p.InvoiceNumber
	}
	if p.StudentID != nil {
		b.StudentID = *p.StudentID
	}
	if p.StudentName != nil {
		b.StudentName = *p.StudentName
	}
	if p.ParentName != nil {
		b.ParentName = *p.ParentName
	}
	if p.ClassName != nil {
		b.ClassName = *p.ClassName
	}
	if p.Amount != nil {
		b.Amount = *p.Amount
	}
	p.DueDate.applyValue(&b.DueDate)
	if p.Status != nil {
		b.Status = *p.Status
	}
	p.PaidDate.applyPtr(&b.PaidDate)
	if p.PaymentMethod != nil {
		b.PaymentMethod = *p.PaymentMethod
	}
}
