package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	type wrapper struct {
		Due  Date  `json:"due"`
		Paid *Date `json:"paid"`
	}

	data, err := json.Marshal(wrapper{Due: NewDate(2024, time.March, 15)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"due":"2024-03-15","paid":null}`, string(data))

	data, err = json.Marshal(wrapper{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"due":null,"paid":null}`, string(data))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"due":"2024-04-01T18:30:00Z","paid":"2024-04-02"}`), &w))
	assert.Equal(t, NewDate(2024, time.April, 1), w.Due)
	require.NotNil(t, w.Paid)
	assert.Equal(t, "2024-04-02", w.Paid.String())

	w = wrapper{Due: NewDate(2024, time.April, 1)}
	require.NoError(t, json.Unmarshal([]byte(`{"due":""}`), &w))
	assert.True(t, w.Due.IsZero())
}

func TestDate_UnmarshalErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"number", `20240315`},
		{"bad day", `"2024-02-31"`},
		{"bad timestamp", `"2024-03-15 10:00:00 UTC"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			assert.Error(t, json.Unmarshal([]byte(tt.input), &d))
		})
	}
}

func TestDate_Within(t *testing.T) {
	from := NewDate(2024, time.March, 18)
	to := NewDate(2024, time.March, 23)

	assert.True(t, from.Within(from, to))
	assert.True(t, to.Within(from, to))
	assert.True(t, NewDate(2024, time.March, 20).Within(from, to))
	assert.False(t, NewDate(2024, time.March, 17).Within(from, to))
	assert.False(t, NewDate(2024, time.March, 24).Within(from, to))
}

func TestDateOf_TruncatesToDay(t *testing.T) {
	d := DateOf(time.Date(2024, time.March, 15, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, NewDate(2024, time.March, 15), d)
	assert.Equal(t, "", Date{}.String())
}

func TestNotFoundError(t *testing.T) {
	err := fmt.Errorf("get bill: %w", NewNotFound(EntityBill, 42))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(errors.New("boom")))
	assert.EqualError(t, NewNotFound(EntityReplacement, 1), "Replacement request not found")

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, int64(42), nf.ID)
}

func TestBill_IsOverdue(t *testing.T) {
	today := NewDate(2024, time.March, 15)

	tests := []struct {
		name string
		bill Bill
		want bool
	}{
		{"unpaid past due", Bill{Status: BillStatusUnpaid, DueDate: NewDate(2024, time.March, 1)}, true},
		{"unpaid due today", Bill{Status: BillStatusUnpaid, DueDate: today}, false},
		{"unpaid future", Bill{Status: BillStatusUnpaid, DueDate: NewDate(2024, time.April, 1)}, false},
		{"pending past due", Bill{Status: BillStatusPending, DueDate: NewDate(2024, time.March, 1)}, false},
		{"paid past due", Bill{Status: BillStatusPaid, DueDate: NewDate(2024, time.March, 1)}, false},
		{"no due date", Bill{Status: BillStatusUnpaid}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.bill.IsOverdue(today))
		})
	}
}

func TestInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-2024-007", InvoiceNumber(2024, 7))
	assert.Equal(t, "INV-2025-1234", InvoiceNumber(2025, 1234))
}

func TestBillPatch_ApplyOnlySetFields(t *testing.T) {
	bill := Bill{ID: 3, StudentName: "Emma Johnson", Amount: 180, Status: BillStatusUnpaid}
	amount := 200.0
	status := BillStatusPartial

	BillPatch{Amount: &amount, Status: &status}.Apply(&bill)

	assert.Equal(t, int64(3), bill.ID)
	assert.Equal(t, "Emma Johnson", bill.StudentName)
	assert.Equal(t, 200.0, bill.Amount)
	assert.Equal(t, BillStatusPartial, bill.Status)
}

func TestOptional_JSON(t *testing.T) {
	var p BillPatch
	require.NoError(t, json.Unmarshal([]byte(`{"amount":90}`), &p))
	assert.False(t, p.PaidDate.Set)

	require.NoError(t, json.Unmarshal([]byte(`{"paid_date":null}`), &p))
	assert.True(t, p.PaidDate.Set)
	assert.Nil(t, p.PaidDate.Value)

	require.NoError(t, json.Unmarshal([]byte(`{"paid_date":"2024-03-10"}`), &p))
	require.NotNil(t, p.PaidDate.Value)
	assert.Equal(t, NewDate(2024, time.March, 10), *p.PaidDate.Value)

	assert.Error(t, json.Unmarshal([]byte(`{"paid_date":42}`), &p))

	data, err := json.Marshal(BillPatch{Amount: ptrTo(90.0)})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "paid_date")

	data, err = json.Marshal(BillPatch{PaidDate: Null[Date]()})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"paid_date":null`)

	data, err = json.Marshal(ReplacementPatch{ApprovedBy: Some("admin")})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"approved_by":"admin"`)
}

func TestPatch_NullClearsNullableFields(t *testing.T) {
	paid := NewDate(2024, time.February, 27)
	bill := Bill{ID: 1, InvoiceNumber: "INV-2024-001", Status: BillStatusPaid, PaidDate: &paid, DueDate: NewDate(2024, time.March, 1)}

	var bp BillPatch
	require.NoError(t, json.Unmarshal([]byte(`{"status":"unpaid","paid_date":null,"invoice_number":"INV-2024-101"}`), &bp))
	bp.Apply(&bill)
	assert.Equal(t, BillStatusUnpaid, bill.Status)
	assert.Nil(t, bill.PaidDate)
	assert.Equal(t, "INV-2024-101", bill.InvoiceNumber)
	assert.Equal(t, NewDate(2024, time.March, 1), bill.DueDate)

	checkIn := time.Date(2024, time.March, 11, 14, 55, 0, 0, time.UTC)
	record := Attendance{ID: 1, Status: AttendanceStatusPresent, CheckedInAt: &checkIn, Date: NewDate(2024, time.March, 11)}

	var ap AttendancePatch
	require.NoError(t, json.Unmarshal([]byte(`{"status":"absent","checked_in_at":null}`), &ap))
	ap.Apply(&record)
	assert.Nil(t, record.CheckedInAt)
	assert.Equal(t, NewDate(2024, time.March, 11), record.Date)

	approver := "admin"
	request := Replacement{ID: 2, Status: ReplacementStatusApproved, ApprovedBy: &approver, ApprovedDate: &checkIn}

	var rp ReplacementPatch
	require.NoError(t, json.Unmarshal([]byte(`{"status":"pending","approved_by":null,"approved_date":null}`), &rp))
	rp.Apply(&request)
	assert.Nil(t, request.ApprovedBy)
	assert.Nil(t, request.ApprovedDate)

	// null в поле-дате без указателя сбрасывает его в нулевую дату
	student := Student{DateOfBirth: NewDate(2012, time.May, 4)}
	var sp StudentPatch
	require.NoError(t, json.Unmarshal([]byte(`{"date_of_birth":null}`), &sp))
	sp.Apply(&student)
	assert.True(t, student.DateOfBirth.IsZero())
}

func TestPatch_SetsDecisionFields(t *testing.T) {
	decided := time.Date(2024, time.March, 20, 10, 0, 0, 0, time.UTC)
	request := Replacement{ID: 1, Status: ReplacementStatusPending}

	ReplacementPatch{
		Status:       ptrTo(ReplacementStatusApproved),
		ApprovedBy:   Some("office"),
		ApprovedDate: Some(decided),
	}.Apply(&request)

	require.NotNil(t, request.ApprovedBy)
	assert.Equal(t, "office", *request.ApprovedBy)
	require.NotNil(t, request.ApprovedDate)
	assert.Equal(t, decided, *request.ApprovedDate)

	// запись не делит память с патчем
	patch := ReplacementPatch{ApprovedBy: Some("office")}
	patch.Apply(&request)
	*patch.ApprovedBy.Value = "mallory"
	assert.Equal(t, "office", *request.ApprovedBy)
}

func ptrTo[T any](v T) *T {
	return &v
}

func TestClone_Isolation(t *testing.T) {
	t.Run("student enrollments", func(t *testing.T) {
		orig := Student{Enrollments: []Enrollment{{ClassName: "Piano", Status: EnrollmentStatusActive}}}
		c := orig.Clone()
		c.Enrollments[0].Status = EnrollmentStatusPaused
		assert.Equal(t, EnrollmentStatusActive, orig.Enrollments[0].Status)
	})

	t.Run("teacher availability", func(t *testing.T) {
		orig := Teacher{
			Specializations: []string{"Piano"},
			Availability:    map[string][]string{"monday": {"14:00"}},
		}
		c := orig.Clone()
		c.Specializations[0] = "Drums"
		c.Availability["monday"][0] = "09:00"
		c.Availability["friday"] = []string{"10:00"}

		assert.Equal(t, "Piano", orig.Specializations[0])
		assert.Equal(t, "14:00", orig.Availability["monday"][0])
		assert.NotContains(t, orig.Availability, "friday")
	})

	t.Run("bill paid date", func(t *testing.T) {
		paid := NewDate(2024, time.March, 10)
		orig := Bill{PaidDate: &paid}
		c := orig.Clone()
		*c.PaidDate = NewDate(2030, time.January, 1)
		assert.Equal(t, paid, *orig.PaidDate)
	})

	t.Run("replacement decision", func(t *testing.T) {
		orig := Replacement{Status: ReplacementStatusPending}
		orig.Decide(ReplacementStatusApproved, "admin", "ok", time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC))
		c := orig.Clone()
		*c.ApprovedBy = "someone else"
		assert.Equal(t, "admin", *orig.ApprovedBy)
		assert.False(t, orig.IsPending())
	})
}

func TestCheckInTime(t *testing.T) {
	now := time.Date(2024, time.March, 15, 16, 0, 0, 0, time.UTC)

	got := CheckInTime(AttendanceStatusPresent, now)
	require.NotNil(t, got)
	assert.Equal(t, now, *got)
	assert.Nil(t, CheckInTime(AttendanceStatusAbsent, now))
	assert.Nil(t, CheckInTime(AttendanceStatusLate, now))
}

func TestClass_SeatsLeftAndLevel(t *testing.T) {
	c := Class{Capacity: 8, CurrentEnrollment: 6, Level: "Beginner"}
	assert.Equal(t, 2, c.SeatsLeft())
	assert.True(t, c.HasLevel("beginner"))

	c.CurrentEnrollment = 10
	assert.Equal(t, 0, c.SeatsLeft())
}
