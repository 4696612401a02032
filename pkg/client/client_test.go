package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Freeeeeet/music_school/internal/controller"
	"github.com/Freeeeeet/music_school/internal/model"
	"github.com/Freeeeeet/music_school/internal/repository"
	"github.com/Freeeeeet/music_school/internal/repository/base"
	"github.com/Freeeeeet/music_school/internal/seed"
	"github.com/Freeeeeet/music_school/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *Client {
	t.Helper()

	ds, err := seed.EmbeddedSource{}.Load(context.Background())
	require.NoError(t, err)
	stores := repository.NewStores(ds, base.NoLatency())
	logger := zap.NewNop()

	h := controller.NewHandlers(
		service.NewRosterService(stores.Students, stores.Teachers, stores.Classes, logger),
		service.NewAttendanceService(stores.Attendance, stores.Students, stores.Classes, logger),
		service.NewBillingService(stores.Billing, stores.Students, logger),
		service.NewScheduleService(stores.Events, stores.Replacements, stores.Students, stores.Classes, logger),
		service.NewReportService(stores, logger),
		logger,
	)

	srv := httptest.NewServer(controller.NewRouter(h, logger))
	t.Cleanup(srv.Close)

	return New(srv.URL + "/")
}

func TestClient_Students(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()

	students, err := c.ListStudents(ctx, StudentQuery{Status: model.EnrollmentStatusActive, Search: "brown"})
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Olivia Brown", students[0].Name)

	created, err := c.CreateStudent(ctx, model.Student{Name: "Ava Kim", ParentName: "Min Kim"})
	require.NoError(t, err)
	assert.Equal(t, int64(6), created.ID)

	notes := "Prefers mornings"
	updated, err := c.UpdateStudent(ctx, created.ID, model.StudentPatch{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, "Min Kim", updated.ParentName)

	deleted, err := c.DeleteStudent(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ava Kim", deleted.Name)

	got, err := c.GetStudent(ctx, created.ID)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, model.ErrNotFound))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Student not found", apiErr.Description)
	assert.Equal(t, "api error 404: Student not found", apiErr.Error())
}

func TestClient_Bills(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()

	overdue, err := c.OverdueBills(ctx)
	require.NoError(t, err)
	require.Len(t, overdue, 1)

	paid, err := c.MarkBillPaid(ctx, overdue[0].ID, "Bank Transfer")
	require.NoError(t, err)
	assert.Equal(t, model.BillStatusPaid, paid.Status)
	assert.Equal(t, "Bank Transfer", paid.PaymentMethod)

	bills, err := c.ListBills(ctx, BillQuery{StudentID: 1, Status: model.BillStatusPaid})
	require.NoError(t, err)
	assert.Len(t, bills, 2)

	bill, err := c.CreateBill(ctx, model.Bill{StudentID: 2, ClassName: "Guitar for Beginners", Amount: 150})
	require.NoError(t, err)
	assert.Equal(t, "Wei Chen", bill.ParentName)
	assert.Equal(t, model.BillStatusUnpaid, bill.Status)

	amount := 175.0
	bill, err = c.UpdateBill(ctx, bill.ID, model.BillPatch{Amount: &amount})
	require.NoError(t, err)
	assert.Equal(t, amount, bill.Amount)

	got, err := c.GetBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, bill.InvoiceNumber, got.InvoiceNumber)

	_, err = c.DeleteBill(ctx, bill.ID)
	require.NoError(t, err)

	_, err = c.CreateBill(ctx, model.Bill{StudentID: 404})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestClient_Replacements(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()

	approved, err := c.ApproveReplacement(ctx, 1, "admin", "Moved to Thursday")
	require.NoError(t, err)
	assert.Equal(t, model.ReplacementStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "admin", *approved.ApprovedBy)

	_, err = c.RejectReplacement(ctx, 50, "admin", "")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestClient_Dashboard(t *testing.T) {
	c := newTestServer(t)

	d, err := c.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, d.Students)
	assert.Equal(t, 4, d.Teachers)
	assert.Equal(t, 5, d.Classes)
	assert.Equal(t, 330.0, d.Revenue)
	require.Len(t, d.UpcomingClasses, 4)
	assert.Equal(t, "Piano Fundamentals", d.UpcomingClasses[0].Title)
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).Dashboard(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, model.ErrNotFound))
}
