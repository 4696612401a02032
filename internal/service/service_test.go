package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Freeeeeet/music_school/internal/model"
	"github.com/Freeeeeet/music_school/internal/repository"
	"github.com/Freeeeeet/music_school/internal/repository/base"
	"github.com/Freeeeeet/music_school/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStores(t *testing.T) *repository.Stores {
	t.Helper()
	ds, err := seed.EmbeddedSource{}.Load(context.Background())
	require.NoError(t, err)
	return repository.NewStores(ds, base.NoLatency())
}

func requireNotFound(t *testing.T, err error, entity string) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)

	var nf *model.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, entity, nf.Entity)
}

func ptr[T any](v T) *T { return &v }

func TestRosterService_CreateClassValidatesTeacher(t *testing.T) {
	stores := newTestStores(t)
	svc := NewRosterService(stores.Students, stores.Teachers, stores.Classes, zap.NewNop())
	ctx := context.Background()

	_, err := svc.CreateClass(ctx, model.Class{Name: "Cello Basics", TeacherID: 99})
	requireNotFound(t, err, model.EntityTeacher)

	all, err := svc.ListClasses(ctx, ClassFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 5, "failed create must not insert")

	class, err := svc.CreateClass(ctx, model.Class{Name: "Bass Groove", TeacherID: 2, TeacherName: "  "})
	require.NoError(t, err)
	assert.Equal(t, "Marcus Rivera", class.TeacherName)
	assert.Equal(t, int64(6), class.ID)

	class, err = svc.CreateClass(ctx, model.Class{Name: "Ear Training", TeacherID: 1, TeacherName: "Elena P."})
	require.NoError(t, err)
	assert.Equal(t, "Elena P.", class.TeacherName)
}

func TestRosterService_UpdateClassTeacher(t *testing.T) {
	stores := newTestStores(t)
	svc := NewRosterService(stores.Students, stores.Teachers, stores.Classes, zap.NewNop())
	ctx := context.Background()

	_, err := svc.UpdateClass(ctx, 1, model.ClassPatch{TeacherID: ptr(int64(42))})
	requireNotFound(t, err, model.EntityTeacher)

	class, err := svc.UpdateClass(ctx, 1, model.ClassPatch{TeacherID: ptr(int64(3))})
	require.NoError(t, err)
	assert.Equal(t, int64(3), class.TeacherID)
	assert.Equal(t, "Yuki Tanaka", class.TeacherName)

	_, err = svc.UpdateClass(ctx, 77, model.ClassPatch{Name: ptr("x")})
	requireNotFound(t, err, model.EntityClass)
}

func TestRosterService_DeleteTeacherKeepsClasses(t *testing.T) {
	stores := newTestStores(t)
	svc := NewRosterService(stores.Students, stores.Teachers, stores.Classes, zap.NewNop())
	ctx := context.Background()

	_, err := svc.DeleteTeacher(ctx, 1)
	require.NoError(t, err)

	classes, err := svc.ListClasses(ctx, ClassFilter{TeacherID: 1})
	require.NoError(t, err)
	assert.Len(t, classes, 2)

	_, err = svc.CreateClass(ctx, model.Class{Name: "Piano II", TeacherID: 1})
	requireNotFound(t, err, model.EntityTeacher)
}

func TestRosterService_ListFilters(t *testing.T) {
	stores := newTestStores(t)
	svc := NewRosterService(stores.Students, stores.Teachers, stores.Classes, zap.NewNop())
	ctx := context.Background()

	t.Run("students search and status", func(t *testing.T) {
		students, err := svc.ListStudents(ctx, StudentFilter{Query: "johnson", Status: model.EnrollmentStatusActive})
		require.NoError(t, err)
		require.Len(t, students, 1)
		assert.Equal(t, "Emma Johnson", students[0].Name)

		students, err = svc.ListStudents(ctx, StudentFilter{Query: "williams", Status: model.EnrollmentStatusActive})
		require.NoError(t, err)
		assert.Empty(t, students)

		students, err = svc.ListStudents(ctx, StudentFilter{Status: model.EnrollmentStatusInactive})
		require.NoError(t, err)
		assert.Len(t, students, 2)
	})

	t.Run("teachers search and specialization", func(t *testing.T) {
		teachers, err := svc.ListTeachers(ctx, TeacherFilter{Query: "melodyschool", Specialization: "Guitar"})
		require.NoError(t, err)
		require.Len(t, teachers, 1)
		assert.Equal(t, "Marcus Rivera", teachers[0].Name)
	})

	t.Run("classes teacher and level", func(t *testing.T) {
		classes, err := svc.ListClasses(ctx, ClassFilter{TeacherID: 1, Level: "BEGINNER"})
		require.NoError(t, err)
		assert.Len(t, classes, 2)

		classes, err = svc.ListClasses(ctx, ClassFilter{Query: "piano", TeacherID: 2})
		require.NoError(t, err)
		assert.Empty(t, classes)
	})
}

func TestBillingService_CreateResolvesStudent(t *testing.T) {
	stores := newTestStores(t)
	svc := NewBillingService(stores.Billing, stores.Students, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Create(ctx, model.Bill{StudentID: 99, Amount: 100})
	requireNotFound(t, err, model.EntityStudent)

	bill, err := svc.Create(ctx, model.Bill{StudentID: 3, ClassName: "Violin Intermediate", Amount: 220})
	require.NoError(t, err)
	assert.Equal(t, "Sophia Martinez", bill.StudentName)
	assert.Equal(t, "Ana Martinez", bill.ParentName)
	assert.Equal(t, model.BillStatusUnpaid, bill.Status)

	// без student_id счёт принимается как есть
	bill, err = svc.Create(ctx, model.Bill{StudentName: "Walk-in", Amount: 40})
	require.NoError(t, err)
	assert.Equal(t, "Walk-in", bill.StudentName)
	assert.Empty(t, bill.ParentName)
}

func TestBillingService_ListAndPay(t *testing.T) {
	stores := newTestStores(t)
	svc := NewBillingService(stores.Billing, stores.Students, zap.NewNop())
	ctx := context.Background()

	bills, err := svc.List(ctx, BillFilter{StudentID: 1, Status: model.BillStatusUnpaid})
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, int64(2), bills[0].ID)

	paid, err := svc.MarkPaid(ctx, 2, "Cash")
	require.NoError(t, err)
	assert.True(t, paid.IsPaid())
	assert.Equal(t, "Cash", paid.PaymentMethod)

	overdue, err := svc.Overdue(ctx)
	require.NoError(t, err)
	assert.Empty(t, overdue)

	_, err = svc.MarkPaid(ctx, 404, "Cash")
	requireNotFound(t, err, model.EntityBill)
}

func TestBillingService_UpdateStudentFillsNames(t *testing.T) {
	stores := newTestStores(t)
	svc := NewBillingService(stores.Billing, stores.Students, zap.NewNop())
	ctx := context.Background()

	bill, err := svc.Update(ctx, 5, model.BillPatch{StudentID: ptr(int64(2))})
	require.NoError(t, err)
	assert.Equal(t, "Liam Chen", bill.StudentName)
	assert.Equal(t, "Wei Chen", bill.ParentName)

	_, err = svc.Update(ctx, 5, model.BillPatch{StudentID: ptr(int64(50))})
	requireNotFound(t, err, model.EntityStudent)
}

func TestAttendanceService_Mark(t *testing.T) {
	stores := newTestStores(t)
	svc := NewAttendanceService(stores.Attendance, stores.Students, stores.Classes, zap.NewNop())
	ctx := context.Background()

	record, err := svc.Mark(ctx, MarkRequest{EnrollmentID: 12, StudentID: 2, ClassID: 2, Status: model.AttendanceStatusPresent})
	require.NoError(t, err)
	assert.Equal(t, int64(9), record.ID)
	assert.Equal(t, "Liam Chen", record.StudentName)
	assert.Equal(t, "Guitar for Beginners", record.ClassName)
	assert.Equal(t, "Marcus Rivera", record.TeacherName)
	assert.Equal(t, model.Today(), record.Date)
	assert.NotNil(t, record.CheckedInAt)

	_, err = svc.Mark(ctx, MarkRequest{StudentID: 2, ClassID: 42, Status: model.AttendanceStatusPresent})
	requireNotFound(t, err, model.EntityClass)

	_, err = svc.Mark(ctx, MarkRequest{StudentID: 42, ClassID: 2, Status: model.AttendanceStatusPresent})
	requireNotFound(t, err, model.EntityStudent)
}

func TestAttendanceService_ListFilters(t *testing.T) {
	stores := newTestStores(t)
	svc := NewAttendanceService(stores.Attendance, stores.Students, stores.Classes, zap.NewNop())
	ctx := context.Background()

	records, err := svc.List(ctx, AttendanceFilter{StudentID: 1, From: model.NewDate(2024, 3, 12)})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(2), records[0].ID)
	assert.Equal(t, int64(6), records[1].ID)

	records, err = svc.List(ctx, AttendanceFilter{ClassID: 4})
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = svc.List(ctx, AttendanceFilter{From: model.NewDate(2024, 3, 18), To: model.NewDate(2024, 3, 19)})
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestScheduleService_Replacements(t *testing.T) {
	stores := newTestStores(t)
	svc := NewScheduleService(stores.Events, stores.Replacements, stores.Students, stores.Classes, zap.NewNop())
	ctx := context.Background()

	_, err := svc.CreateReplacement(ctx, model.Replacement{Reason: "no student"})
	requireNotFound(t, err, model.EntityStudent)

	_, err = svc.CreateReplacement(ctx, model.Replacement{StudentID: 1, ClassID: 99})
	requireNotFound(t, err, model.EntityClass)

	request, err := svc.CreateReplacement(ctx, model.Replacement{
		StudentID:     1,
		ClassID:       3,
		OriginalDate:  model.NewDate(2024, 3, 23),
		RequestedDate: model.NewDate(2024, 3, 30),
		Reason:        "Exam",
	})
	require.NoError(t, err)
	assert.Equal(t, "Emma Johnson", request.StudentName)
	assert.Equal(t, "Violin Intermediate", request.ClassName)
	assert.True(t, request.IsPending())

	approved, err := svc.ApproveReplacement(ctx, request.ID, Decision{ApprovedBy: "admin", Notes: "ok"})
	require.NoError(t, err)
	assert.Equal(t, model.ReplacementStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "admin", *approved.ApprovedBy)

	pending, err := svc.ListReplacements(ctx, ReplacementFilter{StudentID: 2, Status: model.ReplacementStatusPending})
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	none, err := svc.ListReplacements(ctx, ReplacementFilter{StudentID: 2, Status: model.ReplacementStatusApproved})
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = svc.RejectReplacement(ctx, 404, Decision{ApprovedBy: "admin"})
	requireNotFound(t, err, model.EntityReplacement)
}

func TestScheduleService_ListEvents(t *testing.T) {
	stores := newTestStores(t)
	svc := NewScheduleService(stores.Events, stores.Replacements, stores.Students, stores.Classes, zap.NewNop())
	ctx := context.Background()

	events, err := svc.ListEvents(ctx, EventFilter{
		Type: model.EventTypeClass,
		From: model.NewDate(2024, 3, 18),
		To:   model.NewDate(2024, 3, 23),
	})
	require.NoError(t, err)
	assert.Len(t, events, 3)

	events, err = svc.ListEvents(ctx, EventFilter{Date: model.NewDate(2024, 3, 20)})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Trial lesson: Cello", events[0].Title)
}

func TestService_CancelledContext(t *testing.T) {
	stores := newTestStores(t)
	roster := NewRosterService(stores.Students, stores.Teachers, stores.Classes, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := roster.CreateClass(ctx, model.Class{Name: "Late", TeacherID: 1})
	assert.ErrorIs(t, err, context.Canceled)

	all, err := roster.ListClasses(context.Background(), ClassFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 5)
}
