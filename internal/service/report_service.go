package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Freeeeeet/music_school/internal/model"
	"github.com/Freeeeeet/music_school/internal/repository"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Виды отчётов
const (
	ReportOverview   = "overview"
	ReportAttendance = "attendance"
	ReportFinancial  = "financial"
	ReportStudents   = "students"
)

// DefaultReportDays is the window used when a report is asked for without one.
const DefaultReportDays = 30

// dashboardClasses - сколько занятий показывать на главной
const dashboardClasses = 5

var ErrUnknownReport = errors.New("unknown report kind")

type Dashboard struct {
	Students        int           `json:"students"`
	Teachers        int           `json:"teachers"`
	Classes         int           `json:"classes"`
	Revenue         float64       `json:"revenue"`
	UpcomingClasses []model.Event `json:"upcoming_classes"`
}

type OverviewReport struct {
	TotalStudents  int     `json:"total_students"`
	ActiveStudents int     `json:"active_students"`
	TotalTeachers  int     `json:"total_teachers"`
	ActiveTeachers int     `json:"active_teachers"`
	TotalRevenue   float64 `json:"total_revenue"`
	AttendanceRate int     `json:"attendance_rate"`
}

type AttendanceReport struct {
	TotalSessions   int `json:"total_sessions"`
	PresentSessions int `json:"present_sessions"`
	AbsentSessions  int `json:"absent_sessions"`
	LateSessions    int `json:"late_sessions"`
	AttendanceRate  int `json:"attendance_rate"`
}

type FinancialReport struct {
	TotalInvoices   int     `json:"total_invoices"`
	PaidInvoices    int     `json:"paid_invoices"`
	UnpaidInvoices  int     `json:"unpaid_invoices"`
	OverdueInvoices int     `json:"overdue_invoices"`
	TotalRevenue    float64 `json:"total_revenue"`
	PendingRevenue  float64 `json:"pending_revenue"`
}

type StudentsReport struct {
	TotalStudents      int            `json:"total_students"`
	ActiveEnrollments  int            `json:"active_enrollments"`
	EnrollmentsByClass map[string]int `json:"enrollments_by_class"`
}

// Digest is the daily summary of overdue bills.
type Digest struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Bills       []model.Bill `json:"bills"`
	Total       float64      `json:"total"`
}

// Text renders the digest as a plain chat message.
func (d *Digest) Text() string {
	if len(d.Bills) == 0 {
		return fmt.Sprintf("Overdue bills on %s: none", d.GeneratedAt.Format(model.DateLayout))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Overdue bills on %s: %d, total %.2f\n",
		d.GeneratedAt.Format(model.DateLayout), len(d.Bills), d.Total)
	for _, bill := range d.Bills {
		fmt.Fprintf(&b, "%s %s (%s) %.2f due %s\n",
			bill.InvoiceNumber, bill.StudentName, bill.ClassName, bill.Amount, bill.DueDate)
	}
	return strings.TrimRight(b.String(), "\n")
}

// snapshot - согласованный на момент чтения срез нужных хранилищ
type snapshot struct {
	students   []model.Student
	teachers   []model.Teacher
	classes    []model.Class
	events     []model.Event
	attendance []model.Attendance
	billing    []model.Bill
}

// ReportService считает сводки по всем хранилищам
type ReportService struct {
	stores *repository.Stores
	logger *zap.Logger
	now    func() time.Time
}

func NewReportService(stores *repository.Stores, logger *zap.Logger) *ReportService {
	return &ReportService{
		stores: stores,
		logger: logger,
		now:    time.Now,
	}
}

// load читает перечисленные хранилища параллельно
func (s *ReportService) load(ctx context.Context, sets ...string) (*snapshot, error) {
	snap := &snapshot{}
	g, ctx := errgroup.WithContext(ctx)

	for _, set := range sets {
		switch set {
		case "students":
			g.Go(func() (err error) {
				snap.students, err = s.stores.Students.GetAll(ctx)
				return err
			})
		case "teachers":
			g.Go(func() (err error) {
				snap.teachers, err = s.stores.Teachers.GetAll(ctx)
				return err
			})
		case "classes":
			g.Go(func() (err error) {
				snap.classes, err = s.stores.Classes.GetAll(ctx)
				return err
			})
		case "events":
			g.Go(func() (err error) {
				snap.events, err = s.stores.Events.GetAll(ctx)
				return err
			})
		case "attendance":
			g.Go(func() (err error) {
				snap.attendance, err = s.stores.Attendance.GetAll(ctx)
				return err
			})
		case "billing":
			g.Go(func() (err error) {
				snap.billing, err = s.stores.Billing.GetAll(ctx)
				return err
			})
		default:
			return nil, fmt.Errorf("unknown store %q", set)
		}
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load report data: %w", err)
	}
	return snap, nil
}

func (s *ReportService) Dashboard(ctx context.Context) (*Dashboard, error) {
	snap, err := s.load(ctx, "students", "teachers", "classes", "events", "billing")
	if err != nil {
		return nil, err
	}

	// первые занятия в порядке добавления, без фильтра по дате
	upcoming := keep(snap.events, func(e *model.Event) bool {
		return e.Type == model.EventTypeClass
	})
	if len(upcoming) > dashboardClasses {
		upcoming = upcoming[:dashboardClasses]
	}

	return &Dashboard{
		Students:        len(snap.students),
		Teachers:        len(snap.teachers),
		Classes:         len(snap.classes),
		Revenue:         paidRevenue(snap.billing),
		UpcomingClasses: upcoming,
	}, nil
}

// Report dispatches by kind; days <= 0 falls back to DefaultReportDays.
func (s *ReportService) Report(ctx context.Context, kind string, days int) (any, error) {
	switch kind {
	case ReportOverview:
		return s.Overview(ctx, days)
	case ReportAttendance:
		return s.Attendance(ctx, days)
	case ReportFinancial:
		return s.Financial(ctx, days)
	case ReportStudents:
		return s.Students(ctx, days)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownReport, kind)
	}
}

func (s *ReportService) Overview(ctx context.Context, days int) (*OverviewReport, error) {
	snap, err := s.load(ctx, "students", "teachers", "attendance", "billing")
	if err != nil {
		return nil, err
	}
	s.cut(snap, days)
	return overviewOf(snap), nil
}

func (s *ReportService) Attendance(ctx context.Context, days int) (*AttendanceReport, error) {
	snap, err := s.load(ctx, "attendance")
	if err != nil {
		return nil, err
	}
	s.cut(snap, days)
	return attendanceOf(snap.attendance), nil
}

func (s *ReportService) Financial(ctx context.Context, days int) (*FinancialReport, error) {
	snap, err := s.load(ctx, "billing")
	if err != nil {
		return nil, err
	}
	s.cut(snap, days)
	return financialOf(snap.billing, model.DateOf(s.now())), nil
}

func (s *ReportService) Students(ctx context.Context, days int) (*StudentsReport, error) {
	snap, err := s.load(ctx, "students")
	if err != nil {
		return nil, err
	}
	return studentsOf(snap.students), nil
}

// OverdueDigest собирает неоплаченные счета с прошедшим сроком
func (s *ReportService) OverdueDigest(ctx context.Context) (*Digest, error) {
	bills, err := s.stores.Billing.GetOverdueBills(ctx)
	if err != nil {
		return nil, fmt.Errorf("overdue digest: %w", err)
	}

	digest := &Digest{GeneratedAt: s.now(), Bills: bills}
	for _, b := range bills {
		digest.Total += b.Amount
	}

	s.logger.Info("Overdue digest built",
		zap.Int("bills", len(bills)),
		zap.Float64("total", digest.Total))

	return digest, nil
}

// ExportXLSX пишет все четыре отчёта в книгу, по листу на отчёт
func (s *ReportService) ExportXLSX(ctx context.Context, days int, w io.Writer) error {
	snap, err := s.load(ctx, "students", "teachers", "attendance", "billing")
	if err != nil {
		return err
	}
	s.cut(snap, days)

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("Failed to close workbook", zap.Error(err))
		}
	}()

	overview := overviewOf(snap)
	attendance := attendanceOf(snap.attendance)
	financial := financialOf(snap.billing, model.DateOf(s.now()))
	students := studentsOf(snap.students)

	sheets := []struct {
		name string
		rows [][]any
	}{
		{"Overview", [][]any{
			{"Metric", "Value"},
			{"Total students", overview.TotalStudents},
			{"Active students", overview.ActiveStudents},
			{"Total teachers", overview.TotalTeachers},
			{"Active teachers", overview.ActiveTeachers},
			{"Total revenue", overview.TotalRevenue},
			{"Attendance rate, %", overview.AttendanceRate},
		}},
		{"Attendance", [][]any{
			{"Metric", "Value"},
			{"Total sessions", attendance.TotalSessions},
			{"Present", attendance.PresentSessions},
			{"Absent", attendance.AbsentSessions},
			{"Late", attendance.LateSessions},
			{"Attendance rate, %", attendance.AttendanceRate},
		}},
		{"Financial", [][]any{
			{"Metric", "Value"},
			{"Total invoices", financial.TotalInvoices},
			{"Paid invoices", financial.PaidInvoices},
			{"Unpaid invoices", financial.UnpaidInvoices},
			{"Overdue invoices", financial.OverdueInvoices},
			{"Total revenue", financial.TotalRevenue},
			{"Pending revenue", financial.PendingRevenue},
		}},
		{"Students", studentRows(students)},
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			return fmt.Errorf("add sheet %s: %w", sheet.name, err)
		}

		for r, row := range sheet.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetSheetRow(sheet.name, cell, &row); err != nil {
				return fmt.Errorf("write %s row %d: %w", sheet.name, r+1, err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("Report workbook exported", zap.Int("days", days))
	return nil
}

// cut отбрасывает посещаемость по дате и счета по created_at старше окна
func (s *ReportService) cut(snap *snapshot, days int) {
	if days <= 0 {
		days = DefaultReportDays
	}
	cutoff := s.now().AddDate(0, 0, -days)
	cutoffDay := model.DateOf(cutoff)

	snap.attendance = keep(snap.attendance, func(a *model.Attendance) bool {
		return !a.Date.Before(cutoffDay)
	})
	snap.billing = keep(snap.billing, func(b *model.Bill) bool {
		return !b.CreatedAt.Before(cutoff)
	})
}

func overviewOf(snap *snapshot) *OverviewReport {
	r := &OverviewReport{
		TotalStudents:  len(snap.students),
		TotalTeachers:  len(snap.teachers),
		TotalRevenue:   paidRevenue(snap.billing),
		AttendanceRate: attendanceOf(snap.attendance).AttendanceRate,
	}
	for i := range snap.students {
		if snap.students[i].IsActive() {
			r.ActiveStudents++
		}
	}
	for i := range snap.teachers {
		if snap.teachers[i].IsActive() {
			r.ActiveTeachers++
		}
	}
	return r
}

func attendanceOf(records []model.Attendance) *AttendanceReport {
	r := &AttendanceReport{TotalSessions: len(records)}
	for _, a := range records {
		switch a.Status {
		case model.AttendanceStatusPresent:
			r.PresentSessions++
		case model.AttendanceStatusAbsent:
			r.AbsentSessions++
		case model.AttendanceStatusLate:
			r.LateSessions++
		}
	}
	r.AttendanceRate = percent(r.PresentSessions, r.TotalSessions)
	return r
}

func financialOf(bills []model.Bill, today model.Date) *FinancialReport {
	r := &FinancialReport{TotalInvoices: len(bills)}
	for i := range bills {
		b := &bills[i]
		switch b.Status {
		case model.BillStatusPaid:
			r.PaidInvoices++
			r.TotalRevenue += b.Amount
		case model.BillStatusUnpaid:
			r.UnpaidInvoices++
			r.PendingRevenue += b.Amount
		}
		if b.IsOverdue(today) {
			r.OverdueInvoices++
		}
	}
	return r
}

func studentsOf(students []model.Student) *StudentsReport {
	r := &StudentsReport{
		TotalStudents:      len(students),
		EnrollmentsByClass: make(map[string]int),
	}
	for _, st := range students {
		for _, e := range st.Enrollments {
			if e.Status != model.EnrollmentStatusActive {
				continue
			}
			r.ActiveEnrollments++
			r.EnrollmentsByClass[e.ClassName]++
		}
	}
	return r
}

func studentRows(r *StudentsReport) [][]any {
	rows := [][]any{
		{"Metric", "Value"},
		{"Total students", r.TotalStudents},
		{"Active enrollments", r.ActiveEnrollments},
		{},
		{"Class", "Active enrollments"},
	}

	classes := make([]string, 0, len(r.EnrollmentsByClass))
	for name := range r.EnrollmentsByClass {
		classes = append(classes, name)
	}
	sort.Strings(classes)
	for _, name := range classes {
		rows = append(rows, []any{name, r.EnrollmentsByClass[name]})
	}
	return rows
}

func paidRevenue(bills []model.Bill) float64 {
	var total float64
	for i := range bills {
		if bills[i].IsPaid() {
			total += bills[i].Amount
		}
	}
	return total
}

// percent округляет до целого, половина вверх
func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Floor(float64(part)*100/float64(total) + 0.5))
}
