package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/music_school/internal/model"
	"github.com/Freeeeeet/music_school/internal/repository"
	"go.uber.org/zap"
)

// EventFilter: Date задаёт точный день, From/To диапазон включительно
type EventFilter struct {
	Date model.Date
	Type string
	From model.Date
	To   model.Date
}

func (f EventFilter) match(e *model.Event) bool {
	if !f.Date.IsZero() && !e.Date.Equal(f.Date) {
		return false
	}
	if f.Type != "" && e.Type != f.Type {
		return false
	}
	if !f.From.IsZero() && e.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && e.Date.After(f.To) {
		return false
	}
	return true
}

type ReplacementFilter struct {
	Status    string
	StudentID int64
}

// Decision is the body of an approve/reject call.
type Decision struct {
	ApprovedBy string `json:"approved_by"`
	Notes      string `json:"notes"`
}

// ScheduleService ведёт календарь событий и заявки на замену занятий
type ScheduleService struct {
	events       *repository.EventRepository
	replacements *repository.ReplacementRepository
	students     *repository.StudentRepository
	classes      *repository.ClassRepository
	logger       *zap.Logger
}

func NewScheduleService(
	events *repository.EventRepository,
	replacements *repository.ReplacementRepository,
	students *repository.StudentRepository,
	classes *repository.ClassRepository,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		events:       events,
		replacements: replacements,
		students:     students,
		classes:      classes,
		logger:       logger,
	}
}

func (s *ScheduleService) ListEvents(ctx context.Context, f EventFilter) ([]model.Event, error) {
	var (
		events []model.Event
		err    error
	)
	switch {
	case !f.Date.IsZero():
		events, err = s.events.GetByDate(ctx, f.Date)
	case !f.From.IsZero() && !f.To.IsZero():
		events, err = s.events.GetByDateRange(ctx, f.From, f.To)
	case f.Type != "":
		events, err = s.events.GetByType(ctx, f.Type)
	default:
		events, err = s.events.GetAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return keep(events, f.match), nil
}

func (s *ScheduleService) GetEvent(ctx context.Context, id int64) (*model.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *ScheduleService) CreateEvent(ctx context.Context, fields model.Event) (*model.Event, error) {
	event, err := s.events.Create(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.logger.Info("Event scheduled",
		zap.Int64("event_id", event.ID),
		zap.String("title", event.Title),
		zap.String("date", event.Date.String()))

	return event, nil
}

func (s *ScheduleService) UpdateEvent(ctx context.Context, id int64, patch model.EventPatch) (*model.Event, error) {
	event, err := s.events.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	s.logger.Info("Event updated", zap.Int64("event_id", id))
	return event, nil
}

func (s *ScheduleService) DeleteEvent(ctx context.Context, id int64) (*model.Event, error) {
	event, err := s.events.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete event: %w", err)
	}

	s.logger.Info("Event deleted", zap.Int64("event_id", id))
	return event, nil
}

func (s *ScheduleService) ListReplacements(ctx context.Context, f ReplacementFilter) ([]model.Replacement, error) {
	var (
		requests []model.Replacement
		err      error
	)
	switch {
	case f.StudentID != 0:
		requests, err = s.replacements.GetByStudent(ctx, f.StudentID)
	case f.Status != "":
		requests, err = s.replacements.GetByStatus(ctx, f.Status)
	default:
		requests, err = s.replacements.GetAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list replacements: %w", err)
	}

	if f.StudentID != 0 && f.Status != "" {
		requests = keep(requests, func(r *model.Replacement) bool { return r.Status == f.Status })
	}
	return requests, nil
}

func (s *ScheduleService) GetReplacement(ctx context.Context, id int64) (*model.Replacement, error) {
	request, err := s.replacements.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get replacement: %w", err)
	}
	return request, nil
}

// CreateReplacement: студент обязателен, класс проверяется только если указан
func (s *ScheduleService) CreateReplacement(ctx context.Context, fields model.Replacement) (*model.Replacement, error) {
	student, err := s.students.Lookup(ctx, fields.StudentID)
	if err != nil {
		return nil, fmt.Errorf("create replacement: %w", err)
	}
	if fields.StudentName == "" {
		fields.StudentName = student.Name
	}

	if fields.ClassID != 0 {
		class, err := s.classes.Lookup(ctx, fields.ClassID)
		if err != nil {
			return nil, fmt.Errorf("create replacement: %w", err)
		}
		if fields.ClassName == "" {
			fields.ClassName = class.Name
		}
	}

	request, err := s.replacements.Create(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("create replacement: %w", err)
	}

	s.logger.Info("Replacement requested",
		zap.Int64("replacement_id", request.ID),
		zap.Int64("student_id", request.StudentID),
		zap.String("requested_date", request.RequestedDate.String()))

	return request, nil
}

func (s *ScheduleService) UpdateReplacement(ctx context.Context, id int64, patch model.ReplacementPatch) (*model.Replacement, error) {
	if patch.StudentID != nil {
		student, err := s.students.Lookup(ctx, *patch.StudentID)
		if err != nil {
			return nil, fmt.Errorf("update replacement: %w", err)
		}
		if patch.StudentName == nil {
			patch.StudentName = &student.Name
		}
	}
	if patch.ClassID != nil && *patch.ClassID != 0 {
		class, err := s.classes.Lookup(ctx, *patch.ClassID)
		if err != nil {
			return nil, fmt.Errorf("update replacement: %w", err)
		}
		if patch.ClassName == nil {
			patch.ClassName = &class.Name
		}
	}

	request, err := s.replacements.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update replacement: %w", err)
	}

	s.logger.Info("Replacement updated", zap.Int64("replacement_id", id))
	return request, nil
}

func (s *ScheduleService) DeleteReplacement(ctx context.Context, id int64) (*model.Replacement, error) {
	request, err := s.replacements.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete replacement: %w", err)
	}

	s.logger.Info("Replacement deleted", zap.Int64("replacement_id", id))
	return request, nil
}

func (s *ScheduleService) ApproveReplacement(ctx context.Context, id int64, d Decision) (*model.Replacement, error) {
	request, err := s.replacements.Approve(ctx, id, d.ApprovedBy, d.Notes)
	if err != nil {
		return nil, fmt.Errorf("approve replacement: %w", err)
	}

	s.logger.Info("Replacement approved",
		zap.Int64("replacement_id", id),
		zap.String("approved_by", d.ApprovedBy))

	return request, nil
}

func (s *ScheduleService) RejectReplacement(ctx context.Context, id int64, d Decision) (*model.Replacement, error) {
	request, err := s.replacements.Reject(ctx, id, d.ApprovedBy, d.Notes)
	if err != nil {
		return nil, fmt.Errorf("reject replacement: %w", err)
	}

	s.logger.Info("Replacement rejected",
		zap.Int64("replacement_id", id),
		zap.String("approved_by", d.ApprovedBy))

	return request, nil
}
