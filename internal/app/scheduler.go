package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Freeeeeet/music_school/internal/notify"
	"github.com/Freeeeeet/music_school/internal/service"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// digestTimeout ограничивает одну задачу дайджеста
const digestTimeout = 2 * time.Minute

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	cron      *cron.Cron
	reports   *service.ReportService
	notifier  notify.Notifier
	exportDir string
	days      int
	logger    *zap.Logger
}

// NewScheduler создаёт планировщик; exportDir пустой - выгрузка xlsx отключена
func NewScheduler(reports *service.ReportService, notifier notify.Notifier, exportDir string, loc *time.Location, logger *zap.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		reports:   reports,
		notifier:  notifier,
		exportDir: exportDir,
		days:      service.DefaultReportDays,
		logger:    logger,
	}
}

// Start регистрирует дайджест по cron-выражению и запускает планировщик
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.runScheduled); err != nil {
		return fmt.Errorf("schedule digest %q: %w", spec, err)
	}

	s.logger.Info("Starting background scheduler", zap.String("spec", spec))
	s.cron.Start()
	return nil
}

// Stop останавливает планировщик и ждёт завершения текущей задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), digestTimeout)
	defer cancel()

	if err := s.RunDigest(ctx); err != nil {
		s.logger.Error("Digest task failed", zap.Error(err))
	}
}

// RunDigest строит дайджест просроченных счетов, отправляет его и, если
// задан каталог, сохраняет xlsx-отчёт
func (s *Scheduler) RunDigest(ctx context.Context) error {
	digest, err := s.reports.OverdueDigest(ctx)
	if err != nil {
		return err
	}

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, digest.Text()); err != nil {
			return fmt.Errorf("send digest: %w", err)
		}
	}

	if s.exportDir == "" {
		return nil
	}

	path, err := s.export(ctx, digest.GeneratedAt)
	if err != nil {
		return err
	}

	s.logger.Info("Report exported", zap.String("path", path))
	return nil
}

func (s *Scheduler) export(ctx context.Context, at time.Time) (string, error) {
	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(s.exportDir, fmt.Sprintf("report-%s.xlsx", at.Format("2006-01-02")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if err := s.reports.ExportXLSX(ctx, s.days, f); err != nil {
		return "", err
	}
	return path, nil
}
