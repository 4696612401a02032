package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/music_school/internal/config"
	"github.com/Freeeeeet/music_school/internal/repository"
	"github.com/Freeeeeet/music_school/internal/repository/base"
	"github.com/Freeeeeet/music_school/internal/seed"
	"github.com/Freeeeeet/music_school/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (n *recordingNotifier) Notify(_ context.Context, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.messages = append(n.messages, text)
	return nil
}

func newReports(t *testing.T) *service.ReportService {
	t.Helper()
	ds, err := seed.EmbeddedSource{}.Load(context.Background())
	require.NoError(t, err)
	return service.NewReportService(repository.NewStores(ds, base.NoLatency()), zap.NewNop())
}

func TestScheduler_RunDigest(t *testing.T) {
	notifier := &recordingNotifier{}
	dir := filepath.Join(t.TempDir(), "exports")

	s := NewScheduler(newReports(t), notifier, dir, nil, zap.NewNop())
	require.NoError(t, s.RunDigest(context.Background()))

	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "INV-2024-002 Emma Johnson")

	files, err := filepath.Glob(filepath.Join(dir, "report-*.xlsx"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	f, err := excelize.OpenFile(files[0])
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Overview", "Attendance", "Financial", "Students"}, f.GetSheetList())
}

func TestScheduler_RunDigestWithoutExport(t *testing.T) {
	notifier := &recordingNotifier{}
	s := NewScheduler(newReports(t), notifier, "", time.UTC, zap.NewNop())

	require.NoError(t, s.RunDigest(context.Background()))
	assert.Len(t, notifier.messages, 1)
}

func TestScheduler_NotifyError(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("chat not found")}
	dir := t.TempDir()
	s := NewScheduler(newReports(t), notifier, dir, time.UTC, zap.NewNop())

	err := s.RunDigest(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send digest")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestScheduler_Start(t *testing.T) {
	s := NewScheduler(newReports(t), &recordingNotifier{}, "", time.UTC, zap.NewNop())

	assert.Error(t, s.Start("every day at nine"))

	require.NoError(t, s.Start("0 9 * * *"))
	s.Stop()
}

func TestLoadDataset(t *testing.T) {
	ctx := context.Background()

	ds, err := LoadDataset(ctx, config.SeedConfig{Source: config.SeedEmbedded}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 5, ds.Counts()[seed.SetStudents])

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "teachers.json"),
		[]byte(`{"teachers":[{"id":7,"name":"Ines Duarte","status":"active"}]}`), 0o644))

	ds, err = LoadDataset(ctx, config.SeedConfig{Source: config.SeedDir, Dir: dir}, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, ds.Teachers, 1)
	assert.Equal(t, "Ines Duarte", ds.Teachers[0].Name)
	assert.Empty(t, ds.Students)

	_, err = LoadDataset(ctx, config.SeedConfig{Source: config.SeedDir, Dir: filepath.Join(dir, "missing")}, zap.NewNop())
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"development", "production"} {
		logger, err := NewLogger(env, config.LogConfig{}, "server")
		require.NoError(t, err)
		logger.Info("logger ready")
	}

	logger, err := NewLogger("development", config.LogConfig{}, "server")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))

	logger, err = NewLogger("production", config.LogConfig{}, "server")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))

	logger, err = NewLogger("development", config.LogConfig{Level: "warn"}, "server")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))

	_, err = NewLogger("development", config.LogConfig{Level: "loud"}, "server")
	assert.Error(t, err)
}

func TestNewLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")

	logger, err := NewLogger("production", config.LogConfig{Output: path}, "seedctl")
	require.NoError(t, err)
	logger.Named("import").Info("seed imported")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := string(data)
	assert.Contains(t, line, `"logger":"seedctl.import"`)
	assert.Contains(t, line, `"service":"music_school"`)
	assert.Contains(t, line, `"env":"production"`)
	assert.Contains(t, line, "seed imported")
}

func TestNewLogger_PlainLevelInFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dev.log")

	logger, err := NewLogger("development", config.LogConfig{Output: path}, "server")
	require.NoError(t, err)
	logger.Info("plain")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "INFO")
	assert.NotContains(t, string(data), "\x1b[")
}
