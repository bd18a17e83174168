package services

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/docverifier/internal/client/models"
	"github.com/dmitrijs2005/docverifier/internal/filex"
	"github.com/dmitrijs2005/docverifier/internal/logging"
)

const (
	ExportDirName = "exports"
	exportLimit   = 100000
)

// Report is the exported history.
type Report struct {
	GeneratedAt   time.Time                    `json:"generated_at"`
	Statistics    Statistics                   `json:"statistics"`
	Verifications []*models.VerificationRecord `json:"verifications"`
}

type ExportService interface {
	// ExportHistory writes a JSON report under <dir>/exports and returns
	// the file path.
	ExportHistory(ctx context.Context, dir string) (string, error)
}

type exportService struct {
	history HistoryService
	stats   StatsService
	now     Clock
	logger  logging.Logger
}

func NewExportService(history HistoryService, stats StatsService, now Clock, logger logging.Logger) ExportService {
	if now == nil {
		now = time.Now
	}
	return &exportService{history: history, stats: stats, now: now, logger: logger.With("module", "export")}
}

func (s *exportService) ExportHistory(ctx context.Context, dir string) (string, error) {
	outDir, err := filex.EnsureSubDir(dir, ExportDirName)
	if err != nil {
		return "", err
	}

	at := s.now().UTC()
	report := Report{
		GeneratedAt:   at,
		Statistics:    s.stats.Statistics(ctx),
		Verifications: s.history.List(ctx, exportLimit),
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	path := filepath.Join(outDir, "verifications-"+at.Format("20060102-150405")+".json")
	if err := filex.WriteFileAtomic(path, data); err != nil {
		return "", err
	}

	s.logger.Info(ctx, "history exported", "path", path, "records", len(report.Verifications))
	return path, nil
}
