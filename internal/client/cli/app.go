package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/docverifier/internal/client/client"
	"github.com/dmitrijs2005/docverifier/internal/client/config"
	"github.com/dmitrijs2005/docverifier/internal/client/repositories/cache"
	"github.com/dmitrijs2005/docverifier/internal/client/repositories/journal"
	"github.com/dmitrijs2005/docverifier/internal/client/services"
	"github.com/dmitrijs2005/docverifier/internal/client/syncer"
	"github.com/dmitrijs2005/docverifier/internal/client/verification"
	"github.com/dmitrijs2005/docverifier/internal/logging"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config   *config.Config
	db       *sql.DB
	docs     services.DocumentRepository
	verifier *verification.Orchestrator
	history  services.HistoryService
	offline  services.OfflineService
	lock     services.LockService
	stats    services.StatsService
	export   services.ExportService
	watcher  *syncer.Watcher
	syncer   *syncer.Syncer
	logger   logging.Logger

	in    lineSource
	out   io.Writer
	color bool
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	api, err := client.New(c, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	journalRepo := journal.NewSQLiteRepository(db)
	docs := services.NewDocumentRepository(api, logger)
	history := services.NewHistoryService(journalRepo, logger)
	offline := services.NewOfflineService(cache.NewSQLiteRepository(db), nil, logger)
	stats := services.NewStatsService(journalRepo, nil, logger)

	return &App{
		config:   c,
		db:       db,
		docs:     docs,
		verifier: verification.New(docs, history, offline, logger),
		history:  history,
		offline:  offline,
		lock:     services.NewLockService(db, logger),
		stats:    stats,
		export:   services.NewExportService(history, stats, nil, logger),
		watcher:  syncer.NewWatcher(api, c.OnlineCheckInterval, logger),
		syncer:   syncer.New(docs, history, offline, nil, logger),
		logger:   logger.With("module", "cli"),
		in:       newLineReader(os.Stdin),
		out:      os.Stdout,
		color:    isTerminal(int(os.Stdout.Fd())),
	}, nil
}

// Run prunes the offline cache, then runs the REPL and the connectivity
// watcher until the user exits or ctx is done. Every offline to online
// transition triggers a sync pass.
func (a *App) Run(ctx context.Context) error {
	if a.db != nil {
		defer a.db.Close()
	}

	a.syncer.ClearOld(ctx, a.config.CacheRetentionDays)
	a.watcher.OnOnline(func(ctx context.Context) {
		if _, err := a.syncer.Sync(ctx); err != nil {
			a.logger.Warn(ctx, "background sync failed", "error", err)
		}
	})

	g, gctx := errgroup.WithContext(ctx)
	wctx, stopWatcher := context.WithCancel(gctx)

	g.Go(func() error {
		return a.watcher.Run(wctx)
	})
	g.Go(func() error {
		defer stopWatcher()
		fmt.Fprintln(a.out, "Document verifier (type 'help' for commands)")
		runREPL(gctx, a, a.getStatus, a.in, a.out)
		return nil
	})

	return g.Wait()
}

func (a *App) getStatus() string {
	s := string(a.watcher.Mode())
	if n := a.offline.CacheStats(context.Background()).PendingVerifications; n > 0 {
		s = fmt.Sprintf("%s, %d queued", s, n)
	}
	return fmt.Sprintf("(%s)", s)
}
