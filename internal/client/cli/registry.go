package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/docverifier/internal/client/syncer"
)

func (a *App) Types(ctx context.Context, _ []string) error {
	types := a.docs.DocumentTypes(ctx)
	if len(types) == 0 {
		fmt.Fprintln(a.out, "No document types available")
		return nil
	}
	for _, t := range types {
		fmt.Fprintln(a.out, " -", t)
	}
	return nil
}

func (a *App) Templates(ctx context.Context, _ []string) error {
	tpls := a.docs.Templates(ctx)
	if len(tpls) == 0 {
		fmt.Fprintln(a.out, "No verification templates available")
		return nil
	}
	for _, t := range tpls {
		fmt.Fprintf(a.out, " - %s (%s): %s\n", t.Name, t.ID, strings.Join(t.Checks, ", "))
	}
	return nil
}

func (a *App) Cache(ctx context.Context, args []string) error {
	if len(args) == 0 {
		st := a.offline.CacheStats(ctx)
		fmt.Fprintf(a.out, "Cached documents: %d\nQueued verifications: %d\n", st.CachedDocuments, st.PendingVerifications)
		return nil
	}

	switch args[0] {
	case "pending":
		list := a.offline.GetPendingVerifications(ctx)
		if len(list) == 0 {
			fmt.Fprintln(a.out, "Nothing queued")
			return nil
		}
		for _, p := range list {
			fmt.Fprintf(a.out, " - %s queued %s\n", p.DocumentID, formatTime(p.CreatedAt))
		}

	case "clear":
		days := a.config.CacheRetentionDays
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 0 {
				return fmt.Errorf("%w: cache clear [days]", errUsage)
			}
			days = n
		}
		a.offline.ClearOldCache(ctx, days)
		fmt.Fprintf(a.out, "Removed cache entries older than %d days\n", days)

	default:
		return fmt.Errorf("%w: cache [pending|clear [days]]", errUsage)
	}
	return nil
}

func (a *App) Status(ctx context.Context, _ []string) error {
	st := a.offline.CacheStats(ctx)
	fmt.Fprintf(a.out, "Registry:     %s (%s)\n", a.config.APIBaseURL, a.config.Backend)
	fmt.Fprintf(a.out, "Mode:         %s\n", a.watcher.Mode())
	fmt.Fprintf(a.out, "Verification: %s\n", a.verifier.State())
	fmt.Fprintf(a.out, "Cache:        %d documents, %d queued\n", st.CachedDocuments, st.PendingVerifications)
	return nil
}

func (a *App) Sync(ctx context.Context, _ []string) error {
	rep, err := a.syncer.Sync(ctx)
	switch {
	case errors.Is(err, syncer.ErrSyncRunning):
		fmt.Fprintln(a.out, "Sync is already running")
		return nil
	case err != nil:
		fmt.Fprintf(a.out, "Sync stopped after %d documents, %d still queued\n", rep.Synced, rep.Remaining)
		return err
	case rep.Pending == 0:
		fmt.Fprintln(a.out, "Nothing to sync")
	default:
		fmt.Fprintf(a.out, "Synced %d documents\n", rep.Synced)
		if rep.Dropped > 0 {
			fmt.Fprintf(a.out, "Dropped %d documents the registry could not answer\n", rep.Dropped)
		}
	}
	return nil
}
