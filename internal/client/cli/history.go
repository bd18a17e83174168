package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/docverifier/internal/client/models"
	"github.com/dmitrijs2005/docverifier/internal/client/services"
)

func (a *App) History(ctx context.Context, args []string) error {
	limit := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: history [limit]", errUsage)
		}
		limit = n
	}
	if err := a.unlock(ctx, "view history"); err != nil {
		return err
	}

	list := a.history.List(ctx, limit)
	if len(list) == 0 {
		fmt.Fprintln(a.out, "History is empty")
		return nil
	}
	renderRecords(a.out, list, a.color)
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := recordID(args, "show <record-id>")
	if err != nil {
		return err
	}
	if err := a.unlock(ctx, "view history"); err != nil {
		return err
	}

	rec := a.history.Get(ctx, id)
	if rec == nil {
		fmt.Fprintf(a.out, "Record #%d not found\n", id)
		return nil
	}

	fmt.Fprintf(a.out, "Record #%d, verified %s\n", rec.ID, formatTime(rec.Timestamp))
	doc := rec.Snapshot()
	if doc == nil {
		doc = &models.Document{
			DocumentID:   rec.DocumentID,
			Status:       rec.Status,
			DocumentType: rec.DocumentType,
			Issuer:       rec.Issuer,
		}
	}
	renderDocument(a.out, doc, a.color)
	return nil
}

func (a *App) Search(ctx context.Context, args []string) error {
	query := strings.Join(args, " ")
	if utf8.RuneCountInString(query) < services.MinSearchQueryLength {
		return fmt.Errorf("%w: search <query>, at least %d characters", errUsage, services.MinSearchQueryLength)
	}
	if err := a.unlock(ctx, "search history"); err != nil {
		return err
	}

	list := a.stats.Search(ctx, query)
	if len(list) == 0 {
		fmt.Fprintln(a.out, "Nothing found")
		return nil
	}
	renderRecords(a.out, list, a.color)
	return nil
}

func (a *App) Stats(ctx context.Context, _ []string) error {
	if err := a.unlock(ctx, "view statistics"); err != nil {
		return err
	}
	renderStats(a.out, a.stats.Statistics(ctx), a.color)
	return nil
}

func (a *App) Export(ctx context.Context, _ []string) error {
	if err := a.unlock(ctx, "export history"); err != nil {
		return err
	}
	path, err := a.export.ExportHistory(ctx, a.config.DataDir)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "History exported to", path)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := recordID(args, "delete <record-id>")
	if err != nil {
		return err
	}
	if err := a.unlock(ctx, "delete from history"); err != nil {
		return err
	}

	if a.history.Delete(ctx, id) {
		fmt.Fprintf(a.out, "Record #%d deleted\n", id)
	} else {
		fmt.Fprintf(a.out, "Record #%d not found\n", id)
	}
	return nil
}

func (a *App) Clear(ctx context.Context, _ []string) error {
	if err := a.unlock(ctx, "clear history"); err != nil {
		return err
	}

	answer, err := GetSimpleText(ctx, a.in, "Type 'yes' to delete the whole history", a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if !a.history.Clear(ctx) {
		return fmt.Errorf("history could not be cleared")
	}
	fmt.Fprintln(a.out, "History cleared")
	return nil
}

func recordID(args []string, usage string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: %s", errUsage, usage)
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(args[0], "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s", errUsage, usage)
	}
	return id, nil
}
