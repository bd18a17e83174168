package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docverifier/internal/client/client"
	"github.com/dmitrijs2005/docverifier/internal/client/models"
	"github.com/dmitrijs2005/docverifier/internal/client/verification"
)

var errUsage = errors.New("wrong arguments, type 'help' for usage")

func (a *App) Verify(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: verify <id> [pin]", errUsage)
	}
	pin := ""
	if len(args) == 2 {
		pin = args[1]
	}

	ch, err := a.verifier.Verify(ctx, args[0], pin)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Verifying...")
	var res verification.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		a.verifier.Cancel()
		res = <-ch
	}

	a.renderResult(res)
	return nil
}

func (a *App) renderResult(res verification.Result) {
	if res.Document == nil {
		fmt.Fprintln(a.out, badge(models.StatusInvalid, a.color))
		fmt.Fprintln(a.out, "  Message: "+res.Message)
		return
	}

	renderDocument(a.out, res.Document, a.color)
	if res.RecordID > 0 {
		fmt.Fprintf(a.out, "Saved to history as #%d\n", res.RecordID)
	}
	if res.Err == nil {
		return
	}

	if res.Cached != nil {
		renderCached(a.out, res.Cached, a.color)
	}
	if client.CategoryOf(res.Err) != client.Canceled {
		fmt.Fprintln(a.out, "The lookup is queued and will be repeated when the registry is reachable.")
	}
}

// Fetch reads a document without recording the lookup.
func (a *App) Fetch(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: fetch <id>", errUsage)
	}

	doc, err := a.docs.FetchDocument(ctx, args[0])
	renderDocument(a.out, doc, a.color)
	if err != nil {
		if cd := a.offline.GetCachedDocument(ctx, doc.DocumentID); cd != nil {
			renderCached(a.out, cd, a.color)
		}
	}
	return nil
}
