package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/docverifier/internal/client/models"
	"github.com/dmitrijs2005/docverifier/internal/client/services"
)

const timeLayout = "2006-01-02 15:04:05"

var ansiColors = map[models.Color]string{
	models.ColorGreen:  "\033[32m",
	models.ColorYellow: "\033[33m",
	models.ColorRed:    "\033[31m",
	models.ColorGray:   "\033[90m",
}

const ansiReset = "\033[0m"

// badge renders a status as "[COLOR] label", colored on terminals.
func badge(s models.Status, color bool) string {
	tag := "[" + strings.ToUpper(string(s.Color())) + "]"
	if color {
		tag = ansiColors[s.Color()] + tag + ansiReset
	}
	return tag + " " + s.Label()
}

func renderDocument(w io.Writer, doc *models.Document, color bool) {
	fmt.Fprintln(w, badge(doc.Status, color))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row := func(k, v string) {
		if v != "" {
			fmt.Fprintf(tw, "  %s:\t%s\n", k, v)
		}
	}
	row("Document", doc.DocumentID)
	row("Type", doc.DocumentType)
	row("Issuer", doc.Issuer)
	if doc.IssueDate != nil {
		row("Issued", doc.IssueDate.String())
	}
	if doc.ExpiryDate != nil {
		row("Expires", doc.ExpiryDate.String())
	}
	row("Message", doc.ErrorMessage())

	for _, k := range slices.Sorted(maps.Keys(doc.Metadata)) {
		if k == models.MetadataErrorKey {
			continue
		}
		row(k, fmt.Sprint(doc.Metadata[k]))
	}
	tw.Flush()
}

func renderRecords(w io.Writer, list []*models.VerificationRecord, color bool) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tDOCUMENT\tSTATUS\tTYPE")
	for _, r := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			r.ID, formatTime(r.Timestamp), r.DocumentID, badge(r.Status, color), r.DocumentType)
	}
	tw.Flush()
}

func renderStats(w io.Writer, st services.Statistics, color bool) {
	fmt.Fprintf(w, "Total verifications: %d\n", st.Total)
	for _, s := range []models.Status{models.StatusValid, models.StatusWarning, models.StatusInvalid} {
		fmt.Fprintf(w, "  %s: %d\n", badge(s, color), st.ByStatus[s])
	}
	if st.LastVerification != nil {
		fmt.Fprintf(w, "Last verification: %s\n", formatTime(*st.LastVerification))
	}

	fmt.Fprintf(w, "Last %d days:\n", len(st.Daily))
	for _, d := range st.Daily {
		fmt.Fprintf(w, "  %s %4d %s\n", d.Day, d.Count, strings.Repeat("#", min(d.Count, 40)))
	}
}

func renderCached(w io.Writer, cd *models.CachedDocument, color bool) {
	fmt.Fprintf(w, "Last known result from %s:\n", formatTime(cd.CachedAt))
	renderDocument(w, cd.Document, color)
}

func formatTime(t time.Time) string { return t.Local().Format(timeLayout) }
