// Package formatter renders console output for the transcript watcher.
package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkmuru/copilot-trans/internal/models"
)

// Block headings. The watch loop prints HeadingNew from the list item the
// first time an identifier is seen and HeadingDetail from the fetched detail
// record.
const (
	HeadingNew    = "NEW transcript fragment"
	HeadingDetail = "Detail snippet"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

// WriteBanner prints the informational startup block.
func WriteBanner(w io.Writer, runID, meetingID string, interval time.Duration) {
	fmt.Fprintf(w, "%s\n", titleStyle.Render("copilot-trans — meeting transcript watcher"))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("run:"), runID)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("meeting:"), meetingID)
	fmt.Fprintf(w, "%s %s\n\n", labelStyle.Render("interval:"), interval)
}

// WriteFragment prints one block for a fragment: the heading with the
// resolved fields on one line, then the transcript text on its own line when
// present. Absent fields are omitted entirely.
func WriteFragment(w io.Writer, heading string, s models.Summary) {
	line := headingStyle.Render("▶ " + heading)
	for _, f := range []struct {
		label string
		value *string
	}{
		{"id", s.ID},
		{"created", s.Created},
		{"lang", s.Lang},
		{"speaker", s.Speaker},
	} {
		if f.value != nil {
			line += fmt.Sprintf(" %s=%s", labelStyle.Render(f.label), *f.value)
		}
	}
	fmt.Fprintln(w, line)

	if s.Text != nil {
		fmt.Fprintf(w, "  %s\n", *s.Text)
	}
}

// WriteRawJSON pretty-prints a raw payload, used by verbose mode.
func WriteRawJSON(w io.Writer, label string, v any) {
	data, err := json.MarshalIndent(v, "  ", "  ")
	if err != nil {
		fmt.Fprintf(w, "  %s: %v\n", labelStyle.Render(label), v)
		return
	}
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(label+":"), data)
}
