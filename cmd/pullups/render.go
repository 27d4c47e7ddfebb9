// ABOUTME: Terminal rendering of counter and stats view models.
// ABOUTME: Colored output in the style of the rest of the CLI.
package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/pullups/internal/view"
)

var (
	faint  = color.New(color.Faint)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	bold   = color.New(color.Bold)
)

func success(out io.Writer, format string, a ...any) {
	green.Fprintf(out, "✓ "+format+"\n", a...)
}

func warn(out io.Writer, format string, a ...any) {
	yellow.Fprintf(out, "⚠ "+format+"\n", a...)
}

// showModel renders m. Failed queries are marked for refetch so the next
// read retries them.
func showModel(out io.Writer, m view.Model, withSets bool) {
	if m.HasError && app != nil {
		app.Retry(m.Retry)
	}
	renderModel(out, m, withSets)
}

// renderModel prints a view model. withSets adds the stats screen lines.
func renderModel(out io.Writer, m view.Model, withSets bool) {
	title := m.Date
	if m.IsToday {
		title = "Today (" + m.Date + ")"
	}
	mode := "signed in"
	if m.Guest {
		mode = "guest"
	}
	fmt.Fprintf(out, "%s %s\n", bold.Sprint(title), faint.Sprintf("[%s]", mode))

	switch {
	case m.IsLoading:
		faint.Fprintln(out, "  Loading...")
		return
	case !m.HasValues():
		warn(out, "Could not load data from the server. Run the command again to retry.")
		return
	}

	fmt.Fprintf(out, "  %s %d\n", padRight("Reps:", 14), m.Reps)
	if withSets {
		fmt.Fprintf(out, "  %s %d\n", padRight("Sets:", 14), m.Sets)
		if m.AverageRepsPerSet != nil {
			fmt.Fprintf(out, "  %s %.1f\n", padRight("Avg per set:", 14), *m.AverageRepsPerSet)
		}
	}

	if m.IsToday {
		switch {
		case m.GoalLoading:
			faint.Fprintf(out, "  %s loading\n", padRight("Goal:", 14))
		case m.HasError:
			warn(out, "Could not load today's goal. Run the command again to retry.")
		case m.Goal != nil && m.ProgressPercentage != nil:
			fmt.Fprintf(out, "  %s %d  %s %.0f%%\n",
				padRight("Goal:", 14), *m.Goal, progressBar(*m.ProgressPercentage, 20), *m.ProgressPercentage)
		default:
			faint.Fprintf(out, "  %s none\n", padRight("Goal:", 14))
		}
	}

	if m.NoData {
		if m.Guest && !m.IsToday {
			faint.Fprintln(out, "  No data. Guest mode only keeps today; sign in to keep history.")
		} else {
			faint.Fprintln(out, "  No pull-ups logged yet.")
		}
	}
}

// confirm prints prompt and reads a yes/no answer from in. Anything but
// y or yes is a no.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprint(out, prompt)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read response: %w", err)
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

func progressBar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
