package log

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"scan-wallet-tui/helpers"
	"scan-wallet-tui/styles"
)

// Height is how many log lines fit for a terminal of the given height
func Height(termHeight int) int {
	// header, nav, panel title and borders
	const reserved = 10
	available := helpers.Max(5, termHeight-reserved)
	return helpers.Min(available, helpers.Min(termHeight/3, 15))
}

// Render renders the log panel. inFlight names the running action, if any.
func Render(width, height int, logReady bool, logSpinnerView string, vp viewport.Model, inFlight string) string {
	title := lipgloss.NewStyle().
		Foreground(styles.CAccent2).
		Bold(true).
		Render("Log")
	if inFlight != "" {
		title += lipgloss.NewStyle().Foreground(styles.CWarn).Render(" · " + inFlight + " in progress " + logSpinnerView)
	}

	vp.Height = Height(height)

	border := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.CBorder).
		Padding(0, 1).
		Width(helpers.Max(0, width-2)).
		Height(vp.Height + 2)

	if !logReady {
		return border.Render(title + "\n\ninitializing...\n" + logSpinnerView)
	}

	if vp.TotalLineCount() > vp.Height {
		title += lipgloss.NewStyle().
			Foreground(styles.CMuted).
			Render(fmt.Sprintf(" [%d%%]", int(vp.ScrollPercent()*100)))
	}

	return border.Render(title + "\n\n" + vp.View())
}
