package scan

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"scan-wallet-tui/styles"
)

// Nav returns the navigation bar for the scan view
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("Enter") + " scan",
		styles.Key("Ctrl+v") + " paste",
		styles.Key("Esc") + " back",
	}, "   ")

	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the scan input. forDestination is set when the scan fills
// the send form's destination.
func Render(in textinput.Model, forDestination bool, busy bool, spinnerView string, errMsg string) string {
	title := "Scan QR Payload"
	hint := "Paste a wallet login, an address or a token descriptor like ethereum:0x…"
	if forDestination {
		title = "Scan Destination"
		hint = "Paste an address or a token descriptor to fill the destination."
	}

	lines := []string{
		styles.TitleStyle.Render(title),
		styles.Muted(hint),
		"",
		in.View(),
	}
	if busy {
		lines = append(lines, "", spinnerView+" Logging in…")
	}
	if errMsg != "" {
		lines = append(lines, "", styles.Warn("ERROR: "+errMsg))
	}
	return strings.Join(lines, "\n")
}

// RenderSelect renders the token choice after a bare address scan
func RenderSelect(address string, list string) string {
	lines := []string{
		styles.TitleStyle.Render("Select Token"),
		styles.Muted("Which asset do you want to send to"),
		lipgloss.NewStyle().Foreground(styles.CText).Render(address),
		"",
		list,
	}
	return strings.Join(lines, "\n")
}

// SelectNav returns the navigation bar for token selection
func SelectNav(width int) string {
	left := strings.Join([]string{
		styles.Key("↑/↓") + " move",
		styles.Key("Enter") + " send",
		styles.Key("Esc") + " cancel",
	}, "   ")

	return styles.NavStyle.Width(width).Render(left)
}
