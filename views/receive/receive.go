package receive

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"scan-wallet-tui/helpers"
	"scan-wallet-tui/styles"
)

// Nav returns the navigation bar for the receive view
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("c") + " copy address",
		styles.Key("p") + " save PNG",
		styles.Key("l") + " debug log",
		styles.Key("Esc") + " back",
	}, "   ")

	return styles.NavStyle.Width(width).Render(left)
}

// Render shows address as a QR code other wallets can scan
func Render(address string, notice string) string {
	h := styles.TitleStyle.Render("Receive")
	if address == "" {
		return h + "\n\n" + lipgloss.NewStyle().Foreground(styles.CWarn).Render("No wallet loaded.")
	}

	lines := []string{
		h,
		styles.Muted("Scan to send to this wallet"),
		"",
		helpers.GenerateQRCode(address),
		helpers.FadeString(address, "#7EE787", "#82CFFD"),
	}
	if notice != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(styles.CAccent).Render(notice))
	}
	return strings.Join(lines, "\n")
}
