package home

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"scan-wallet-tui/helpers"
	"scan-wallet-tui/styles"
)

// TempSelection stores the home menu selection
var TempSelection string

// CreateForm creates the home menu form
func CreateForm() *huh.Form {
	TempSelection = ""

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Options(
					huh.NewOption("Assets", "assets"),
					huh.NewOption("Scan QR Payload", "scan"),
					huh.NewOption("Receive", "receive"),
					huh.NewOption("Networks", "settings"),
				).
				Title("Main Menu").
				Description("Select a view to navigate to").
				Value(&TempSelection),
		),
	).WithTheme(huh.ThemeCatppuccin())

	form.Init()
	return form
}

// Render renders the home view
func Render(form *huh.Form, address string) string {
	var b strings.Builder
	if address != "" {
		b.WriteString(styles.Muted("Unlocked as "))
		b.WriteString(helpers.FadeString(address, "#F25D94", "#EDFF82"))
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(styles.CWarn).Render("Read-only: set WALLET_PRIVATE_KEY to send and log in"))
	}
	b.WriteString("\n\n")
	if form != nil {
		b.WriteString(form.View())
	} else {
		b.WriteString("Loading menu...")
	}
	return b.String()
}

// Nav returns the navigation bar for home view
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("↑/↓") + " select",
		styles.Key("Enter") + " go",
		styles.Key("l") + " logger",
		styles.Key("Esc") + " quit",
	}, "   ")

	return styles.NavStyle.Width(width).Render(left)
}
