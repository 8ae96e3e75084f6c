package send

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"scan-wallet-tui/storage"
	"scan-wallet-tui/styles"
	"scan-wallet-tui/transfer"
	"scan-wallet-tui/views/assets"
)

// Nav returns the navigation bar for the transfer view
func Nav(width int, showingResult bool) string {
	var left string
	if showingResult {
		left = strings.Join([]string{
			styles.Key("c") + " copy hash",
			styles.Key("Enter") + " assets",
			styles.Key("Esc") + " back",
		}, "   ")
	} else {
		left = strings.Join([]string{
			styles.Key("Tab") + " next field",
			styles.Key("Enter") + " continue",
			styles.Key("Ctrl+x") + " scan address",
			styles.Key("Esc") + " cancel",
		}, "   ")
	}

	return styles.NavStyle.Width(width).Render(left)
}

// State is everything the transfer page shows
type State struct {
	Asset       storage.Asset
	SendForm    *huh.Form
	ConfirmForm *huh.Form
	Sending     bool
	SpinnerView string
	Receipt     *transfer.Receipt
	Error       string
	CopiedMsg   string
}

// Render renders the send page for one asset
func Render(s State) string {
	h := styles.TitleStyle.Render("Send " + s.Asset.Name)
	sub := styles.Muted("Available: " + assets.Balance(s.Asset))
	lines := []string{h, sub, ""}

	switch {
	case s.Sending:
		lines = append(lines, s.SpinnerView+" Sending transaction…")

	case s.Receipt != nil:
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.CAccent).Bold(true).Render("Success"))
		lines = append(lines, "")
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.CText).Width(72).Render(s.Receipt.Message()))
		if s.CopiedMsg != "" {
			lines = append(lines, "", lipgloss.NewStyle().Foreground(styles.CAccent).Render(s.CopiedMsg))
		}

	case s.ConfirmForm != nil:
		lines = append(lines, s.ConfirmForm.View())

	default:
		if s.Error != "" {
			lines = append(lines, styles.Warn(fmt.Sprintf("ERROR: %s", s.Error)), "")
		}
		if s.SendForm != nil {
			lines = append(lines, s.SendForm.View())
		}
	}

	return strings.Join(lines, "\n")
}
