package settings

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"scan-wallet-tui/config"
	"scan-wallet-tui/styles"
)

// Nav returns the navigation bar for settings view
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("↑/↓") + " select",
		styles.Key("Enter") + " activate",
		styles.Key("h") + " home",
		styles.Key("l") + " debug log",
		styles.Key("Esc") + " back",
	}, "   ")

	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the network list
func Render(networks []config.Network, selectedIdx int) string {
	h := styles.TitleStyle.Render("Networks")

	lines := []string{h, ""}

	if len(networks) == 0 {
		lines = append(lines, styles.Muted("No networks configured."))
		lines = append(lines, "")
		lines = append(lines, styles.Muted("Set ")+styles.Key("ETH_RPC_URL")+styles.Muted(" or edit the config file."))
		return strings.Join(lines, "\n")
	}

	lines = append(lines, styles.Muted("Configured Networks:"))
	lines = append(lines, "")

	for i, n := range networks {
		var marker string
		if n.Active {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent).Render("● ")
		} else {
			marker = styles.Muted("○ ")
		}

		nameStyle := lipgloss.NewStyle().Foreground(styles.CText)
		urlStyle := lipgloss.NewStyle().Foreground(styles.CMuted)

		if i == selectedIdx {
			nameStyle = nameStyle.Background(styles.CPanel).Foreground(styles.CAccent2).Bold(true)
			urlStyle = urlStyle.Background(styles.CPanel)
			marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Render("▶ ")
		}

		lines = append(lines, marker+nameStyle.Render(n.Display))
		lines = append(lines, "  "+urlStyle.Render(fmt.Sprintf("%s · chain %d", n.RPCURL, n.ChainID)))
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
