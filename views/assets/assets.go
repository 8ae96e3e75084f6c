package assets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"scan-wallet-tui/helpers"
	"scan-wallet-tui/storage"
	"scan-wallet-tui/styles"
)

// Nav returns the navigation bar for the assets view
func Nav(width int, importing bool) string {
	var left string
	if importing {
		left = strings.Join([]string{
			styles.Key("Tab") + " next field",
			styles.Key("Enter") + " save",
			styles.Key("Esc") + " cancel",
		}, "   ")
	} else {
		left = strings.Join([]string{
			styles.Key("↑/↓") + " move",
			styles.Key("Enter") + " send",
			styles.Key("x") + " scan",
			styles.Key("i") + " import",
			styles.Key("d") + " delete",
			styles.Key("r") + " refresh",
			styles.Key("v") + " receive",
			styles.Key("h") + " home",
			styles.Key("l") + " debug log",
			styles.Key("Esc") + " back",
		}, "   ")
	}

	return styles.NavStyle.Width(width).Render(left)
}

// Balance formats a stored base-unit balance
func Balance(a storage.Asset) string {
	bal, ok := helpers.ParseBaseUnits(a.Balance)
	if !ok {
		return a.Balance + " " + a.Symbol
	}
	return helpers.FormatToken(bal, a.Decimals, a.Symbol)
}

// RenderList renders the asset list with the cursor on selectedIdx
func RenderList(assets []storage.Asset, selectedIdx int) string {
	if len(assets) == 0 {
		return styles.Muted("No assets yet. Press 'i' to import a token.")
	}

	var items []string
	for i, a := range assets {
		var marker string
		nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#e1a2aa"))
		addr := a.Address
		if a.IsNative() {
			addr = "native"
		}
		addrLine := helpers.FadeString(addr, "#7D5AFC", "#FF87D7")

		if i == selectedIdx {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true).Render("▶ ")
			nameStyle = lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true)
			addrLine = lipgloss.NewStyle().Foreground(styles.CText).Render(addr)
		} else {
			marker = "  "
		}

		name := fmt.Sprintf("%s (%s)", a.Name, a.Symbol)
		balance := lipgloss.NewStyle().Foreground(styles.CAccent).Render(Balance(a))
		items = append(items, marker+nameStyle.Render(name)+"  "+balance+"\n  "+addrLine)
	}
	return strings.Join(items, "\n\n")
}

// Render renders the full assets view
func Render(assets []storage.Asset, selectedIdx int, loadedAt string, errMsg string) string {
	header := styles.TitleStyle.Render("Assets")
	subtitle := styles.Muted("Balances of known tokens · " + loadedAt)

	content := header + "\n" + subtitle + "\n\n" + RenderList(assets, selectedIdx)

	if errMsg != "" {
		content += "\n\n" + lipgloss.NewStyle().Foreground(styles.CWarn).Render("⚠ "+errMsg)
	}

	statusBar := styles.Muted(
		fmt.Sprintf("%d assets", len(assets)),
	)
	return content + "\n\n" + statusBar
}
