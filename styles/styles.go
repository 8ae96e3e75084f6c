package styles

import "github.com/charmbracelet/lipgloss"

// Theme colors
var (
	CBg      = lipgloss.Color("#0B0F14") // near-black
	CPanel   = lipgloss.Color("#0F1720")
	CBorder  = lipgloss.Color("#874BFD")
	CMuted   = lipgloss.Color("#8AA0B6")
	CText    = lipgloss.Color("#D6E2F0")
	CAccent  = lipgloss.Color("#7EE787") // success, balances
	CAccent2 = lipgloss.Color("#79C0FF") // selection, titles
	CWarn    = lipgloss.Color("#FFA657") // failures surfaced to the user
	COffline = lipgloss.Color("#C01C28")
)

// Shared styles
var (
	AppStyle = lipgloss.NewStyle().
			Background(CBg).
			Foreground(CText)

	TitleStyle = lipgloss.NewStyle().
			Foreground(CAccent2).
			Bold(true)

	PanelStyle = lipgloss.NewStyle().
			Background(CPanel).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(CBorder).
			Padding(1, 2)

	NavStyle = lipgloss.NewStyle().
			Background(CPanel).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(CBorder).
			Padding(0, 1)

	HotkeyKeyStyle = lipgloss.NewStyle().
			Foreground(CAccent).
			Bold(true)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(CAccent).
			Bold(true)

	WarnStyle = lipgloss.NewStyle().
			Foreground(CWarn).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(CMuted)
)

// Key renders a key with accent styling
func Key(s string) string {
	return HotkeyKeyStyle.Render(s)
}

// Muted renders secondary text
func Muted(s string) string {
	return MutedStyle.Render(s)
}

// Warn renders a user-facing failure
func Warn(s string) string {
	return WarnStyle.Render(s)
}
