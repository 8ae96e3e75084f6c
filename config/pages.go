package config

// Page identifies a TUI screen
type Page int

const (
	PageHome Page = iota
	PageAssets
	PageScan
	PageSelectToken
	PageTransfer
	PageReceive
	PageSettings
)

func (p Page) String() string {
	switch p {
	case PageAssets:
		return "assets"
	case PageScan:
		return "scan"
	case PageSelectToken:
		return "select-token"
	case PageTransfer:
		return "transfer"
	case PageReceive:
		return "receive"
	case PageSettings:
		return "settings"
	default:
		return "home"
	}
}
