package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"scan-wallet-tui/config"
	"scan-wallet-tui/helpers"
	"scan-wallet-tui/styles"
	assetview "scan-wallet-tui/views/assets"
	"scan-wallet-tui/views/home"
	logview "scan-wallet-tui/views/log"
	"scan-wallet-tui/views/receive"
	scanview "scan-wallet-tui/views/scan"
	"scan-wallet-tui/views/send"
	"scan-wallet-tui/views/settings"
)

// -------------------- VIEW --------------------

func (m *model) globalHeader() string {
	availableWidth := max(0, m.w-8) // Account for panel padding

	var addrDisplay string
	if addr := m.ownAddress(); addr != "" {
		addrDisplay = lipgloss.NewStyle().
			Foreground(styles.CAccent2).
			Bold(true).
			Render("Wallet: " + helpers.FadeString(helpers.ShortenAddr(addr), "#F25D94", "#EDFF82"))
	} else {
		addrDisplay = lipgloss.NewStyle().
			Foreground(cMuted).
			Render("Wallet: locked")
	}

	network := m.app.session.Network()
	var statusIcon, statusText string
	statusColor := cOffline
	switch {
	case network.RPCURL == "":
		statusIcon, statusText = "○", "No RPC"
	case m.rpcConnecting:
		statusIcon, statusText = "○", "Connecting..."
	case !m.rpcConnected:
		statusIcon, statusText = "○", "Connection Failed"
	default:
		statusIcon, statusText = "●", network.Display
		statusColor = cAccent
		if statusText == "" {
			statusText = network.Name
		}
	}

	rpcDisplay := lipgloss.NewStyle().
		Foreground(statusColor).
		Bold(true).
		Render(statusIcon + " " + statusText)

	titleText := lipgloss.NewStyle().
		Foreground(cAccent).
		Bold(true).
		Render(helpers.FadeString("scan wallet", "#7EE787", "#82CFFD"))

	addrWidth := lipgloss.Width(addrDisplay)
	rpcWidth := lipgloss.Width(rpcDisplay)
	titleWidth := lipgloss.Width(titleText)
	totalOtherWidth := addrWidth + rpcWidth + titleWidth

	var headerLine string
	if totalOtherWidth+4 > availableWidth {
		// Not enough space, stack vertically
		headerLine = addrDisplay + "\n" + titleText + "\n" + rpcDisplay
	} else {
		// Three-column layout: Address | Title (centered) | RPC
		remainingSpace := availableWidth - totalOtherWidth
		leftPadding := remainingSpace / 2
		rightPadding := remainingSpace - leftPadding

		headerLine = addrDisplay +
			strings.Repeat(" ", max(1, leftPadding)) +
			titleText +
			strings.Repeat(" ", max(1, rightPadding)) +
			rpcDisplay
	}

	separator := lipgloss.NewStyle().
		Foreground(cBorder).
		Render(strings.Repeat("─", availableWidth))

	return headerLine + "\n" + separator
}

func (m *model) View() string {
	headerPanel := panelStyle.Width(max(0, m.w-2)).Render(m.globalHeader())

	var content, nav string
	width := m.w - 2

	switch m.activePage {
	case config.PageHome:
		content = home.Render(m.homeForm, m.ownAddress())
		nav = home.Nav(width)

	case config.PageAssets:
		loadedAt := "balances " + helpers.LoadedAt(m.balancesLoadedAt, m.balancesLoading)
		if m.balancesLoading {
			loadedAt = m.spin.View() + " " + loadedAt
		}
		content = assetview.Render(m.assets, m.selectedAsset, loadedAt, m.balancesErr)
		if m.importForm != nil {
			content = styles.TitleStyle.Render("Import Token") + "\n\n" + m.importForm.View()
		}
		nav = assetview.Nav(width, m.importForm != nil)

	case config.PageScan:
		content = scanview.Render(m.scanInput, m.scanReturn == config.PageTransfer, m.loggingIn, m.spin.View(), m.scanErr)
		nav = scanview.Nav(width)

	case config.PageSelectToken:
		target, _ := m.app.session.ScannedAddress()
		content = scanview.RenderSelect(target.Address, assetview.RenderList(m.assets, m.selectIdx))
		nav = scanview.SelectNav(width)

	case config.PageTransfer:
		content = send.Render(send.State{
			Asset:       m.transferAsset,
			SendForm:    m.sendForm,
			ConfirmForm: m.confirmForm,
			Sending:     m.sending,
			SpinnerView: m.spin.View(),
			Receipt:     m.txReceipt,
			Error:       m.txError,
			CopiedMsg:   m.notice,
		})
		nav = send.Nav(width, m.txReceipt != nil)

	case config.PageReceive:
		content = receive.Render(m.ownAddress(), m.notice)
		nav = receive.Nav(width)

	case config.PageSettings:
		content = settings.Render(m.app.cfg.Networks, m.selectedNetIdx)
		nav = settings.Nav(width)
	}

	if m.notice != "" && m.activePage != config.PageTransfer && m.activePage != config.PageReceive {
		style := noticeStyle
		if m.noticeWarn {
			style = warnStyle
		}
		content += "\n\n" + style.Render(m.notice)
	}

	pageContent := panelStyle.Width(max(0, width)).Render(content)
	sections := []string{headerPanel, pageContent, nav}

	if m.logEnabled {
		sections = append(sections, logview.Render(m.w, m.h, m.logReady, m.logSpinner.View(), m.logViewport, m.app.session.InFlight()))
	}

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
