package main

import (
	"errors"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"scan-wallet-tui/config"
	"scan-wallet-tui/scan"
	"scan-wallet-tui/session"
	"scan-wallet-tui/storage"
	"scan-wallet-tui/views/home"
	logview "scan-wallet-tui/views/log"
)

// -------------------- UPDATE --------------------

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// commands log from their own goroutines
	defer m.updateLogViewport()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height
		m.logViewport.Width = max(0, m.w-6)
		m.logViewport.Height = logview.Height(m.h)
		return m, nil

	case spinner.TickMsg:
		var c1, c2 tea.Cmd
		m.spin, c1 = m.spin.Update(msg)
		m.logSpinner, c2 = m.logSpinner.Update(msg)
		return m, tea.Batch(c1, c2)

	case logInitMsg:
		m.logReady = true
		return m, nil

	case rpcConnectedMsg:
		return m, m.handleRPCConnected(msg)

	case assetsLoadedMsg:
		if msg.err != nil {
			m.logger.Error("load assets", "err", msg.err)
			m.setNotice(userMessage(msg.err), true)
			return m, clearNotice()
		}
		m.assets = msg.assets
		m.selectedAsset = min(m.selectedAsset, max(0, len(m.assets)-1))
		m.selectIdx = min(m.selectIdx, max(0, len(m.assets)-1))
		return m, nil

	case balancesLoadedMsg:
		m.balancesLoading = false
		m.balancesLoadedAt = msg.b.LoadedAt
		m.balancesErr = msg.b.ErrMessage
		if msg.err != nil {
			m.balancesErr = msg.err.Error()
		}
		for addr, err := range msg.b.Failed {
			m.logger.Warn("balance not refreshed", "asset", addr, "err", err)
		}
		return m, loadAssets(m.app.store)

	case assetResolvedMsg:
		m.app.session.TakeScan()
		if msg.err != nil {
			m.logger.Warn("scanned token unknown", "err", msg.err)
			m.setNotice(userMessage(msg.err), true)
			m.activePage = config.PageAssets
			return m, clearNotice()
		}
		m.openTransfer(msg.asset, msg.to)
		return m, nil

	case assetImportedMsg:
		if msg.err != nil {
			m.setNotice(userMessage(msg.err), true)
			return m, clearNotice()
		}
		m.logger.Info("token imported", "name", msg.asset.Name, "address", msg.asset.Address)
		m.setNotice("Imported "+msg.asset.Name, false)
		return m, tea.Batch(loadAssets(m.app.store), clearNotice())

	case loginResultMsg:
		m.loggingIn = false
		if msg.err != nil {
			m.scanErr = userMessage(msg.err)
			return m, nil
		}
		m.scanInput.Reset()
		m.setNotice("Logged in successfully!", false)
		m.activePage = config.PageHome
		return m, clearNotice()

	case transferSettledMsg:
		return m, m.handleTransferSettled(msg)

	case qrSavedMsg:
		if msg.err != nil {
			m.setNotice("Saving QR failed: "+msg.err.Error(), true)
		} else {
			m.setNotice("Saved "+msg.path, false)
		}
		return m, clearNotice()

	case configSavedMsg:
		if msg.err != nil {
			m.logger.Error("save config", "err", msg.err)
		}
		return m, nil

	case clipboardCopiedMsg:
		m.setNotice("Copied "+msg.what+"!", false)
		return m, clearNotice()

	case clearNoticeMsg:
		m.notice = ""
		m.noticeWarn = false
		return m, nil

	case tea.MouseMsg:
		if m.logEnabled && m.logReady {
			var cmd tea.Cmd
			m.logViewport, cmd = m.logViewport.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}
	}

	return m.updatePage(msg)
}

// handleGlobalKey deals with keys that work on every page
func (m *model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit, true
	case "pgup", "pgdown":
		if m.logEnabled && m.logReady {
			var cmd tea.Cmd
			m.logViewport, cmd = m.logViewport.Update(msg)
			return cmd, true
		}
	case "l", "L":
		if m.textInputActive() {
			return nil, false
		}
		m.logEnabled = !m.logEnabled
		m.app.cfg.Logger = m.logEnabled
		cmds := []tea.Cmd{saveConfigCmd(m.app)}
		if m.logEnabled && !m.logReady {
			cmds = append(cmds, initLogViewport(), m.logSpinner.Tick)
		}
		return tea.Batch(cmds...), true
	case "q":
		if !m.textInputActive() && m.activePage == config.PageHome {
			return tea.Quit, true
		}
	}
	return nil, false
}

// updatePage routes a message to the active page
func (m *model) updatePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.activePage {
	case config.PageHome:
		return m, m.updateHome(msg)
	case config.PageAssets:
		return m, m.updateAssets(msg)
	case config.PageScan:
		return m, m.updateScan(msg)
	case config.PageSelectToken:
		return m, m.updateSelectToken(msg)
	case config.PageTransfer:
		return m, m.updateTransfer(msg)
	case config.PageReceive:
		return m, m.updateReceive(msg)
	case config.PageSettings:
		return m, m.updateSettings(msg)
	}
	return m, nil
}

func (m *model) updateHome(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		return tea.Quit
	}
	if m.homeForm == nil {
		m.homeForm = home.CreateForm()
	}

	form, cmd := m.homeForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.homeForm = f
	}
	if m.homeForm.State != huh.StateCompleted {
		return cmd
	}

	choice := home.TempSelection
	m.homeForm = home.CreateForm()
	switch choice {
	case "assets":
		m.activePage = config.PageAssets
		return m.refreshBalances()
	case "scan":
		return m.openScan(config.PageHome)
	case "receive":
		m.activePage = config.PageReceive
	case "settings":
		m.activePage = config.PageSettings
	}
	return nil
}

func (m *model) updateAssets(msg tea.Msg) tea.Cmd {
	if m.importForm != nil {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
			m.importForm = nil
			return nil
		}
		form, cmd := m.importForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.importForm = f
		}
		switch m.importForm.State {
		case huh.StateCompleted:
			m.importForm = nil
			a, err := importedAsset()
			if err != nil {
				m.setNotice(err.Error(), true)
				return clearNotice()
			}
			return importAsset(m.app.store, a)
		case huh.StateAborted:
			m.importForm = nil
		}
		return cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case "up", "k":
		if m.selectedAsset > 0 {
			m.selectedAsset--
		}
	case "down", "j":
		if m.selectedAsset < len(m.assets)-1 {
			m.selectedAsset++
		}
	case "enter":
		if len(m.assets) > 0 {
			m.openTransfer(m.assets[m.selectedAsset], "")
		}
	case "x", "X":
		return m.openScan(config.PageAssets)
	case "i", "I":
		m.createImportForm()
	case "d", "delete":
		if len(m.assets) > 0 && !m.assets[m.selectedAsset].IsNative() {
			a := m.assets[m.selectedAsset]
			m.logger.Info("deleting token", "name", a.Name, "address", a.Address)
			return deleteAsset(m.app.store, a.Address)
		}
	case "r", "R":
		return m.refreshBalances()
	case "v", "V":
		m.activePage = config.PageReceive
	case "h", "H", "esc":
		m.activePage = config.PageHome
	}
	return nil
}

func (m *model) updateScan(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.scanInput.Blur()
			m.scanErr = ""
			if m.scanReturn == config.PageTransfer {
				m.activePage = config.PageTransfer
				m.createSendForm()
				return nil
			}
			m.activePage = m.scanReturn
			return nil
		case "enter":
			if m.loggingIn {
				return nil
			}
			return m.submitScan()
		}
	}

	var cmd tea.Cmd
	m.scanInput, cmd = m.scanInput.Update(msg)
	return cmd
}

// submitScan classifies the typed payload and acts on it
func (m *model) submitScan() tea.Cmd {
	p := scan.Classify(m.scanInput.Value())
	m.scanErr = ""
	m.logger.Debug("scanned", "kind", p.Kind())

	if m.scanReturn == config.PageTransfer {
		switch p := p.(type) {
		case scan.Address:
			m.sendFields.To = p.Address
		case scan.Token:
			m.sendFields.To = p.Address
		default:
			m.scanErr = "Invalid wallet address!"
			return nil
		}
		m.scanInput.Blur()
		m.activePage = config.PageTransfer
		m.createSendForm()
		return nil
	}

	route, err := m.app.session.Accept(p)
	if err != nil {
		m.logger.Warn("scan rejected", "err", err)
		m.scanErr = userMessage(err)
		return nil
	}
	m.scanInput.Blur()

	switch route {
	case session.RouteLogin:
		if m.app.privateKey == "" {
			m.scanErr = "No private key loaded."
			return nil
		}
		m.loggingIn = true
		return tea.Batch(respondToLogin(m.responder, p.(scan.Login), m.app.privateKey), m.spin.Tick)
	case session.RouteSelectToken:
		m.selectIdx = 0
		m.activePage = config.PageSelectToken
	case session.RouteTransfer:
		target, _ := m.app.session.ScannedAddress()
		return resolveByName(m.app.store, m.app.session.SendingTokenName(), target.Address)
	}
	return nil
}

func (m *model) updateSelectToken(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case "up", "k":
		if m.selectIdx > 0 {
			m.selectIdx--
		}
	case "down", "j":
		if m.selectIdx < len(m.assets)-1 {
			m.selectIdx++
		}
	case "enter":
		target, ok := m.app.session.TakeScan()
		if !ok || len(m.assets) == 0 {
			m.activePage = config.PageAssets
			return nil
		}
		m.openTransfer(m.assets[m.selectIdx], target.Address)
	case "esc":
		m.app.session.TakeScan()
		m.activePage = config.PageAssets
	}
	return nil
}

func (m *model) updateTransfer(msg tea.Msg) tea.Cmd {
	if m.sending {
		return nil
	}

	keyMsg, isKey := msg.(tea.KeyMsg)

	if m.txReceipt != nil {
		if !isKey {
			return nil
		}
		switch keyMsg.String() {
		case "c", "C":
			if m.txReceipt.Hash != nil {
				return copyToClipboard(m.txReceipt.Hash.Hex(), "transaction hash")
			}
		case "enter", "esc":
			m.txReceipt = nil
			m.activePage = config.PageAssets
		}
		return nil
	}

	if m.confirmForm != nil {
		if isKey && keyMsg.String() == "esc" {
			m.declineSend()
			return nil
		}
		form, cmd := m.confirmForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.confirmForm = f
		}
		switch m.confirmForm.State {
		case huh.StateCompleted:
			if !m.confirmYes {
				m.declineSend()
				return nil
			}
			m.confirmForm = nil
			m.sending = true
			m.txError = ""
			return tea.Batch(executeTransfer(m.dispatcher, m.pendingPlan), m.spin.Tick)
		case huh.StateAborted:
			m.declineSend()
			return nil
		}
		return cmd
	}

	if isKey {
		switch keyMsg.String() {
		case "esc":
			m.sendForm = nil
			m.activePage = config.PageAssets
			return nil
		case "ctrl+x":
			return m.openScan(config.PageTransfer)
		}
	}

	if m.sendForm == nil {
		m.createSendForm()
	}
	form, cmd := m.sendForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.sendForm = f
	}
	switch m.sendForm.State {
	case huh.StateCompleted:
		return m.prepareSend()
	case huh.StateAborted:
		m.sendForm = nil
		m.activePage = config.PageAssets
		return nil
	}
	return cmd
}

// prepareSend validates the form and asks for confirmation
func (m *model) prepareSend() tea.Cmd {
	w := m.app.session.Wallet()
	if w == nil {
		m.txError = "No private key loaded."
		m.createSendForm()
		return nil
	}

	plan, err := m.dispatcher.Prepare(m.sendFields.Request(), m.transferAsset, w)
	if err != nil {
		m.logger.Warn("send rejected", "err", err)
		m.txError = userMessage(err)
		m.createSendForm()
		return nil
	}
	m.txError = ""
	m.pendingPlan = plan
	m.createConfirmForm(plan.Confirmation())
	return nil
}

// declineSend drops the pending plan and returns to the untouched form
func (m *model) declineSend() {
	m.logger.Debug("send declined")
	m.confirmForm = nil
	m.pendingPlan = nil
	m.createSendForm()
}

func (m *model) handleTransferSettled(msg transferSettledMsg) tea.Cmd {
	m.sending = false
	m.pendingPlan = nil

	if errors.Is(msg.err, session.ErrBusy) {
		m.txError = userMessage(msg.err)
		m.createSendForm()
		return nil
	}

	// the strategy ran: the form is reset whatever the outcome
	m.sendFields.Reset()
	if msg.err != nil {
		m.txError = userMessage(msg.err)
		m.createSendForm()
		return nil
	}

	m.txReceipt = msg.receipt
	m.sendForm = nil
	return m.refreshBalances()
}

func (m *model) updateReceive(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	addr := m.ownAddress()
	switch keyMsg.String() {
	case "c", "C":
		if addr != "" {
			return copyToClipboard(addr, "address")
		}
	case "p", "P":
		if addr != "" {
			dir, err := os.Getwd()
			if err != nil {
				dir = os.TempDir()
			}
			return saveQRCode(addr, dir)
		}
	case "esc", "h", "H":
		m.activePage = config.PageHome
	}
	return nil
}

func (m *model) updateSettings(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	networks := m.app.cfg.Networks
	switch keyMsg.String() {
	case "up", "k":
		if m.selectedNetIdx > 0 {
			m.selectedNetIdx--
		}
	case "down", "j":
		if m.selectedNetIdx < len(networks)-1 {
			m.selectedNetIdx++
		}
	case "enter":
		if len(networks) == 0 {
			return nil
		}
		n := networks[m.selectedNetIdx]
		m.app.cfg.SetActive(n.Name)
		m.app.session.SetNetwork(sessionNetwork(n))
		m.rpcConnected = false
		m.rpcConnecting = true
		m.logger.Info("switching network", "network", n.Name)
		return tea.Batch(connectRPC(n.Name, n.RPCURL), saveConfigCmd(m.app))
	case "esc", "h", "H":
		m.activePage = config.PageHome
	}
	return nil
}

func (m *model) handleRPCConnected(msg rpcConnectedMsg) tea.Cmd {
	if msg.network != m.app.session.Network().Name {
		// a newer network was selected while this one was dialing
		if msg.client != nil {
			msg.client.Close()
		}
		return nil
	}
	m.rpcConnecting = false
	if msg.err != nil {
		m.rpcConnected = false
		m.logger.Error("rpc connect failed", "network", msg.network, "err", msg.err)
		return nil
	}
	m.app.attach(msg.client)
	m.rpcConnected = true
	m.logger.Info("rpc connected", "network", msg.network, "url", msg.client.URL)
	return m.refreshBalances()
}

// -------------------- MODEL HELPER METHODS --------------------

// openTransfer shows the send form for asset with an optional destination
func (m *model) openTransfer(a storage.Asset, to string) {
	m.transferAsset = a
	m.sendFields.Reset()
	m.sendFields.To = to
	m.txReceipt = nil
	m.txError = ""
	m.confirmForm = nil
	m.pendingPlan = nil
	m.createSendForm()
	m.activePage = config.PageTransfer
}

// openScan focuses the payload input. back is where Esc returns to, and
// PageTransfer makes the scan fill the send destination.
func (m *model) openScan(back config.Page) tea.Cmd {
	m.scanReturn = back
	m.scanErr = ""
	m.scanInput.Reset()
	m.activePage = config.PageScan
	return tea.Batch(m.scanInput.Focus(), textinput.Blink)
}

// refreshBalances reloads balances when a wallet and a node are available
func (m *model) refreshBalances() tea.Cmd {
	client := m.activeClient()
	if client == nil || m.app.wallet == nil {
		return loadAssets(m.app.store)
	}
	m.balancesLoading = true
	return tea.Batch(
		refreshBalancesCmd(client, m.app.store, m.app.wallet.Address()),
		m.spin.Tick,
	)
}

func (m *model) ownAddress() string {
	if m.app.wallet == nil {
		return ""
	}
	return m.app.wallet.Address().Hex()
}

func (m *model) setNotice(s string, warn bool) {
	m.notice = s
	m.noticeWarn = warn
}

// updateLogViewport refreshes the viewport content with log output
func (m *model) updateLogViewport() {
	if !m.logReady || m.logBuffer == nil {
		return
	}
	atBottom := m.logViewport.AtBottom()
	m.logViewport.SetContent(m.logBuffer.String())
	if atBottom {
		m.logViewport.GotoBottom()
	}
}

// textInputActive returns true if any text input is currently active
func (m *model) textInputActive() bool {
	switch m.activePage {
	case config.PageScan:
		return true
	case config.PageAssets:
		return m.importForm != nil
	case config.PageTransfer:
		return m.sendForm != nil && m.confirmForm == nil && m.txReceipt == nil && !m.sending
	}
	return false
}
