package main

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"scan-wallet-tui/auth"
	"scan-wallet-tui/config"
	"scan-wallet-tui/rpc"
	"scan-wallet-tui/storage"
	"scan-wallet-tui/styles"
	"scan-wallet-tui/transfer"
	"scan-wallet-tui/views/home"
)

// -------------------- MODEL --------------------

// model represents the application state following The Elm Architecture
type model struct {
	w, h int

	app        *app
	dispatcher *transfer.Dispatcher
	responder  *auth.Responder

	activePage config.Page

	// home menu
	homeForm *huh.Form

	// assets list
	assets           []storage.Asset
	selectedAsset    int
	balancesLoading  bool
	balancesLoadedAt time.Time
	balancesErr      string
	importForm       *huh.Form

	// scan input
	scanInput  textinput.Model
	scanReturn config.Page // PageTransfer when scanning a destination from the send form
	scanErr    string
	loggingIn  bool

	// token selection after an address scan
	selectIdx int

	// transfer page
	transferAsset storage.Asset
	sendFields    *transfer.Form
	sendForm      *huh.Form
	confirmForm   *huh.Form
	confirmYes    bool
	pendingPlan   *transfer.Plan
	sending       bool
	txReceipt     *transfer.Receipt
	txError       string

	// rpc
	spin          spinner.Model
	rpcConnected  bool
	rpcConnecting bool

	// settings
	selectedNetIdx int

	// transient feedback line
	notice     string
	noticeWarn bool

	// logger panel
	logEnabled  bool
	logger      *log.Logger
	logBuffer   *logBuffer
	logViewport viewport.Model
	logReady    bool
	logSpinner  spinner.Model
}

// -------------------- INIT --------------------

// newModel creates the TUI model around a bootstrapped app
func newModel(a *app, buf *logBuffer) model {
	in := textinput.New()
	in.Placeholder = "Paste scanned QR payload…"
	in.Prompt = "Payload: "
	in.PromptStyle = lipgloss.NewStyle().Foreground(styles.CAccent)
	in.TextStyle = lipgloss.NewStyle().Foreground(styles.CText)
	in.Cursor.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)
	in.CharLimit = 1024
	in.Width = 64

	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	vp := viewport.New(0, 20) // resized on first WindowSizeMsg
	vp.Style = lipgloss.NewStyle().
		Foreground(styles.CText).
		Background(styles.CPanel)

	logSpin := spinner.New()
	logSpin.Spinner = spinner.Dot
	logSpin.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	m := model{
		app:         a,
		dispatcher:  a.dispatcher(),
		responder:   a.responder(),
		activePage:  config.PageHome,
		scanInput:   in,
		sendFields:  &transfer.Form{},
		spin:        sp,
		logEnabled:  a.cfg.Logger,
		logger:      a.logger,
		logBuffer:   buf,
		logViewport: vp,
		logSpinner:  logSpin,
	}
	for i, n := range a.cfg.Networks {
		if n.Active {
			m.selectedNetIdx = i
		}
	}
	m.homeForm = home.CreateForm()
	return m
}

// Init implements tea.Model interface and returns initial commands
func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick, loadAssets(m.app.store)}
	if m.logEnabled {
		cmds = append(cmds, initLogViewport(), m.logSpinner.Tick)
	}
	if n := m.app.session.Network(); n.RPCURL != "" {
		m.rpcConnecting = true
		cmds = append(cmds, connectRPC(n.Name, n.RPCURL))
	}
	return tea.Batch(cmds...)
}

// activeClient returns the connected RPC client, or nil
func (m *model) activeClient() *rpc.Client {
	if !m.rpcConnected {
		return nil
	}
	return m.app.client
}
