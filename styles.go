package main

import "scan-wallet-tui/styles"

// -------------------- THEME (Lip Gloss) --------------------
// Styles now come from the styles package

var (
	cBorder  = styles.CBorder
	cMuted   = styles.CMuted
	cAccent  = styles.CAccent
	cOffline = styles.COffline

	appStyle    = styles.AppStyle
	panelStyle  = styles.PanelStyle
	noticeStyle = styles.NoticeStyle
	warnStyle   = styles.WarnStyle
)
