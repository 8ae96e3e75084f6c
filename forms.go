package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"scan-wallet-tui/helpers"
	"scan-wallet-tui/storage"
	"scan-wallet-tui/transfer"
	assetview "scan-wallet-tui/views/assets"
)

// -------------------- TEMP FORM STORAGE --------------------
// Temporary form field storage (package-level to avoid pointer-to-copy issues)
var (
	tempImportName     string
	tempImportSymbol   string
	tempImportAddress  string
	tempImportDecimals string
	tempImportType     string
)

// createSendForm binds the send inputs to m.sendFields. Values already in
// the fields (a scanned destination) are kept.
func (m *model) createSendForm() {
	m.sendFields.Symbol = m.transferAsset.Symbol

	m.sendForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Send To").
				Description("Destination address (Ctrl+v to paste, Ctrl+x to scan)").
				Value(&m.sendFields.To).
				Placeholder("0x..."),

			huh.NewInput().
				Title(fmt.Sprintf("Amount (%s)", m.transferAsset.Symbol)).
				Description("Available: "+assetview.Balance(m.transferAsset)).
				Value(&m.sendFields.Amount).
				Placeholder("0.0").
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return nil
					}
					if _, err := helpers.ParseUnits(s, m.transferAsset.Decimals); err != nil {
						return errors.New("invalid amount")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeCatppuccin())

	m.sendForm.Init()
}

// createConfirmForm asks the user to approve a validated plan
func (m *model) createConfirmForm(c transfer.Confirmation) {
	m.confirmYes = false

	m.confirmForm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Are you sure?").
				Description(c.String()+"\nPlease double check the address and the amount.").
				Affirmative("Yes").
				Negative("No").
				Value(&m.confirmYes),
		),
	).WithTheme(huh.ThemeCatppuccin())

	m.confirmForm.Init()
}

func (m *model) createImportForm() {
	tempImportName = ""
	tempImportSymbol = ""
	tempImportAddress = ""
	tempImportDecimals = "18"
	tempImportType = "erc20"

	m.importForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Token Name").
				Value(&tempImportName).
				Placeholder("tether").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),

			huh.NewInput().
				Title("Symbol").
				Value(&tempImportSymbol).
				Placeholder("USDT"),

			huh.NewInput().
				Title("Contract Address").
				Value(&tempImportAddress).
				Placeholder("0x...").
				Validate(func(s string) error {
					if !helpers.IsValidEthAddress(strings.TrimSpace(s)) {
						return errors.New("invalid contract address")
					}
					return nil
				}),

			huh.NewInput().
				Title("Decimals").
				Value(&tempImportDecimals).
				Validate(func(s string) error {
					_, err := parseDecimals(s)
					return err
				}),

			huh.NewSelect[string]().
				Title("Token Standard").
				Options(
					huh.NewOption("ERC-20", "erc20"),
					huh.NewOption("BEP-20", "bep20"),
				).
				Value(&tempImportType),
		),
	).WithTheme(huh.ThemeCatppuccin())

	m.importForm.Init()
}

// importedAsset builds the asset from the completed import form
func importedAsset() (storage.Asset, error) {
	decimals, err := parseDecimals(tempImportDecimals)
	if err != nil {
		return storage.Asset{}, err
	}
	a := storage.Asset{
		Address:  strings.TrimSpace(tempImportAddress),
		Type:     tempImportType,
		Name:     strings.TrimSpace(tempImportName),
		Symbol:   strings.TrimSpace(tempImportSymbol),
		Decimals: decimals,
	}
	if a.Symbol == "" {
		a.Symbol = strings.ToUpper(a.Name)
	}
	if err := validateImport(a); err != nil {
		return storage.Asset{}, err
	}
	return a, nil
}
