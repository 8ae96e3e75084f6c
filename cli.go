package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"scan-wallet-tui/contract"
	"scan-wallet-tui/helpers"
	"scan-wallet-tui/rpc"
	"scan-wallet-tui/scan"
	"scan-wallet-tui/storage"
	"scan-wallet-tui/transfer"
	assetview "scan-wallet-tui/views/assets"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "scan-wallet",
		Short:         "Terminal wallet driven by scanned QR payloads",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context())
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	logger := func() *log.Logger { return newStderrLogger(verbose) }

	root.AddCommand(
		newClassifyCmd(),
		newLoginCmd(logger),
		newSendCmd(logger),
		newAssetsCmd(logger),
	)
	return root
}

func runTUI(ctx context.Context) error {
	buf := &logBuffer{}
	logger := log.NewWithOptions(buf, log.Options{ReportTimestamp: true, Level: log.DebugLevel})

	a, err := newApp(ctx, logger, false)
	if err != nil {
		return err
	}
	defer a.Close()

	m := newModel(a, buf)
	p := tea.NewProgram(&m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <payload>",
		Short: "Show how a scanned payload is interpreted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printPayload(cmd.OutOrStdout(), scan.Classify(args[0]))
		},
	}
}

func printPayload(out io.Writer, p scan.Payload) error {
	fmt.Fprintf(out, "kind: %s\n", p.Kind())
	switch p := p.(type) {
	case scan.Login:
		fmt.Fprintf(out, "id: %s\ntoken: %s\n", p.ID, p.Token)
	case scan.Address:
		fmt.Fprintf(out, "address: %s\n", p.Address)
	case scan.Token:
		fmt.Fprintf(out, "token: %s\naddress: %s\n", p.Name, p.Address)
		for _, f := range p.Fields[1:] {
			fmt.Fprintf(out, "%s: %s\n", f.Key, f.Value)
		}
	case scan.Invalid:
		return p
	}
	return nil
}

func newLoginCmd(logger func() *log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "login <payload>",
		Short: "Answer a scanned login challenge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			login, ok := scan.Classify(args[0]).(scan.Login)
			if !ok {
				return errors.New("payload is not a login challenge")
			}

			a, err := newApp(cmd.Context(), logger(), true)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.responder().RespondToLogin(cmd.Context(), login, a.privateKey); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged in successfully!")
			return nil
		},
	}
}

func newSendCmd(logger func() *log.Logger) *cobra.Command {
	var (
		assetRef string
		to       string
		amount   string
		yes      bool
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send the native asset or a token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, logger(), true)
			if err != nil {
				return err
			}
			defer a.Close()

			asset, err := resolveAsset(ctx, a.store, assetRef)
			if err != nil {
				return err
			}
			if err := a.connect(); err != nil {
				return err
			}

			confirm := transfer.Confirmer(transfer.AlwaysConfirm)
			if !yes {
				confirm = transfer.ConfirmFunc(confirmPrompt)
			}

			form := &transfer.Form{To: to, Amount: amount, Symbol: asset.Symbol}
			receipt, err := a.dispatcher().Dispatch(ctx, form, asset, a.session.Wallet(), confirm)
			if err != nil {
				return err
			}
			if receipt == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), receipt.Message())
			return nil
		},
	}
	cmd.Flags().StringVar(&assetRef, "asset", "ethereum", "asset name, symbol or contract address")
	cmd.Flags().StringVar(&to, "to", "", "destination address")
	cmd.Flags().StringVar(&amount, "amount", "", "amount in whole units, e.g. 0.5")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func confirmPrompt(_ context.Context, c transfer.Confirmation) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title("Are you sure?").
		Description(c.String() + "\nPlease double check the address and the amount.").
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

// resolveAsset finds an asset by contract address, name or symbol
func resolveAsset(ctx context.Context, store *storage.Store, ref string) (storage.Asset, error) {
	if ref == storage.NativeAddress || helpers.IsValidEthAddress(ref) {
		return store.GetAsset(ctx, ref)
	}
	return store.FindByName(ctx, ref)
}

func newAssetsCmd(logger func() *log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Manage known assets",
	}

	var refresh bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List known assets and balances",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, logger(), refresh)
			if err != nil {
				return err
			}
			defer a.Close()

			if refresh {
				if err := refreshBalances(ctx, a); err != nil {
					return err
				}
			}
			assets, err := a.store.ListAssets(ctx)
			if err != nil {
				return err
			}
			return printAssets(cmd.OutOrStdout(), assets)
		},
	}
	list.Flags().BoolVar(&refresh, "refresh", false, "refresh balances over RPC first")

	var imp storage.Asset
	var decimals uint
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Add a token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if decimals > 255 {
				return fmt.Errorf("decimals %d out of range", decimals)
			}
			imp.Decimals = uint8(decimals)
			if err := validateImport(imp); err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), logger(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.store.SaveAsset(cmd.Context(), imp); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s (%s)\n", imp.Name, imp.Symbol)
			return nil
		},
	}
	importCmd.Flags().StringVar(&imp.Name, "name", "", "token name")
	importCmd.Flags().StringVar(&imp.Symbol, "symbol", "", "token symbol")
	importCmd.Flags().StringVar(&imp.Address, "address", "", "contract address")
	importCmd.Flags().StringVar(&imp.Type, "type", "erc20", "token standard")
	importCmd.Flags().UintVar(&decimals, "decimals", 18, "token decimals")
	_ = importCmd.MarkFlagRequired("name")
	_ = importCmd.MarkFlagRequired("address")

	cmd.AddCommand(list, importCmd)
	return cmd
}

func refreshBalances(ctx context.Context, a *app) error {
	if a.wallet == nil {
		return errors.New("no wallet loaded")
	}
	if err := a.connect(); err != nil {
		return err
	}
	assets, err := a.store.ListAssets(ctx)
	if err != nil {
		return err
	}
	b := rpc.LoadAssetBalances(a.client, a.wallet.Address(), assets)
	if b.ErrMessage != "" {
		return errors.New(b.ErrMessage)
	}
	for addr, err := range b.Failed {
		a.logger.Warn("balance not refreshed", "asset", addr, "err", err)
	}
	return rpc.SaveBalances(ctx, a.store, b)
}

func printAssets(out io.Writer, assets []storage.Asset) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSYMBOL\tBALANCE\tADDRESS")
	for _, asset := range assets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", asset.Name, asset.Symbol, assetview.Balance(asset), asset.Address)
	}
	return tw.Flush()
}

// validateImport checks a token before it is stored
func validateImport(a storage.Asset) error {
	if strings.TrimSpace(a.Name) == "" {
		return errors.New("token name is required")
	}
	if !helpers.IsValidEthAddress(a.Address) {
		return fmt.Errorf("invalid contract address %q", a.Address)
	}
	if !contract.Supported(a.Type) {
		return fmt.Errorf("%w: %q", contract.ErrUnsupportedTokenType, a.Type)
	}
	return nil
}

// parseDecimals reads a decimals field typed into a form
func parseDecimals(s string) (uint8, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
	if err != nil {
		return 0, fmt.Errorf("decimals must be 0-255")
	}
	return uint8(n), nil
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintln(os.Stderr, "error:", err)
	return 1
}
