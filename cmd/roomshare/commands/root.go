package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/BecomeWeasel/dapp-project/internal/browser"
	"github.com/BecomeWeasel/dapp-project/internal/cli"
	"github.com/BecomeWeasel/dapp-project/internal/config"
	"github.com/BecomeWeasel/dapp-project/internal/tui"
	"github.com/BecomeWeasel/dapp-project/pkg/domain"
	"github.com/BecomeWeasel/dapp-project/pkg/roomshare"
	"github.com/BecomeWeasel/dapp-project/pkg/wallet"
)

// version is set at build time via -ldflags "-X ...commands.version=..."
var version = "dev"

const rpcTimeout = 30 * time.Second

var (
	homeDir    string
	account    int
	passphrase string
	outputFmt  string
	noStyle    bool
	wide       bool

	appCtx *app
)

// app is the dependency graph shared by all subcommands.
type app struct {
	cfg      config.Config
	node     *ethclient.Client
	client   *roomshare.Client
	wallet   *wallet.Provider
	explorer browser.Explorer
}

// from returns the address reads are issued as. Contract views that depend
// on msg.sender (getMyRents) need a real account; plain reads tolerate the
// zero address when the keystore is empty.
func (a *app) from() common.Address {
	addr, err := a.wallet.AccountAt(account)
	if err != nil {
		return common.Address{}
	}
	return addr
}

// login unlocks the selected account for a state-changing command. A
// network mismatch is surfaced as a warning, not a refusal.
func (a *app) login(ctx context.Context, cmd *cobra.Command) (*domain.Session, error) {
	sess, err := a.wallet.Login(ctx, account, passphrase)
	if err != nil {
		return nil, err
	}
	if sess.NetworkWarning != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: "+sess.NetworkWarning)
	}
	return sess, nil
}

func (a *app) outputOpts() cli.Options {
	return cli.Options{
		Format:  cli.Format(outputFmt),
		Pretty:  true,
		NoStyle: noStyle,
		Wide:    wide,
	}
}

func Execute() error {
	root := &cobra.Command{
		Use:   "roomshare",
		Short: "Terminal client for the RoomShare rental contract",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if homeDir == "" {
				dir, err := config.AppDir()
				if err != nil {
					return err
				}
				homeDir = dir
			}
			if err := os.MkdirAll(homeDir, 0o700); err != nil {
				return err
			}

			v := config.New(homeDir)
			if err := v.BindPFlag("rpc_url", cmd.Flags().Lookup("rpc")); err != nil {
				return err
			}
			if err := v.BindPFlag("abi_path", cmd.Flags().Lookup("abi")); err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			setupLogging(cfg, cmd.Flags().NArg() == 0 && cmd.Name() == "roomshare")

			node, err := ethclient.Dial(cfg.RPCURL)
			if err != nil {
				return fmt.Errorf("dial %s: %w", cfg.RPCURL, err)
			}

			contractABI, err := roomshare.LoadABI(cfg.ABIPath)
			if err != nil {
				return err
			}
			addr, err := cfg.Contract()
			if err != nil {
				return err
			}

			appCtx = &app{
				cfg:      cfg,
				node:     node,
				client:   roomshare.New(node, addr, contractABI, cfg.GasLimit),
				wallet:   wallet.NewProvider(cfg.KeystoreDir, node, cfg.ChainID),
				explorer: browser.NewExplorer(cfg.ExplorerURL),
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: open the interactive client.
			a := tui.NewApp(appCtx.client, appCtx.wallet, appCtx.explorer)
			_, err := tea.NewProgram(a, tea.WithAltScreen()).Run()
			return err
		},
	}

	root.PersistentFlags().StringVar(&homeDir, "home", "", "config dir (default ~/.roomshare)")
	root.PersistentFlags().IntVarP(&account, "account", "a", 0, "keystore account index")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase for the selected account")
	root.PersistentFlags().String("rpc", "", "RPC endpoint URL (overrides config)")
	root.PersistentFlags().String("abi", "", "contract ABI file (default: embedded)")
	root.PersistentFlags().StringVarP(&outputFmt, "output", "o", string(cli.FormatTable), "output format: table, csv or json")
	root.PersistentFlags().BoolVar(&noStyle, "no-style", false, "plain table output")
	root.PersistentFlags().BoolVar(&wide, "wide", false, "do not truncate table columns")

	root.AddCommand(roomsCmd(), rentsCmd(), historyCmd(), shareCmd(), rentCmd(),
		deactivateCmd(), resetCmd(), versionCmd())
	return root.Execute()
}

// setupLogging routes zerolog to stderr for one-shot commands and to the
// log file when the TUI owns the terminal.
func setupLogging(cfg config.Config, interactive bool) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if !interactive {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		return
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o700); err == nil {
		if f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600); err == nil {
			log.Logger = zerolog.New(f).With().Timestamp().Logger()
			return
		}
	}
	zerolog.SetGlobalLevel(zerolog.Disabled)
}
