package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/x-xyz/market/app/internal/bootstrap"
	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/log"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/auction"
	"github.com/x-xyz/market/domain/event"
	"github.com/x-xyz/market/domain/market"
	"github.com/x-xyz/market/domain/treasury"
)

var rt *bootstrap.Runtime

func main() {
	app := &cli.App{
		Name:  "marketctl",
		Usage: "operate the configured markets",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: bootstrap.DefaultConfigFile, Usage: "path of the yaml config"},
			&cli.StringFlag{Name: "env-file", Value: bootstrap.DefaultEnvFile, Usage: "KEY=VALUE file loaded before the config"},
			&cli.StringFlag{Name: "log-level", Value: "warn", Usage: "overrides logLevel"},
			&cli.StringFlag{Name: "market", Aliases: []string{"m"}, Required: true, Usage: "market name"},
		},
		Before: setup,
		After: func(*cli.Context) error {
			if rt != nil {
				rt.Close()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "audit",
				Usage:  "compare escrowed holdings with active sales",
				Action: runAudit,
			},
			{
				Name:   "treasury",
				Usage:  "print the treasury state",
				Action: showTreasury,
			},
			{
				Name:   "events",
				Usage:  "print the latest events",
				Action: listEvents,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "type", Usage: "filter by event type"},
					&cli.Uint64Flag{Name: "sale", Usage: "filter by listing or auction id"},
					&cli.IntFlag{Name: "limit", Value: 20, Usage: "number of events"},
				},
			},
			{
				Name:   "wallets",
				Usage:  "replace the fee wallets",
				Action: changeWallets,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "admin", Required: true, Usage: "admin address acting"},
					&cli.StringFlag{Name: "rewards", Required: true},
					&cli.StringFlag{Name: "server", Required: true},
					&cli.StringFlag{Name: "maintenance", Required: true},
				},
			},
			{
				Name:   "finish-ended",
				Usage:  "settle every active auction past its end time",
				Action: finishEnded,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "admin", Required: true, Usage: "admin address acting"},
					&cli.BoolFlag{Name: "dry-run", Usage: "only print what would be finished"},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Log().WithField("err", err).Error("marketctl failed")
		os.Exit(1)
	}
}

func setup(cc *cli.Context) error {
	cfg, err := bootstrap.Load(bootstrap.Options{
		ConfigFile: cc.String("config"),
		EnvFile:    cc.String("env-file"),
		LogLevel:   cc.String("log-level"),
	})
	if err != nil {
		return err
	}
	// notifications from the cli go out inline
	cfg.Notifier.Workers = 0

	rt, err = bootstrap.Build(ctx.Background(), cfg)
	return err
}

func selected(cc *cli.Context) (*market.Market, error) {
	return rt.Markets.Get(cc.String("market"))
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runAudit(cc *cli.Context) error {
	m, err := selected(cc)
	if err != nil {
		return err
	}
	report, err := m.Audit.Run(ctx.Background())
	if err != nil {
		return err
	}
	if err := printJSON(report); err != nil {
		return err
	}
	if !report.Healthy() {
		return cli.Exit(fmt.Sprintf("%d discrepancies", len(report.Discrepancies())), 2)
	}
	return nil
}

func showTreasury(cc *cli.Context) error {
	m, err := selected(cc)
	if err != nil {
		return err
	}
	state, err := m.Treasury.Get(ctx.Background())
	if err != nil {
		return err
	}
	return printJSON(state)
}

func listEvents(cc *cli.Context) error {
	m, err := selected(cc)
	if err != nil {
		return err
	}
	opts := []event.FindAllOptionsFunc{event.WithPagination(0, int32(cc.Int("limit")))}
	if t := cc.String("type"); t != "" {
		opts = append(opts, event.WithType(event.Type(t)))
	}
	if cc.IsSet("sale") {
		opts = append(opts, event.WithSaleId(cc.Uint64("sale")))
	}
	res, err := m.Events.FindAll(ctx.Background(), opts...)
	if err != nil {
		return err
	}
	return printJSON(res)
}

func changeWallets(cc *cli.Context) error {
	m, err := selected(cc)
	if err != nil {
		return err
	}
	wallets := treasury.WalletConfig{
		Rewards:     domain.Address(cc.String("rewards")),
		Server:      domain.Address(cc.String("server")),
		Maintenance: domain.Address(cc.String("maintenance")),
	}
	if err := m.Treasury.ChangeWalletAddresses(ctx.Background(), domain.Address(cc.String("admin")), wallets); err != nil {
		return err
	}
	return showTreasury(cc)
}

func finishEnded(cc *cli.Context) error {
	m, err := selected(cc)
	if err != nil {
		return err
	}
	c := ctx.Background()
	admin := domain.Address(cc.String("admin"))
	now := time.Now()

	auctions, err := m.Auctions.FindAll(c, auction.WithStatus(auction.StatusActive))
	if err != nil {
		return err
	}
	failed := 0
	for _, a := range auctions {
		if now.Before(a.EndTime()) {
			continue
		}
		if cc.Bool("dry-run") {
			fmt.Printf("auction %d ended at %s\n", a.Id, a.EndTime().Format(time.RFC3339))
			continue
		}
		receipt, err := m.Settlement.FinishAuction(c, admin, a.Id)
		if err != nil {
			c.WithFields(log.Fields{"err": err, "id": a.Id}).Error("settlement.FinishAuction failed")
			failed++
			continue
		}
		fmt.Printf("auction %d finished, winner %s, price %s\n", a.Id, receipt.Winner, m.PayToken.Format(receipt.Price))
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d auctions failed to finish", failed), 1)
	}
	return nil
}
