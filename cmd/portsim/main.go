package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"portsim/backtest"
	"portsim/config"
	"portsim/currency"
	"portsim/data/csv"
	"portsim/eventhandlers/allocation"
	"portsim/eventhandlers/brokerage"
	"portsim/eventhandlers/orderprice"
	"portsim/eventhandlers/portfolio"
	"portsim/eventhandlers/size"
	"portsim/eventhandlers/strategies"
	"portsim/eventhandlers/strategies/base"
	"portsim/statistics"
)

func main() {
	app := &cli.App{
		Name:  "portsim",
		Usage: "run a portfolio backtest from a config file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "path to the backtest config file",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	level := zerolog.InfoLevel
	if c.Bool("verbose") {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	cfg, err := config.ReadConfigFromFile(c.String("config"))
	if err != nil {
		return err
	}

	p, err := buildPortfolio(cfg, log)
	if err != nil {
		return err
	}

	events, err := csv.LoadEvents(cfg.Data.Bars, cfg.Data.Fx)
	if err != nil {
		return err
	}
	bt, err := backtest.New(p, backtest.NewSliceStreamer(events), log)
	if err != nil {
		return err
	}
	if err := bt.Run(context.Background()); err != nil {
		return err
	}

	report, err := statistics.Calculate(p.EquityCurve(), currency.NewCode(cfg.BaseCurrency), cfg.RiskFreeRate)
	if err != nil {
		return err
	}
	return report.WriteSummary(os.Stdout)
}

func buildPortfolio(cfg *config.Config, log zerolog.Logger) (*portfolio.Portfolio, error) {
	var allocator allocation.Handler
	switch cfg.Allocator {
	case config.AllocatorEqualWeight:
		allocator = &allocation.EqualWeight{}
	default:
		allocator = &allocation.SelfFunded{}
	}

	p, err := portfolio.Setup(currency.NewCode(cfg.BaseCurrency), allocator, log)
	if err != nil {
		return nil, err
	}

	for i := range cfg.Strategies {
		sc := &cfg.Strategies[i]
		assets := make(map[string]currency.Code, len(sc.Assets))
		for asset, code := range sc.Assets {
			assets[asset] = currency.NewCode(code)
		}
		openingCash := make(map[currency.Code]decimal.Decimal, len(sc.OpeningCash))
		for code, amount := range sc.OpeningCash {
			openingCash[currency.NewCode(code)] = decimal.NewFromFloat(amount)
		}
		state, err := base.NewStrategy(sc.Name, assets, openingCash)
		if err != nil {
			return nil, err
		}

		generator, err := strategies.LoadStrategyByName(sc.Kind, strategies.Params{
			RebalanceIntervalDays: sc.Params.RebalanceIntervalDays,
			FastPeriod:            sc.Params.FastPeriod,
			SlowPeriod:            sc.Params.SlowPeriod,
		})
		if err != nil {
			return nil, err
		}

		weights := make(map[string]decimal.Decimal, len(sc.Weights))
		for asset, w := range sc.Weights {
			weights[asset] = decimal.NewFromFloat(w)
		}
		sizer, err := size.NewWeighted(weights)
		if err != nil {
			return nil, err
		}

		prices, err := pricePolicy(sc)
		if err != nil {
			return nil, err
		}

		if err := p.AddStrategy(state, generator, sizer, prices); err != nil {
			return nil, err
		}
	}

	broker, err := brokerage.New(p.History(), log)
	if err != nil {
		return nil, err
	}
	if err := p.SetBrokerage(broker); err != nil {
		return nil, err
	}
	return p, nil
}

func pricePolicy(sc *config.StrategyConfig) (orderprice.Handler, error) {
	offset := decimal.NewFromFloat(sc.PriceOffset)
	switch sc.OrderPolicy {
	case config.PolicyLimit:
		return orderprice.NewLimitPolicy(offset)
	case config.PolicyStop:
		return orderprice.NewStopPolicy(offset)
	case config.PolicyStopLimit:
		return orderprice.NewStopLimitPolicy(offset)
	default:
		return &orderprice.MarketPolicy{}, nil
	}
}
