package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/wattsup/stonks/broker/paper"
	"github.com/wattsup/stonks/common"
	"github.com/wattsup/stonks/config"
	"github.com/wattsup/stonks/data/calendar"
	"github.com/wattsup/stonks/data/csvcandle"
	"github.com/wattsup/stonks/engine"
	"github.com/wattsup/stonks/log"
	"github.com/wattsup/stonks/optimize"
	"github.com/wattsup/stonks/report/console"
)

func main() {
	app := &cli.App{
		Name:  "stonks",
		Usage: "minute resolution trading strategy simulator",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.json",
				Usage:   "path to the run configuration",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "backtest",
				Usage:  "simulate the configured strategy over the configured date range",
				Action: runBacktest,
			},
			{
				Name:  "optimize",
				Usage: "grid search the strategy's parameter ranges and rank the results, over the trailing ten weeks when no dates are configured",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "metric",
						Value: string(optimize.MetricSortino),
						Usage: "ranking metric: sortino, sharpe or profit",
					},
					&cli.IntFlag{
						Name:  "top",
						Value: 5,
						Usage: "how many ranked results to report",
					},
				},
				Action: runOptimize,
			},
			{
				Name:   "live",
				Usage:  "trade the configured strategy against the in-process paper broker",
				Action: runLive,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(c *cli.Context, quickDates bool) (*config.Config, error) {
	if err := common.RegisterSubLoggers(); err != nil {
		return nil, err
	}
	cfg, err := config.ReadConfigFromFile(c.String("config"))
	if err != nil {
		return nil, err
	}
	if quickDates {
		cfg.ApplyQuickTestDates(time.Now())
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildRunConfig(cfg *config.Config) (engine.RunConfig, error) {
	source, err := csvcandle.New(cfg.DataSettings.CSVDirectory)
	if err != nil {
		return engine.RunConfig{}, err
	}
	cal, err := calendar.NewWeekdays()
	if err != nil {
		return engine.RunConfig{}, err
	}
	return engine.RunConfig{
		Source:       source,
		Calendar:     cal,
		Symbols:      cfg.DataSettings.Symbols,
		Start:        cfg.DataSettings.StartDate,
		End:          cfg.DataSettings.EndDate,
		PreStartDays: cfg.PortfolioSettings.PreStartDays,
		InitialCash:  cfg.PortfolioSettings.InitialCash,
		StrategyName: cfg.StrategySettings.Name,
		Params:       cfg.StrategySettings.CustomSettings,
		WalkForward:  cfg.StrategySettings.WalkForward,
	}, nil
}

func runBacktest(c *cli.Context) error {
	cfg, err := setup(c, false)
	if err != nil {
		return err
	}
	cfg.PrintSetting()

	rc, err := buildRunConfig(cfg)
	if err != nil {
		return err
	}
	if rc.WalkForward {
		rc.Optimiser = &optimize.GridSearch{Config: rc, Ranges: cfg.StrategySettings.Ranges}
	}
	bt, err := engine.NewFromConfig(c.Context, &rc)
	if err != nil {
		return err
	}
	rep, err := bt.Run(c.Context)
	if err != nil {
		return err
	}
	return console.New().Write(rep)
}

func runOptimize(c *cli.Context) error {
	// an unset date range runs a quick test over the trailing ten weeks
	cfg, err := setup(c, true)
	if err != nil {
		return err
	}
	cfg.PrintSetting()

	rc, err := buildRunConfig(cfg)
	if err != nil {
		return err
	}
	grid := &optimize.GridSearch{
		Config:       rc,
		Ranges:       cfg.StrategySettings.Ranges,
		TargetMetric: optimize.Metric(c.String("metric")),
		TopN:         c.Int("top"),
	}
	results, err := grid.Run(c.Context)
	if err != nil {
		return err
	}
	sink := console.New()
	for i := range results {
		if err = sink.Write(results[i]); err != nil {
			return err
		}
	}
	return nil
}

func runLive(c *cli.Context) error {
	cfg, err := setup(c, false)
	if err != nil {
		return err
	}
	cfg.PrintSetting()

	rc, err := buildRunConfig(cfg)
	if err != nil {
		return err
	}

	replaySource, ok := rc.Source.(*csvcandle.Source)
	if !ok {
		return fmt.Errorf("live trading requires a csv source for the paper broker")
	}
	bars, err := csvcandle.NewReplay(c.Context, replaySource, rc.Symbols,
		time.Now().AddDate(0, 0, -1), time.Now().AddDate(0, 0, 1))
	if err != nil {
		return err
	}

	broker, err := paper.New(cfg.PortfolioSettings.InitialCash, func(symbol string) (float64, error) {
		minute := time.Now().Truncate(time.Minute)
		for i := 0; i < 10; i++ {
			bar, barErr := bars.LatestBar(context.Background(), symbol, minute.Add(time.Duration(-i)*time.Minute))
			if barErr == nil {
				return bar.Close, nil
			}
		}
		return 0, fmt.Errorf("no recent bar to price %v", symbol)
	})
	if err != nil {
		return err
	}

	lrc := &engine.LiveRunConfig{
		RunConfig:   rc,
		Bars:        bars,
		Router:      broker,
		Account:     broker,
		Margin:      cfg.LiveSettings.Margin,
		GracePeriod: time.Duration(cfg.LiveSettings.GracePeriodSeconds) * time.Second,
	}
	if rc.WalkForward {
		lrc.Optimiser = &optimize.GridSearch{Config: rc, Ranges: cfg.StrategySettings.Ranges}
	}
	trader, err := engine.NewTraderFromConfig(c.Context, lrc)
	if err != nil {
		return err
	}
	broker.SetUpdateHandler(trader.HandleTradeUpdate)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log.Infoln(common.Livetrader, "paper trading, interrupt to stop")
	return trader.Run(ctx)
}
