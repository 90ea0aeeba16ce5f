package optimize

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/wattsup/stonks/common"
	"github.com/wattsup/stonks/engine"
	"github.com/wattsup/stonks/log"
	"github.com/wattsup/stonks/report"
	"github.com/wattsup/stonks/strategies"
	"github.com/wattsup/stonks/strategies/base"
)

// Run executes the full parameter grid and returns the best results,
// ranked by the target metric. Individual combinations that fail are
// logged and skipped; Run only errors when the grid itself is unusable
func (g *GridSearch) Run(ctx context.Context) ([]*report.Report, error) {
	ranges, err := g.resolveRanges()
	if err != nil {
		return nil, err
	}
	metric := g.TargetMetric
	if metric == "" {
		metric = MetricSortino
	}
	switch metric {
	case MetricSortino, MetricSharpe, MetricProfit:
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMetric, metric)
	}

	cases := enumerate(ranges)
	log.Infof(common.Optimise, "searching %v combinations of %v over %v to %v",
		len(cases), g.Config.StrategyName,
		g.Config.Start.Format("2006-01-02"), g.Config.End.Format("2006-01-02"))

	workers := g.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(cases) {
		workers = len(cases)
	}

	results := make([]*report.Report, len(cases))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				r, runErr := g.runOne(ctx, cases[i])
				if runErr != nil {
					log.Errorf(common.Optimise, "combination %v failed: %v", cases[i].label, runErr)
					continue
				}
				results[i] = r
			}
		}()
	}
	for i := range cases {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	ranked := make([]*report.Report, 0, len(results))
	for i := range results {
		if results[i] != nil {
			ranked = append(ranked, results[i])
		}
	}
	if len(ranked) == 0 {
		return nil, ErrNoResults
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		vi, vj := metricValue(ranked[i], metric), metricValue(ranked[j], metric)
		if vi != vj {
			return vi > vj
		}
		return ranked[i].TestCase < ranked[j].TestCase
	})
	topN := g.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked, nil
}

// BestParams implements the strategy facing optimiser interface, ranking
// the grid over the supplied window and returning the winning combination
func (g *GridSearch) BestParams(ctx context.Context, strategyName string, ranges base.Ranges, start, end time.Time) (base.Params, error) {
	sub := GridSearch{
		Config:       g.Config,
		Ranges:       ranges,
		TargetMetric: g.TargetMetric,
		TopN:         1,
		Workers:      g.Workers,
	}
	sub.Config.StrategyName = strategyName
	sub.Config.Start = start
	sub.Config.End = end
	results, err := sub.Run(ctx)
	if err != nil {
		return nil, err
	}
	return results[0].Params, nil
}

// runOne executes a single combination with a private copy of the run
// config. Inner runs are silent and never recurse into walk forward
func (g *GridSearch) runOne(ctx context.Context, tc testCase) (*report.Report, error) {
	cfg := g.Config
	cfg.Params = tc.params
	cfg.TestCase = tc.label
	cfg.Silent = true
	cfg.WalkForward = false
	cfg.Optimiser = nil
	cfg.Callback = nil
	bt, err := engine.NewFromConfig(ctx, &cfg)
	if err != nil {
		return nil, err
	}
	return bt.Run(ctx)
}

// resolveRanges falls back to the strategy's own adjustable ranges when
// none were supplied
func (g *GridSearch) resolveRanges() (base.Ranges, error) {
	if len(g.Ranges) > 0 {
		return g.Ranges, nil
	}
	s, err := strategies.LoadStrategyByName(g.Config.StrategyName)
	if err != nil {
		return nil, err
	}
	if len(s.Ranges()) == 0 {
		return nil, fmt.Errorf("%w for strategy %v", ErrNoRanges, g.Config.StrategyName)
	}
	return s.Ranges(), nil
}

// enumerate expands ranges into every combination, iterating keys in
// sorted order so the grid is deterministic across runs
func enumerate(ranges base.Ranges) []testCase {
	keys := make([]string, 0, len(ranges))
	for k := range ranges {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cases := []testCase{{params: base.Params{}}}
	for _, k := range keys {
		next := make([]testCase, 0, len(cases)*len(ranges[k]))
		for _, tc := range cases {
			for _, v := range ranges[k] {
				params := make(base.Params, len(tc.params)+1)
				for pk, pv := range tc.params {
					params[pk] = pv
				}
				params[k] = v
				next = append(next, testCase{params: params})
			}
		}
		cases = next
	}
	for i := range cases {
		cases[i].label = label(keys, cases[i].params)
	}
	return cases
}

// label renders a combination the way it appears in reports, with values
// right aligned so runs line up in console output
func label(keys []string, params base.Params) string {
	var b strings.Builder
	b.WriteString("[")
	for _, k := range keys {
		fmt.Fprintf(&b, "%v=%4v,", k, params[k])
	}
	b.WriteString("]")
	return b.String()
}

func metricValue(r *report.Report, metric Metric) float64 {
	switch metric {
	case MetricSharpe:
		return r.SharpeRatio
	case MetricProfit:
		f, _ := r.TotalProfit.Float64()
		return f
	default:
		return r.SortinoRatio
	}
}
