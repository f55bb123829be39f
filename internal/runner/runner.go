package runner

import (
	"context"
	"errors"
	"log"
	"time"

	"MarketFetch/internal/collector"
	"MarketFetch/internal/model"
	"MarketFetch/internal/recorder"
	"MarketFetch/internal/store"
)

// Runner executes one fetch-and-save pass over the symbol registry.
// Per-symbol failures never abort the pass; only the output directory
// check before the first fetch is fatal.
type Runner struct {
	Fetcher  collector.Fetcher
	Store    *store.Store
	Recorder recorder.Recorder
	Registry []model.Symbol
	Interval time.Duration

	sleep func(ctx context.Context, d time.Duration)
}

// NewRunner creates a Runner with the fixed inter-call delay.
func NewRunner(f collector.Fetcher, st *store.Store, rec recorder.Recorder, registry []model.Symbol, interval time.Duration) *Runner {
	return &Runner{
		Fetcher:  f,
		Store:    st,
		Recorder: rec,
		Registry: registry,
		Interval: interval,
		sleep:    sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// Run fetches every symbol in registry order, persisting successes and
// logging failures, with the fixed delay between consecutive calls only
// (no trailing sleep after the last symbol).
func (r *Runner) Run(ctx context.Context) (*model.Summary, error) {
	if err := r.Store.EnsureDir(); err != nil {
		return nil, err
	}

	total := len(r.Registry)
	sum := &model.Summary{Total: total, StartedAt: time.Now()}
	log.Printf("[INFO] starting fetch run: %d symbols via %s", total, r.Fetcher.Name())

	for i, sym := range r.Registry {
		if i > 0 {
			r.sleep(ctx, r.Interval)
		}
		if ctx.Err() != nil {
			log.Printf("[WARN] run cancelled after %d/%d symbols", i, total)
			break
		}

		log.Printf("[INFO] [%d/%d] processing %s (%s)", i+1, total, sym.Code, sym.Label)
		sum.Results = append(sum.Results, r.fetchOne(ctx, sym))
	}
	sum.FinishedAt = time.Now()

	if err := r.Recorder.RecordRun(sum); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
	log.Printf("[INFO] run finished: saved %d/%d symbols", sum.Succeeded(), sum.Total)
	return sum, nil
}

func (r *Runner) fetchOne(ctx context.Context, sym model.Symbol) model.Result {
	res := model.Result{Symbol: sym.Code, Label: sym.Label}

	series, err := r.Fetcher.FetchDailySeries(ctx, sym.Code)
	if err != nil {
		res.Outcome, res.Message = classifyError(err)
		logOutcome(sym.Code, res.Outcome, res.Message)
		return res
	}

	path, err := r.Store.Save(sym.Code, series)
	if err != nil {
		res.Outcome = model.OutcomeWriteError
		res.Message = err.Error()
		log.Printf("[ERROR] %s: %v", sym.Code, err)
		return res
	}

	res.Outcome = model.OutcomeSaved
	res.Path = path
	log.Printf("[INFO] %s: saved to %s", sym.Code, path)
	return res
}

// classifyError maps a fetch error onto the per-symbol outcome taxonomy.
// Anything unrecognized counts as a transport failure.
func classifyError(err error) (model.Outcome, string) {
	var (
		apiErr   *collector.APIError
		rateErr  *collector.RateLimitError
		infoErr  *collector.InfoError
		missErr  *collector.MissingSeriesError
		parseErr *collector.ParseError
	)
	switch {
	case errors.As(err, &apiErr):
		return model.OutcomeAPIError, apiErr.Message
	case errors.As(err, &rateErr):
		return model.OutcomeRateLimited, rateErr.Note
	case errors.As(err, &infoErr):
		return model.OutcomeInfo, infoErr.Message
	case errors.As(err, &missErr):
		return model.OutcomeMissingSeries, missErr.Error()
	case errors.As(err, &parseErr):
		return model.OutcomeParseError, parseErr.Error()
	default:
		return model.OutcomeTransportError, err.Error()
	}
}

func logOutcome(symbol string, o model.Outcome, msg string) {
	switch o {
	case model.OutcomeRateLimited:
		log.Printf("[WARN] %s: rate limited by provider, skipping: %s", symbol, msg)
	case model.OutcomeInfo:
		log.Printf("[INFO] %s: provider returned information, skipping: %s", symbol, msg)
	default:
		log.Printf("[ERROR] %s: %s", symbol, msg)
	}
}
