package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bennyhartnett/swucalc/pkg/calc"
)

// Engine runs batches of calculations.
type Engine struct {
	cfg Config
	log *zap.Logger
}

// New creates a new engine from the given config. A nil logger discards output.
func New(cfg Config, log *zap.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{cfg: cfg, log: log}, nil
}

// Config returns the engine's config.
func (e *Engine) Config() Config { return e.cfg }

// Run evaluates every request and returns the report. Rows keep the order
// of reqs. A failing request fails only its own row; cancelling ctx marks
// every row not yet started with the context error.
func (e *Engine) Run(ctx context.Context, reqs []calc.Request) Report {
	report := Report{
		ID:      uuid.New(),
		Started: time.Now().UTC(),
		Config:  e.cfg,
		Rows:    make([]calc.Result, len(reqs)),
	}
	log := e.log.With(zap.String("run", report.ID.String()))
	log.Info("Starting batch", zap.Int("requests", len(reqs)), zap.Int("workers", e.cfg.Workers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for i, req := range reqs {
		i, req := i, req // per-iteration copies (go.mod targets go1.21, pre-loopvar semantics)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				report.Rows[i] = calc.Failed(req, err)
				return nil
			}
			start := time.Now()
			res, err := calc.Run(req)
			if err != nil {
				log.Debug("Request failed", zap.String("name", req.Name), zap.String("mode", req.Mode), zap.Error(err))
				report.Rows[i] = calc.Failed(req, err)
				return nil
			}
			log.Debug("Request done",
				zap.String("name", req.Name),
				zap.String("mode", req.Mode),
				zap.Duration("took", time.Since(start)))
			report.Rows[i] = res
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range report.Rows {
		if !r.OK() {
			report.Failed++
		}
	}
	report.Elapsed = time.Since(report.Started)
	log.Info("Batch finished",
		zap.Int("rows", len(report.Rows)),
		zap.Int("failed", report.Failed),
		zap.Duration("elapsed", report.Elapsed))
	return report
}
