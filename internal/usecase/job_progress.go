package usecase

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fconline-tracker/internal/platform/logging"
)

const defaultProgressEvery = 100

var inputValidator = validator.New(validator.WithRequiredStructEnabled())

// jobProgress logs a line every `every` processed records.
type jobProgress struct {
	logger *logging.Logger
	every  int
	total  int
}

func newJobProgress(logger *logging.Logger, every, total int) jobProgress {
	if every < 1 {
		every = defaultProgressEvery
	}
	return jobProgress{logger: logger, every: every, total: total}
}

func (p jobProgress) step(ctx context.Context, processed int, args ...any) {
	if processed%p.every != 0 && processed != p.total {
		return
	}
	fields := append([]any{"processed", processed, "total", p.total}, args...)
	p.logger.InfoContext(ctx, "progress", fields...)
}
