package middleware

import (
	"context"
	"storefront_server/structs"
	"time"

	"github.com/MonkyMars/gecho"
)

// RateCounter counts requests per client and endpoint in a fixed window.
type RateCounter interface {
	IncrementRateLimit(ctx context.Context, ip, endpoint string, window time.Duration) (int, error)
}

type Middleware struct {
	cfg     *structs.Config
	logger  *gecho.Logger
	counter RateCounter
}

func NewMiddleware(cfg *structs.Config, logger *gecho.Logger, counter RateCounter) *Middleware {
	return &Middleware{
		cfg:     cfg,
		logger:  logger,
		counter: counter,
	}
}
