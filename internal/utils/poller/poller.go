package poller

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Poller struct {
	name       string
	interval   time.Duration
	quit       chan struct{}
	stopOnce   sync.Once
	pollMethod func(ctx context.Context) error
}

func NewPoller(name string, interval time.Duration, pollMethod func(ctx context.Context) error) *Poller {
	return &Poller{
		name:       name,
		interval:   interval,
		quit:       make(chan struct{}),
		pollMethod: pollMethod,
	}
}

// Start runs pollMethod once right away and then on every tick until ctx is
// cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	log := log.Ctx(ctx).With().Str("poller", p.name).Logger()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	log.Info().Msgf("Starting poller with interval %s", p.interval)

	p.poll(ctx, &log)
	for {
		select {
		case <-ticker.C:
			p.poll(ctx, &log)
		case <-ctx.Done():
			log.Info().Msg("Poller stopped due to context cancellation")
			return
		case <-p.quit:
			log.Info().Msg("Poller stopped")
			return
		}
	}
}

func (p *Poller) poll(ctx context.Context, log *zerolog.Logger) {
	log.Debug().Msg("Executing poll method")
	if err := p.pollMethod(ctx); err != nil {
		log.Error().Err(err).Msg("Error polling")
	} else {
		log.Debug().Msg("Poll method executed successfully")
	}
}

// Stop ends Start. It is safe to call more than once.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.quit)
	})
}
