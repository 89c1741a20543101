package worker

// session_sweeper.go
// Background goroutine that periodically deletes expired session rows so the
// sessions table does not grow without bound. Tokens are validated against
// expires_at on every request, so the sweep is housekeeping, not security.

import (
	"context"
	"time"

	"santripay/internal/repository"

	"github.com/rs/zerolog/log"
)

const sweepInterval = 15 * time.Minute

// StartSessionSweeper launches the sweep goroutine. It respects the context
// for graceful shutdown.
func StartSessionSweeper(ctx context.Context, sessions repository.SessionRepository) {
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		log.Info().Msg("session_sweeper: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("session_sweeper: shutting down")
				return
			case <-ticker.C:
				sweep(ctx, sessions)
			}
		}
	}()
}

func sweep(ctx context.Context, sessions repository.SessionRepository) {
	n, err := sessions.DeleteExpired(ctx, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("session_sweeper: delete expired failed")
		return
	}
	if n > 0 {
		log.Info().Int64("deleted", n).Msg("session_sweeper: purged expired sessions")
	}
}
