package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"outreach/internal/agent"
	"outreach/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// ErrChannelUnsupported is returned for leads whose channel cannot be mailed directly
var ErrChannelUnsupported = errors.New("LinkedIn messages can only be sent through the delivery agent")

// Error is a direct delivery failure. Its text is what the send result shows.
type Error struct {
	Err error
}

func (e *Error) Error() string { return e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// Service sends lead drafts through a mailer, rotating sender accounts and
// pacing deliveries with a rate limiter.
type Service struct {
	mailer  Mailer
	pool    *Pool
	limiter *rate.Limiter
	timeout time.Duration
	logger  zerolog.Logger
}

// NewService creates a direct delivery service. perMinute <= 0 disables
// pacing and timeout bounds each mailer call (0 means no deadline).
func NewService(mailer Mailer, pool *Pool, perMinute int, timeout time.Duration, logger zerolog.Logger) *Service {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}
	return &Service{
		mailer:  mailer,
		pool:    pool,
		limiter: rate.NewLimiter(limit, 1),
		timeout: timeout,
		logger:  logger.With().Str("component", "delivery").Logger(),
	}
}

// SendMessage delivers one lead's draft. It reports no per-item results, so
// callers record a synthesized success.
func (s *Service) SendMessage(ctx context.Context, lead models.Lead) ([]models.SendResult, error) {
	if lead.Channel == models.ChannelLinkedIn {
		return nil, &Error{Err: ErrChannelUnsupported}
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	account, err := s.pool.Pick()
	if err != nil {
		return nil, &Error{Err: err}
	}

	subject := lead.SubjectLine
	if subject == "" {
		subject = "Outreach"
	}

	callCtx, cancel := ctx, context.CancelFunc(func() {})
	if s.timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
	}
	defer cancel()

	err = s.mailer.Deliver(callCtx, Message{
		FromEmail: account.Email,
		FromName:  account.DisplayName,
		ToEmail:   lead.Email,
		ToName:    lead.Name,
		Subject:   subject,
		Body:      lead.EmailBody,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("lead_id", lead.ID).Str("sender", account.Email).Msg("Direct delivery failed")
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("delivery to %s: %w", lead.Email, agent.ErrTimeout)
		}
		return nil, &Error{Err: err}
	}

	s.pool.MarkSent(account.ID)
	s.logger.Info().Str("lead_id", lead.ID).Str("sender", account.Email).Msg("Email delivered")
	return nil, nil
}
