// internal/domain/coupon/service.go
package coupon

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/restaurant-backend/internal/config"
	redisdb "github.com/your-org/restaurant-backend/internal/infrastructure/database/redis"
)

// Service handles coupon application against per-session state
type Service struct {
	redisClient *redisdb.Client
	config      *config.Config
	registry    *Registry
}

// NewService creates a new coupon service
func NewService(redisClient *redisdb.Client, cfg *config.Config, registry *Registry) *Service {
	return &Service{
		redisClient: redisClient,
		config:      cfg,
		registry:    registry,
	}
}

// SessionState tracks the applied coupon and spent codes for one session
type SessionState struct {
	Applied string   `json:"applied,omitempty"`
	Used    []string `json:"used,omitempty"`
}

func (st *SessionState) isUsed(code string) bool {
	for _, u := range st.Used {
		if u == code {
			return true
		}
	}
	return false
}

// ApplyResult reports a successful application
type ApplyResult struct {
	Coupon  *Coupon `json:"coupon"`
	Message string  `json:"message"`
}

// Apply validates a code for the session and stores it as applied
func (s *Service) Apply(ctx context.Context, sessionID, code string, orderTotal int64) (*ApplyResult, error) {
	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c, err := s.registry.Validate(code, orderTotal, state.isUsed, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	state.Applied = c.Code
	if err := s.saveState(ctx, sessionID, state); err != nil {
		return nil, err
	}

	return &ApplyResult{
		Coupon:  c,
		Message: fmt.Sprintf("Cupom %s aplicado: %d%% de desconto", c.Code, c.DiscountPct),
	}, nil
}

// Discount returns the discount for the session's applied coupon, 0 if none
func (s *Service) Discount(ctx context.Context, sessionID string, subtotal int64) (int64, error) {
	c, err := s.Applied(ctx, sessionID)
	if err != nil || c == nil {
		return 0, err
	}
	return c.DiscountFor(subtotal), nil
}

// Applied returns the session's applied coupon, nil when none
func (s *Service) Applied(ctx context.Context, sessionID string) (*Coupon, error) {
	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.Applied == "" {
		return nil, nil
	}
	c, ok := s.registry.Get(state.Applied)
	if !ok {
		return nil, nil
	}
	return c, nil
}

// Remove clears the applied coupon without marking it used
func (s *Service) Remove(ctx context.Context, sessionID string) error {
	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return err
	}
	state.Applied = ""
	return s.saveState(ctx, sessionID, state)
}

// MarkUsed moves a code into the session's used set and clears the applied
// coupon. Called on successful order submission.
func (s *Service) MarkUsed(ctx context.Context, sessionID, code string) error {
	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return err
	}

	normalized := NormalizeCode(code)
	if !state.isUsed(normalized) {
		state.Used = append(state.Used, normalized)
	}
	if state.Applied == normalized {
		state.Applied = ""
	}
	return s.saveState(ctx, sessionID, state)
}

// Available lists the registered coupons
func (s *Service) Available() []Coupon {
	return s.registry.All()
}

// Private helpers

func stateKey(sessionID string) string {
	return fmt.Sprintf("coupon:session:%s", sessionID)
}

func (s *Service) loadState(ctx context.Context, sessionID string) (*SessionState, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required")
	}

	var state SessionState
	err := s.redisClient.GetJSON(ctx, stateKey(sessionID), &state)
	if err == redis.Nil {
		return &SessionState{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load coupon state: %w", err)
	}
	return &state, nil
}

func (s *Service) saveState(ctx context.Context, sessionID string, state *SessionState) error {
	return s.redisClient.SetJSON(ctx, stateKey(sessionID), state, s.config.Checkout.CartTTL)
}
