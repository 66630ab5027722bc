package usage

import "context"

// Service orchestrates LLM quota accounting.
type Service struct {
	store *Store
}

// NewService creates a Service backed by the given Store.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// UseCall deducts one LLM call from the user's monthly allowance.
// If the user row does not exist yet it is initialised and the call is
// immediately consumed. Returns ErrQuotaExhausted when the quota for the
// current month is spent. Anonymous sessions (empty userID) are not metered.
func (s *Service) UseCall(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	err := s.store.UseCall(ctx, userID)
	if err != ErrQuotaExhausted {
		return err
	}

	// Row may be missing: try to create it, then retry the deduction once.
	if initErr := s.store.EnsureUser(ctx, userID); initErr != nil {
		return initErr
	}
	return s.store.UseCall(ctx, userID)
}
