package subscriptions

import (
	"context"
	"fmt"
	"log"
	"time"

	"todobackend/core"
	"todobackend/db"
	"todobackend/metrics"
	"todobackend/models"
)

type SubscriptionsService struct {
	usersRepo db.UsersRepository
	metrics   metrics.Recorder
	now       func() time.Time
}

func NewSubscriptionsService(usersRepo db.UsersRepository, recorder metrics.Recorder) *SubscriptionsService {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &SubscriptionsService{
		usersRepo: usersRepo,
		metrics:   recorder,
		now:       time.Now,
	}
}

// ActivateSubscription starts a one-month subscription window for the user. Calling it
// again restarts the window from now. No payment is involved.
func (s *SubscriptionsService) ActivateSubscription(ctx context.Context, userID string) (*models.User, error) {
	log.Printf("📋 Starting to activate subscription for user: %s", userID)

	if userID == "" {
		return nil, fmt.Errorf("user_id cannot be empty: %w", core.ErrInvalidInput)
	}

	end := models.SubscriptionWindowEnd(s.now())
	maybeUser, err := s.usersRepo.ActivateSubscription(ctx, userID, end)
	if err != nil {
		return nil, fmt.Errorf("failed to activate subscription: %w", err)
	}
	user, ok := maybeUser.Get()
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, core.ErrNotFound)
	}

	s.metrics.RecordSubscriptionActivated()
	log.Printf("📋 Completed successfully - activated subscription for user %s until %s", userID, end.Format(time.RFC3339))
	return user, nil
}

// GetSubscriptionStatus reports the user's subscription. An elapsed window is cleared
// in the store on read and reported as unsubscribed.
func (s *SubscriptionsService) GetSubscriptionStatus(
	ctx context.Context,
	userID string,
) (*models.SubscriptionStatus, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id cannot be empty: %w", core.ErrInvalidInput)
	}

	maybeUser, err := s.usersRepo.GetUserByID(ctx, userID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user, ok := maybeUser.Get()
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, core.ErrNotFound)
	}

	now := s.now()
	if user.SubscriptionExpired(now) {
		cleared, err := s.usersRepo.ClearExpiredSubscription(ctx, userID, now)
		if err != nil {
			return nil, fmt.Errorf("failed to clear expired subscription: %w", err)
		}
		if cleared {
			log.Printf("⏰ Subscription for user %s expired at %s, cleared", userID, user.SubscriptionEnd.Format(time.RFC3339))
		}
		return &models.SubscriptionStatus{IsSubscribed: false, SubscriptionEnd: nil}, nil
	}

	return &models.SubscriptionStatus{
		IsSubscribed:    user.IsSubscribed,
		SubscriptionEnd: user.SubscriptionEnd,
	}, nil
}

// ExpireSubscriptions clears every subscription whose window has elapsed and returns
// the number of users affected.
func (s *SubscriptionsService) ExpireSubscriptions(ctx context.Context) (int64, error) {
	log.Printf("📋 Starting to expire elapsed subscriptions")

	count, err := s.usersRepo.ClearAllExpiredSubscriptions(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to expire subscriptions: %w", err)
	}

	s.metrics.RecordSubscriptionsExpired(count)
	log.Printf("📋 Completed successfully - expired %d subscriptions", count)
	return count, nil
}
