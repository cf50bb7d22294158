package models

import (
	"time"
)

type User struct {
	ID              string     `db:"id"               json:"id"`
	IsSubscribed    bool       `db:"is_subscribed"    json:"is_subscribed"`
	SubscriptionEnd *time.Time `db:"subscription_end" json:"subscription_end"`
	CreatedAt       time.Time  `db:"created_at"       json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"       json:"updated_at"`
}

// SubscriptionExpired reports whether the subscription window has elapsed at now
func (u *User) SubscriptionExpired(now time.Time) bool {
	return u.SubscriptionEnd != nil && u.SubscriptionEnd.Before(now)
}

// HasActiveSubscription reports whether the quota is lifted for this user at now
func (u *User) HasActiveSubscription(now time.Time) bool {
	return u.IsSubscribed && !u.SubscriptionExpired(now)
}

type SubscriptionStatus struct {
	IsSubscribed    bool
	SubscriptionEnd *time.Time
}

// SubscriptionWindowEnd returns the end of a one-month window starting at activatedAt
func SubscriptionWindowEnd(activatedAt time.Time) time.Time {
	return activatedAt.AddDate(0, 1, 0)
}
