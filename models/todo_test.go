package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		totalItems int
		want       int
	}{
		{totalItems: 0, want: 0},
		{totalItems: 1, want: 1},
		{totalItems: 9, want: 1},
		{totalItems: 10, want: 1},
		{totalItems: 11, want: 2},
		{totalItems: 20, want: 2},
		{totalItems: 21, want: 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.totalItems, TodosPageSize), "totalItems=%d", tt.totalItems)
	}
}

func TestUser_HasActiveSubscription(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	tests := []struct {
		name    string
		user    User
		active  bool
		expired bool
	}{
		{name: "not subscribed", user: User{}, active: false, expired: false},
		{name: "subscribed with future end", user: User{IsSubscribed: true, SubscriptionEnd: &future}, active: true, expired: false},
		{name: "subscribed with elapsed end", user: User{IsSubscribed: true, SubscriptionEnd: &past}, active: false, expired: true},
		{name: "subscribed without end", user: User{IsSubscribed: true}, active: true, expired: false},
		{name: "flag cleared but end lingering", user: User{SubscriptionEnd: &past}, active: false, expired: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.active, tt.user.HasActiveSubscription(now))
			assert.Equal(t, tt.expired, tt.user.SubscriptionExpired(now))
		})
	}
}

func TestSubscriptionWindowEnd(t *testing.T) {
	start := time.Date(2026, 1, 15, 8, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 2, 15, 8, 30, 0, 0, time.UTC), SubscriptionWindowEnd(start))
}
