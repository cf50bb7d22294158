package api

import (
	"time"
)

// MessageResponse is the shape of every confirmation and error body
type MessageResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// TodoModel represents a todo returned by the API
type TodoModel struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateTodoRequest struct {
	Title string `json:"title"`
}

type ListTodosResponse struct {
	Todos       []*TodoModel `json:"todos"`
	CurrentPage int          `json:"currentPage"`
	TotalPages  int          `json:"totalPages"`
}

type SubscriptionStatusModel struct {
	IsSubscribed    bool       `json:"issubscribed"`
	SubscriptionEnd *time.Time `json:"subscriptionEnd"`
}

// UserModel represents the user data returned by the API
type UserModel struct {
	ID              string     `json:"id"`
	IsSubscribed    bool       `json:"issubscribed"`
	SubscriptionEnd *time.Time `json:"subscriptionEnd"`
	CreatedAt       time.Time  `json:"createdAt"`
}
