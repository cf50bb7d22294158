package models

import (
	"time"
)

const (
	// TodoIDPrefix is the prefix of every generated todo id
	TodoIDPrefix = "td"

	// FreeTodoLimit is the number of todos a user without an active subscription may own
	FreeTodoLimit = 3

	TodosPageSize      = 10
	MaxTodoTitleLength = 500
)

type Todo struct {
	ID        string    `db:"id"         json:"id"`
	Title     string    `db:"title"      json:"title"`
	UserID    string    `db:"user_id"    json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type TodoPage struct {
	Todos       []*Todo
	CurrentPage int
	TotalPages  int
	TotalItems  int
}

// TotalPages returns ceil(totalItems / pageSize)
func TotalPages(totalItems, pageSize int) int {
	if totalItems <= 0 || pageSize <= 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}
