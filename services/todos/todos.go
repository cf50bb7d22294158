package todos

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"todobackend/core"
	"todobackend/db"
	"todobackend/metrics"
	"todobackend/models"
	"todobackend/services"
)

type TodosService struct {
	todosRepo db.TodosRepository
	usersRepo db.UsersRepository
	txManager services.TransactionManager
	metrics   metrics.Recorder
	now       func() time.Time
}

func NewTodosService(
	todosRepo db.TodosRepository,
	usersRepo db.UsersRepository,
	txManager services.TransactionManager,
	recorder metrics.Recorder,
) *TodosService {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &TodosService{
		todosRepo: todosRepo,
		usersRepo: usersRepo,
		txManager: txManager,
		metrics:   recorder,
		now:       time.Now,
	}
}

// ListTodos returns one page of the caller's todos, newest first, filtered by a
// case-insensitive title substring. Pages are 1-indexed; anything below 1 is page 1.
func (s *TodosService) ListTodos(ctx context.Context, userID string, page int, search string) (*models.TodoPage, error) {
	log.Printf("📋 Starting to list todos for user: %s (page: %d, search: %q)", userID, page, search)

	if userID == "" {
		return nil, fmt.Errorf("user_id cannot be empty: %w", core.ErrInvalidInput)
	}
	if page < 1 {
		page = 1
	}

	offset := (page - 1) * models.TodosPageSize
	todos, err := s.todosRepo.ListTodosByUserID(ctx, userID, search, models.TodosPageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	total, err := s.todosRepo.CountTodosByUserID(ctx, userID, search)
	if err != nil {
		return nil, fmt.Errorf("failed to count todos: %w", err)
	}

	result := &models.TodoPage{
		Todos:       todos,
		CurrentPage: page,
		TotalPages:  models.TotalPages(total, models.TodosPageSize),
		TotalItems:  total,
	}

	log.Printf("📋 Completed successfully - listed %d of %d todos for user: %s", len(todos), total, userID)
	return result, nil
}

// CreateTodo inserts a todo for the caller. The caller's user row is locked for the
// duration of the quota check so concurrent creates cannot overshoot the free tier.
func (s *TodosService) CreateTodo(ctx context.Context, userID, title string) (*models.Todo, error) {
	log.Printf("📋 Starting to create todo for user: %s", userID)

	if userID == "" {
		return nil, fmt.Errorf("user_id cannot be empty: %w", core.ErrInvalidInput)
	}

	title, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}

	var todo *models.Todo
	err = s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		maybeUser, err := s.usersRepo.GetUserByID(ctx, userID, true)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		user, ok := maybeUser.Get()
		if !ok {
			return fmt.Errorf("user %s: %w", userID, core.ErrNotFound)
		}

		if !user.HasActiveSubscription(s.now()) {
			count, err := s.todosRepo.CountTodosByUserID(ctx, userID, "")
			if err != nil {
				return fmt.Errorf("failed to count todos: %w", err)
			}
			if count >= models.FreeTodoLimit {
				s.metrics.RecordQuotaRejected()
				return fmt.Errorf("user %s already has %d todos: %w", userID, count, core.ErrQuotaExceeded)
			}
		}

		todo, err = s.todosRepo.CreateTodo(ctx, userID, title)
		if err != nil {
			return fmt.Errorf("failed to create todo: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordTodoCreated()
	log.Printf("📋 Completed successfully - created todo with ID: %s", todo.ID)
	return todo, nil
}

// DeleteTodo removes one of the caller's todos. Unknown ids are ErrNotFound and
// todos owned by someone else are ErrForbidden.
func (s *TodosService) DeleteTodo(ctx context.Context, userID, todoID string) error {
	log.Printf("📋 Starting to delete todo %s for user: %s", todoID, userID)

	if userID == "" {
		return fmt.Errorf("user_id cannot be empty: %w", core.ErrInvalidInput)
	}
	if !core.HasIDPrefix(todoID, models.TodoIDPrefix) {
		return fmt.Errorf("todo %s: %w", todoID, core.ErrNotFound)
	}

	maybeTodo, err := s.todosRepo.GetTodoByID(ctx, todoID)
	if err != nil {
		return fmt.Errorf("failed to get todo: %w", err)
	}
	todo, ok := maybeTodo.Get()
	if !ok {
		return fmt.Errorf("todo %s: %w", todoID, core.ErrNotFound)
	}
	if todo.UserID != userID {
		return fmt.Errorf("todo %s belongs to another user: %w", todoID, core.ErrForbidden)
	}

	deleted, err := s.todosRepo.DeleteTodoByID(ctx, todoID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	if !deleted {
		// removed by a concurrent request
		return fmt.Errorf("todo %s: %w", todoID, core.ErrNotFound)
	}

	s.metrics.RecordTodoDeleted()
	log.Printf("📋 Completed successfully - deleted todo: %s", todoID)
	return nil
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("title is required: %w", core.ErrInvalidInput)
	}
	if utf8.RuneCountInString(title) > models.MaxTodoTitleLength {
		return "", fmt.Errorf("title must be at most %d characters: %w", models.MaxTodoTitleLength, core.ErrInvalidInput)
	}
	return title, nil
}
