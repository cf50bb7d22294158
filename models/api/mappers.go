package api

import "todobackend/models"

// DomainUserToAPIUser converts a domain User model to an API UserModel
func DomainUserToAPIUser(domainUser *models.User) *UserModel {
	if domainUser == nil {
		return nil
	}

	return &UserModel{
		ID:              domainUser.ID,
		IsSubscribed:    domainUser.IsSubscribed,
		SubscriptionEnd: domainUser.SubscriptionEnd,
		CreatedAt:       domainUser.CreatedAt,
	}
}

// DomainTodoToAPITodo converts a domain Todo model to an API TodoModel
func DomainTodoToAPITodo(domainTodo *models.Todo) *TodoModel {
	if domainTodo == nil {
		return nil
	}

	return &TodoModel{
		ID:        domainTodo.ID,
		Title:     domainTodo.Title,
		UserID:    domainTodo.UserID,
		CreatedAt: domainTodo.CreatedAt,
	}
}

// DomainTodosToAPITodos converts a slice of domain todos; the result is never nil
// so it encodes as [] rather than null.
func DomainTodosToAPITodos(domainTodos []*models.Todo) []*TodoModel {
	apiTodos := make([]*TodoModel, 0, len(domainTodos))
	for _, todo := range domainTodos {
		apiTodos = append(apiTodos, DomainTodoToAPITodo(todo))
	}
	return apiTodos
}

func DomainTodoPageToAPIListTodos(page *models.TodoPage) *ListTodosResponse {
	return &ListTodosResponse{
		Todos:       DomainTodosToAPITodos(page.Todos),
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
	}
}

func DomainSubscriptionStatusToAPI(status *models.SubscriptionStatus) *SubscriptionStatusModel {
	return &SubscriptionStatusModel{
		IsSubscribed:    status.IsSubscribed,
		SubscriptionEnd: status.SubscriptionEnd,
	}
}
