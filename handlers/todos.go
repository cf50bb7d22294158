package handlers

import (
	"encoding/json"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"todobackend/appctx"
	"todobackend/models/api"
	"todobackend/services"
)

const maxRequestBodyBytes = 1 << 20

type TodosHandler struct {
	todosService services.TodosService
	reporter     ErrorReporter
}

func NewTodosHandler(todosService services.TodosService, reporter ErrorReporter) *TodosHandler {
	return &TodosHandler{
		todosService: todosService,
		reporter:     reporterOrNoop(reporter),
	}
}

func (h *TodosHandler) HandleListTodos(w http.ResponseWriter, r *http.Request) {
	ident, ok := appctx.GetIdentity(r.Context())
	if !ok {
		writeMessageResponse(w, http.StatusUnauthorized, "Unauthorized", false)
		return
	}

	query := r.URL.Query()
	page := parsePage(query.Get("page"))
	search := query.Get("search")

	todoPage, err := h.todosService.ListTodos(r.Context(), ident.UserID, page, search)
	if err != nil {
		writeServiceError(w, r, h.reporter, err, errorMessages{Internal: "Server error while reading todos"})
		return
	}

	writeJSONResponse(w, http.StatusOK, api.DomainTodoPageToAPIListTodos(todoPage))
}

func (h *TodosHandler) HandleCreateTodo(w http.ResponseWriter, r *http.Request) {
	log.Printf("➕ Create todo request received from %s", r.RemoteAddr)

	ident, ok := appctx.GetIdentity(r.Context())
	if !ok {
		writeMessageResponse(w, http.StatusUnauthorized, "Unauthorized", false)
		return
	}

	var req api.CreateTodoRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(&req); err != nil {
		log.Printf("❌ Failed to parse request body: %v", err)
		writeMessageResponse(w, http.StatusBadRequest, "Invalid request body", false)
		return
	}

	todo, err := h.todosService.CreateTodo(r.Context(), ident.UserID, req.Title)
	if err != nil {
		writeServiceError(w, r, h.reporter, err, errorMessages{
			NotFound: "User not found",
			Internal: "Server error while creating the todo",
		})
		return
	}

	writeJSONResponse(w, http.StatusCreated, api.DomainTodoToAPITodo(todo))
}

func (h *TodosHandler) HandleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	log.Printf("🗑️ Delete todo request received from %s", r.RemoteAddr)

	ident, ok := appctx.GetIdentity(r.Context())
	if !ok {
		writeMessageResponse(w, http.StatusUnauthorized, "Unauthorized", false)
		return
	}

	todoID := mux.Vars(r)["id"]
	if err := h.todosService.DeleteTodo(r.Context(), ident.UserID, todoID); err != nil {
		writeServiceError(w, r, h.reporter, err, errorMessages{
			NotFound:  "Todo not found",
			Forbidden: "Forbidden",
			Internal:  "Server error while deleting the todo",
		})
		return
	}

	writeMessageResponse(w, http.StatusOK, "Todo deleted successfully", true)
}

func (h *TodosHandler) SetupEndpoints(router *mux.Router, wrap Wrapper) {
	log.Printf("🚀 Registering todo API endpoints")

	router.HandleFunc("/todos", wrap(h.HandleListTodos)).Methods("GET")
	log.Printf("✅ GET /todos endpoint registered")

	router.HandleFunc("/todos", wrap(h.HandleCreateTodo)).Methods("POST")
	log.Printf("✅ POST /todos endpoint registered")

	router.HandleFunc("/todos/{id}", wrap(h.HandleDeleteTodo)).Methods("DELETE")
	log.Printf("✅ DELETE /todos/{id} endpoint registered")
}

// parsePage reads a 1-indexed page number. Missing, malformed and non-positive
// values mean the first page.
func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	if page > math.MaxInt32 {
		return math.MaxInt32
	}
	return page
}
