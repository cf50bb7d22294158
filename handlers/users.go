package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"todobackend/appctx"
	"todobackend/models/api"
	"todobackend/services"
)

type UsersHandler struct {
	usersService services.UsersService
	reporter     ErrorReporter
}

func NewUsersHandler(usersService services.UsersService, reporter ErrorReporter) *UsersHandler {
	return &UsersHandler{
		usersService: usersService,
		reporter:     reporterOrNoop(reporter),
	}
}

// HandleSyncUser records the signed-in caller in the users table. The frontend calls
// it once after sign-in.
func (h *UsersHandler) HandleSyncUser(w http.ResponseWriter, r *http.Request) {
	log.Printf("🔐 User sync request received from %s", r.RemoteAddr)

	ident, ok := appctx.GetIdentity(r.Context())
	if !ok {
		writeMessageResponse(w, http.StatusUnauthorized, "Unauthorized", false)
		return
	}

	user, err := h.usersService.GetOrCreateUser(r.Context(), ident.UserID)
	if err != nil {
		writeServiceError(w, r, h.reporter, err, errorMessages{
			NotFound: "User not found",
			Internal: "Server error while syncing the user",
		})
		return
	}

	writeJSONResponse(w, http.StatusOK, api.DomainUserToAPIUser(user))
}

func (h *UsersHandler) SetupEndpoints(router *mux.Router, wrap Wrapper) {
	log.Printf("🚀 Registering user API endpoints")

	router.HandleFunc("/users/sync", wrap(h.HandleSyncUser)).Methods("POST")
	log.Printf("✅ POST /users/sync endpoint registered")
}
