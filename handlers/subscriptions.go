package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"todobackend/appctx"
	"todobackend/models/api"
	"todobackend/services"
)

type SubscriptionsHandler struct {
	subscriptionsService services.SubscriptionsService
	reporter             ErrorReporter
}

func NewSubscriptionsHandler(subscriptionsService services.SubscriptionsService, reporter ErrorReporter) *SubscriptionsHandler {
	return &SubscriptionsHandler{
		subscriptionsService: subscriptionsService,
		reporter:             reporterOrNoop(reporter),
	}
}

func (h *SubscriptionsHandler) HandleActivateSubscription(w http.ResponseWriter, r *http.Request) {
	log.Printf("💳 Subscription activation request received from %s", r.RemoteAddr)

	ident, ok := appctx.GetIdentity(r.Context())
	if !ok {
		writeMessageResponse(w, http.StatusUnauthorized, "Unauthorized", false)
		return
	}

	if _, err := h.subscriptionsService.ActivateSubscription(r.Context(), ident.UserID); err != nil {
		writeServiceError(w, r, h.reporter, err, errorMessages{
			NotFound: "User not found",
			Internal: "Server error while subscribing",
		})
		return
	}

	writeMessageResponse(w, http.StatusCreated, "Subscription successfully completed", true)
}

func (h *SubscriptionsHandler) HandleGetSubscriptionStatus(w http.ResponseWriter, r *http.Request) {
	ident, ok := appctx.GetIdentity(r.Context())
	if !ok {
		writeMessageResponse(w, http.StatusUnauthorized, "Unauthorized", false)
		return
	}

	status, err := h.subscriptionsService.GetSubscriptionStatus(r.Context(), ident.UserID)
	if err != nil {
		writeServiceError(w, r, h.reporter, err, errorMessages{
			NotFound: "User not found",
			Internal: "Server error while reading the subscription",
		})
		return
	}

	writeJSONResponse(w, http.StatusOK, api.DomainSubscriptionStatusToAPI(status))
}

func (h *SubscriptionsHandler) SetupEndpoints(router *mux.Router, wrap Wrapper) {
	log.Printf("🚀 Registering subscription API endpoints")

	router.HandleFunc("/subscription", wrap(h.HandleActivateSubscription)).Methods("POST")
	log.Printf("✅ POST /subscription endpoint registered")

	router.HandleFunc("/subscription", wrap(h.HandleGetSubscriptionStatus)).Methods("GET")
	log.Printf("✅ GET /subscription endpoint registered")
}
