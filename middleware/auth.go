package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"todobackend/appctx"
	"todobackend/clients/identity"
	"todobackend/models/api"
)

// SessionCookieName is the same-origin cookie the identity provider's frontend SDK
// stores the session token in.
const SessionCookieName = "__session"

// AuthMiddleware authenticates API requests and answers 401 JSON when the caller
// cannot be identified.
type AuthMiddleware struct {
	provider identity.Provider
}

func NewAuthMiddleware(provider identity.Provider) *AuthMiddleware {
	return &AuthMiddleware{provider: provider}
}

// WithAuth wraps an HTTP handler with session token authentication
func (m *AuthMiddleware) WithAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := ExtractSessionToken(r)
		if token == "" {
			log.Printf("❌ Missing session token for %s %s", r.Method, r.URL.Path)
			writeErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ident, err := m.provider.Authenticate(r.Context(), token)
		if err != nil {
			log.Printf("❌ Session token verification failed: %v", err)
			writeErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := appctx.SetIdentity(r.Context(), ident)
		next(w, r.WithContext(ctx))
	}
}

// ExtractSessionToken returns the bearer token from the Authorization header or,
// failing that, the session cookie. Other Authorization schemes are ignored. An empty
// string means no token was sent.
func ExtractSessionToken(r *http.Request) string {
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}

	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(api.MessageResponse{Message: message, Success: false}); err != nil {
		log.Printf("❌ Failed to encode error response: %v", err)
	}
}
