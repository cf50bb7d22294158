package middleware

import (
	"context"
	"log"
	"net/http"
	"path"
	"strings"

	"todobackend/appctx"
	"todobackend/clients/identity"
	"todobackend/models"
)

// GateConfig describes which page routes need a signed-in caller and where callers
// are sent when they may not see a page.
type GateConfig struct {
	// ProtectedPaths are matched exactly, ignoring a trailing slash
	ProtectedPaths     []string
	AdminPrefix        string
	SignInPath         string
	DefaultLanding     string
	AdminLanding       string
	// BypassPrefixes are never gated, e.g. API routes which answer 401 themselves
	BypassPrefixes []string
}

func DefaultGateConfig() GateConfig {
	return GateConfig{
		ProtectedPaths:     []string{"/dashboard", "/admin/dashboard", "/"},
		AdminPrefix:        "/admin",
		SignInPath:         "/auth/signin",
		DefaultLanding:     "/dashboard",
		AdminLanding:       "/admin/dashboard",
		BypassPrefixes:     []string{"/api/", "/_next/", "/metrics", "/health"},
	}
}

var staticExtensions = map[string]struct{}{
	".html": {}, ".htm": {}, ".css": {}, ".js": {},
	".jpg": {}, ".jpeg": {}, ".webp": {}, ".png": {}, ".gif": {}, ".svg": {},
	".ttf": {}, ".woff": {}, ".woff2": {}, ".ico": {}, ".csv": {},
	".doc": {}, ".docx": {}, ".xls": {}, ".xlsx": {}, ".zip": {}, ".webmanifest": {},
}

// Decision is the outcome of gating one request. An empty Redirect means allow.
type Decision struct {
	Redirect string
}

func (d Decision) Allowed() bool {
	return d.Redirect == ""
}

func allow() Decision                   { return Decision{} }
func redirectTo(target string) Decision { return Decision{Redirect: target} }

type RouteGate struct {
	config    GateConfig
	provider  identity.Provider
	protected map[string]struct{}
}

func NewRouteGate(config GateConfig, provider identity.Provider) *RouteGate {
	protected := make(map[string]struct{}, len(config.ProtectedPaths))
	for _, p := range config.ProtectedPaths {
		protected[normalizePath(p)] = struct{}{}
	}
	return &RouteGate{config: config, provider: provider, protected: protected}
}

// Decide applies the redirect policy for urlPath. ident is nil for anonymous callers.
func (g *RouteGate) Decide(ctx context.Context, urlPath string, ident *models.Identity) Decision {
	urlPath = normalizePath(urlPath)
	isProtected := g.IsProtected(urlPath)

	if ident == nil {
		if isProtected {
			return redirectTo(g.config.SignInPath)
		}
		return allow()
	}

	role, err := g.provider.ResolveRole(ctx, ident)
	if err != nil {
		log.Printf("❌ Failed to resolve role for user %s: %v", ident.UserID, err)
		return redirectTo(g.config.SignInPath)
	}

	if role == models.RoleAdmin && urlPath == normalizePath(g.config.DefaultLanding) {
		return redirectTo(g.config.AdminLanding)
	}
	if role != models.RoleAdmin && strings.HasPrefix(urlPath, g.config.AdminPrefix) {
		return redirectTo(g.config.DefaultLanding)
	}
	// signed-in callers are kept off public-only pages such as sign-in
	if !isProtected {
		return redirectTo(g.config.DefaultLanding)
	}
	return allow()
}

func (g *RouteGate) IsProtected(urlPath string) bool {
	_, ok := g.protected[normalizePath(urlPath)]
	return ok
}

// Bypassed reports whether urlPath is outside the gate's scope
func (g *RouteGate) Bypassed(urlPath string) bool {
	for _, prefix := range g.config.BypassPrefixes {
		if strings.HasPrefix(urlPath, prefix) {
			return true
		}
	}
	_, static := staticExtensions[strings.ToLower(path.Ext(urlPath))]
	return static
}

// Middleware gates page requests. A present but invalid session token is treated
// as anonymous.
func (g *RouteGate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.Bypassed(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		var ident *models.Identity
		if token := ExtractSessionToken(r); token != "" {
			authenticated, err := g.provider.Authenticate(r.Context(), token)
			if err != nil {
				log.Printf("⚠️ Ignoring invalid session on %s: %v", r.URL.Path, err)
			} else {
				ident = authenticated
			}
		}

		decision := g.Decide(r.Context(), r.URL.Path, ident)
		if !decision.Allowed() {
			http.Redirect(w, r, decision.Redirect, http.StatusFound)
			return
		}
		if ident != nil {
			r = r.WithContext(appctx.SetIdentity(r.Context(), ident))
		}
		next.ServeHTTP(w, r)
	})
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			return "/"
		}
	}
	return p
}
