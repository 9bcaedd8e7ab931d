// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic  SecurityLevel = iota // No session needed
	SecuritySession                      // Logged-in session required
)

// RouteSecurityConfig maps dashboard routes ("METHOD /path/template") to
// their required security level. Unlisted routes require a session.
var RouteSecurityConfig = map[string]SecurityLevel{
	"GET /healthz":          SecurityPublic,
	"POST /api/auth/login":  SecurityPublic,
	"POST /api/auth/logout": SecurityPublic,

	"GET /api/auth/me":                    SecuritySession,
	"POST /api/auth/change-password":      SecuritySession,
	"GET /api/dashboard":                  SecuritySession,
	"GET /api/credits":                    SecuritySession,
	"POST /api/credits":                   SecuritySession,
	"POST /api/credits/{id}/receipt":      SecuritySession,
	"GET /api/receipts":                   SecuritySession,
	"GET /api/receipts/next-number":       SecuritySession,
	"GET /api/receipts/{serial}/pdf":      SecuritySession,
	"GET /api/expenses":                   SecuritySession,
	"POST /api/expenses":                  SecuritySession,
	"GET /api/items":                      SecuritySession,
	"POST /api/items":                     SecuritySession,
	"GET /api/distributions":              SecuritySession,
	"POST /api/distributions":             SecuritySession,
	"POST /api/distributions/{id}/return": SecuritySession,
	"POST /api/refresh":                   SecuritySession,
}

// RouteSecurity returns the level for a route, defaulting to SecuritySession.
func RouteSecurity(method, pathTemplate string) SecurityLevel {
	if level, ok := RouteSecurityConfig[method+" "+pathTemplate]; ok {
		return level
	}
	return SecuritySession
}
