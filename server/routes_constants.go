package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Pages
	RouteHome    = "/"
	RouteLogin   = "/login"
	RouteOutputs = "/outputs"
	RouteAdmin   = "/admin"

	// Auth Routes - Login & Logout
	RouteAuthLogin  = "/auth/login"
	RouteAuthLogout = "/auth/logout"

	// API Routes
	RouteAPISession         = "/api/session"
	RouteAPIAdminStats      = "/api/admin/stats"
	RouteAPIAdminUsers      = "/api/admin/users"
	RouteAPIAdminActivities = "/api/admin/activities"

	// Static Asset Routes (patterns)
	RouteStaticCSS = "/css/{file}"
)
