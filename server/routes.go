package server

import "github.com/jrsteele09/stitch-smart/guard"

func (s *Server) initRoutes() {
	// Pages
	s.RegisterRouteHandler("GET "+RouteHome+"{$}", ChainMiddleware(s.HomePageHandler(), s.HTMLMiddleWare(s.RequireRoute(guard.RoutePublic))...))
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleWare(s.RequireRoute(guard.RoutePublicOnly))...))
	s.RegisterRouteHandler("GET "+RouteOutputs, ChainMiddleware(s.OutputsPageHandler(), s.HTMLMiddleWare(s.RequireRoute(guard.RouteAuthenticated))...))
	s.RegisterRouteHandler("GET "+RouteAdmin, ChainMiddleware(s.AdminDashboardHandler(), s.HTMLMiddleWare(s.RequireRoute(guard.RouteAdmin))...))

	// LOGIN
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	// API routes
	s.RegisterRouteHandler("GET "+RouteAPISession, ChainMiddleware(s.SessionAPIHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPIAdminStats, ChainMiddleware(s.AdminStatsAPIHandler(), s.APIMiddleware(s.RequireAPIRoute(guard.RouteAdmin))...))
	s.RegisterRouteHandler("GET "+RouteAPIAdminUsers, ChainMiddleware(s.AdminUsersAPIHandler(), s.APIMiddleware(s.RequireAPIRoute(guard.RouteAdmin))...))
	s.RegisterRouteHandler("GET "+RouteAPIAdminActivities, ChainMiddleware(s.AdminActivitiesAPIHandler(), s.APIMiddleware(s.RequireAPIRoute(guard.RouteAdmin))...))

	s.RegisterRouteHandler("GET "+RouteStaticCSS, ChainMiddleware(s.staticFileHandler(), s.StaticMiddleware()...))
}
