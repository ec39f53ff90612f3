package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/stitch-smart/admin"
	"github.com/jrsteele09/stitch-smart/auth"
	"github.com/jrsteele09/stitch-smart/internal/config"
	"github.com/jrsteele09/stitch-smart/sessions"
)

// Server is the HTTP front end for a single client. All requests share the
// one session held by the manager.
type Server struct {
	env        string // Environment (e.g., "DEV", "PROD")
	appName    string
	mux        *http.ServeMux
	routes     []string
	manager    *sessions.Manager
	aggregator *admin.Aggregator
	validator  *auth.Validator
	pages      map[string]*pageTemplate
}

func New(cfg config.EnvConfig, manager *sessions.Manager, aggregator *admin.Aggregator) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("[Server New] config is required")
	}
	if manager == nil {
		return nil, fmt.Errorf("[Server New] session manager is required")
	}
	if aggregator == nil {
		return nil, fmt.Errorf("[Server New] admin aggregator is required")
	}

	s := &Server{
		env:        cfg.GetEnv(),
		appName:    cfg.GetAppName(),
		mux:        http.NewServeMux(),
		manager:    manager,
		aggregator: aggregator,
		validator:  auth.NewValidator(),
		pages:      make(map[string]*pageTemplate),
	}

	for _, name := range []string{pageHome, pageLogin, pageOutputs, pageAdmin} {
		tmpl, err := parsePage(name)
		if err != nil {
			return nil, fmt.Errorf("[Server New] failed to parse %s: %w", name, err)
		}
		s.pages[name] = tmpl
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}
