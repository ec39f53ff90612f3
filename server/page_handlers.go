package server

import (
	"bytes"
	"net/http"

	"github.com/jrsteele09/stitch-smart/admin"
	"github.com/jrsteele09/stitch-smart/internal/utils"
	"github.com/jrsteele09/stitch-smart/users"
	"github.com/rs/zerolog/log"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"

	pageHome    = "home.html"
	pageLogin   = "login.html"
	pageOutputs = "outputs.html"
	pageAdmin   = "admin.html"
)

// PageData is the template model shared by every page
type PageData struct {
	AppName    string
	ActivePage string
	PageTitle  string
	User       *users.User // nil when signed out
	IsAdmin    bool
	Error      string
	Email      string // Preserve email on login error
	Admin      *AdminView
}

// AdminView is the dashboard model
type AdminView struct {
	Tab        string
	Stats      admin.Stats
	Growth     admin.Growth
	Breakdown  []admin.ActionCount
	Users      []admin.UserRow
	Activities []admin.FeedItem
}

var adminTabs = map[string]bool{"overview": true, "users": true, "activities": true}

func (s *Server) pageData(r *http.Request, activePage, title string) PageData {
	data := PageData{
		AppName:    s.appName,
		ActivePage: activePage,
		PageTitle:  title,
	}
	if user, ok := s.currentUser(r); ok {
		data.User = utils.Ptr(user)
		data.IsAdmin = user.IsAdministrator()
	}
	return data
}

func (s *Server) render(w http.ResponseWriter, page string, data PageData) {
	var buf bytes.Buffer
	if err := s.pages[page].Execute(&buf, data); err != nil {
		log.Err(err).Str("page", page).Msg("Failed to render template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	_, _ = buf.WriteTo(w)
}

// HomePageHandler renders the landing page, or the stitching workspace when signed in
func (s *Server) HomePageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, pageHome, s.pageData(r, "home", "Home"))
	}
}

// LoginPageHandler displays the login form (GET /login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := s.pageData(r, "login", "Sign in")
		data.Error = r.URL.Query().Get("error")
		data.Email = r.URL.Query().Get("email")
		s.render(w, pageLogin, data)
	}
}

func (s *Server) OutputsPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, pageOutputs, s.pageData(r, "outputs", "Your Creations"))
	}
}

// AdminDashboardHandler renders the dashboard. ?tab= selects overview, users or activities.
func (s *Server) AdminDashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tab := r.URL.Query().Get("tab")
		if !adminTabs[tab] {
			tab = "overview"
		}

		data := s.pageData(r, "admin", "Admin Dashboard")
		data.Admin = &AdminView{
			Tab:        tab,
			Stats:      s.aggregator.Stats(),
			Growth:     s.aggregator.UserGrowth(),
			Breakdown:  s.aggregator.ActionBreakdown(),
			Users:      s.aggregator.UserRows(),
			Activities: s.aggregator.ActivityFeed(),
		}
		s.render(w, pageAdmin, data)
	}
}
