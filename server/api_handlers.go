package server

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/stitch-smart/admin"
	"github.com/jrsteele09/stitch-smart/internal/utils"
	"github.com/jrsteele09/stitch-smart/users"
	"github.com/rs/zerolog/log"
)

const contentTypeJSON = "application/json; charset=utf-8"

// SessionResponse describes the current visitor
type SessionResponse struct {
	User            *users.User `json:"user"`
	IsAuthenticated bool        `json:"isAuthenticated"`
	IsAdmin         bool        `json:"isAdmin"`
}

// StatsResponse is the dashboard overview
type StatsResponse struct {
	admin.Stats
	Growth    admin.Growth        `json:"userGrowth"`
	Breakdown []admin.ActionCount `json:"activitySummary"`
}

func (s *Server) SessionAPIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		perms := s.permissions(r)
		resp := SessionResponse{
			IsAuthenticated: perms.IsAuthenticated,
			IsAdmin:         perms.IsAdmin,
		}
		if user, ok := s.currentUser(r); ok {
			resp.User = utils.Ptr(user)
		}
		writeJSON(w, resp, http.StatusOK)
	}
}

func (s *Server) AdminStatsAPIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, StatsResponse{
			Stats:     s.aggregator.Stats(),
			Growth:    s.aggregator.UserGrowth(),
			Breakdown: s.aggregator.ActionBreakdown(),
		}, http.StatusOK)
	}
}

func (s *Server) AdminUsersAPIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, s.aggregator.UserRows(), http.StatusOK)
	}
}

func (s *Server) AdminActivitiesAPIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, s.aggregator.ActivityFeed(), http.StatusOK)
	}
}

func writeJSON(w http.ResponseWriter, body any, statusCode int) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Err(err).Msg("Failed to encode JSON response")
	}
}

func writeJSONError(w http.ResponseWriter, errorCode, description string, statusCode int) {
	writeJSON(w, map[string]string{
		"error":             errorCode,
		"error_description": description,
	}, statusCode)
}
