package main

import (
	"net/http"

	"github.com/HammerMeetNail/tripboard/internal/handlers"
	"github.com/HammerMeetNail/tripboard/internal/middleware"
)

type server struct {
	health   *handlers.HealthHandler
	auth     *handlers.AuthHandler
	trip     *handlers.TripHandler
	activity *handlers.ActivityHandler
	reaction *handlers.ReactionHandler
	comment  *handlers.CommentHandler
	invite   *handlers.InviteHandler

	authMiddleware     *middleware.AuthMiddleware
	requestLogger      *middleware.RequestLogger
	joinLimiter        *middleware.RateLimiter
	inviteEmailLimiter *middleware.RateLimiter
}

func (s *server) routes() http.Handler {
	requireAuth := func(h http.HandlerFunc) http.Handler {
		return s.authMiddleware.RequireAuth(h)
	}

	mux := http.NewServeMux()

	// Health endpoints (no auth, no rate limit)
	mux.HandleFunc("GET /health", s.health.Health)
	mux.HandleFunc("GET /ready", s.health.Ready)
	mux.HandleFunc("GET /live", s.health.Live)

	// Auth endpoints
	mux.Handle("POST /api/auth/join", s.joinLimiter.Middleware(http.HandlerFunc(s.auth.Join)))
	mux.Handle("GET /api/auth/me", requireAuth(s.auth.Me))
	mux.HandleFunc("POST /api/auth/logout", s.auth.Logout)

	// Trip snapshot
	mux.Handle("GET /api/trip", requireAuth(s.trip.Get))
	mux.Handle("POST /api/trip", requireAuth(s.trip.Replace))

	// Activities
	mux.Handle("GET /api/activities", requireAuth(s.activity.List))
	mux.Handle("POST /api/activities", requireAuth(s.activity.Create))
	mux.Handle("PATCH /api/activities/{id}", requireAuth(s.activity.Update))
	mux.Handle("DELETE /api/activities/{id}", requireAuth(s.activity.Delete))

	// Reactions and votes
	mux.Handle("POST /api/likes", requireAuth(s.reaction.ToggleLike))
	mux.Handle("POST /api/activities/{id}/reactions", requireAuth(s.reaction.ToggleReaction))
	mux.Handle("GET /api/reactions/emojis", requireAuth(s.reaction.GetAllowedEmojis))
	mux.Handle("POST /api/votes", requireAuth(s.reaction.CastVote))
	mux.Handle("DELETE /api/votes", requireAuth(s.reaction.RemoveVote))

	// Comments
	mux.Handle("POST /api/comments", requireAuth(s.comment.Add))
	mux.Handle("PATCH /api/comments", requireAuth(s.comment.Edit))
	mux.Handle("DELETE /api/comments", requireAuth(s.comment.Delete))

	// Invites
	mux.Handle("GET /api/invite", requireAuth(s.invite.Link))
	mux.Handle("POST /api/invite/email", s.authMiddleware.RequireAuth(s.inviteEmailLimiter.Middleware(http.HandlerFunc(s.invite.Email))))

	// Build middleware chain (order matters: outermost first)
	var handler http.Handler = mux
	handler = s.authMiddleware.Authenticate(handler)
	handler = middleware.NoStore(handler)
	handler = s.requestLogger.Apply(handler)
	return handler
}
