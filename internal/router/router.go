// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router wires the HTTP routes and middleware chains.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"vidriera/internal/handlers"
	"vidriera/internal/middleware"
	"vidriera/internal/session"
	"vidriera/internal/store"
)

// Deps carries everything the router needs. All fields are required
// except the rate limiters, which default to off when nil.
type Deps struct {
	Sessions *session.Store
	Users    *store.UserStore

	Auth   *handlers.Auth
	Public *handlers.Public
	Admin  *handlers.Admin

	// LoginLimiter throttles credential guessing; WriteLimiter throttles
	// public submissions (reviews, signups, reset requests).
	LoginLimiter *middleware.RateLimiter
	WriteLimiter *middleware.RateLimiter
}

// New builds the route tree. The chain order matters: sessions load
// before CSRF and auth checks, and the admin gate re-checks the role in
// the store on every request.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(deps.Sessions))
	r.Use(middleware.CSRF)

	r.Get("/health", healthHandler)

	throttleLogin := passthrough
	if deps.LoginLimiter != nil {
		throttleLogin = deps.LoginLimiter.Middleware
	}
	throttleWrites := passthrough
	if deps.WriteLimiter != nil {
		throttleWrites = deps.WriteLimiter.Middleware
	}

	// Public site API.
	r.Route("/api", func(r chi.Router) {
		r.Get("/publications", deps.Public.PublicationsList)
		r.Get("/categories", deps.Public.Categories)
		r.Get("/banner", deps.Public.BannerList)
		r.Get("/reviews", deps.Public.ReviewsList)
		r.With(throttleWrites).Post("/reviews", deps.Public.ReviewSubmit)

		r.Route("/auth", func(r chi.Router) {
			r.With(throttleWrites).Post("/signup", deps.Auth.Signup)
			r.With(throttleLogin).Post("/login", deps.Auth.Login)
			r.Post("/logout", deps.Auth.Logout)
			r.Get("/me", deps.Auth.Me)
			r.With(throttleWrites).Post("/reset-password", deps.Auth.ResetPasswordRequest)
			r.With(throttleLogin).Post("/reset-password/confirm", deps.Auth.ResetPasswordConfirm)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Get("/profile", deps.Auth.Profile)
				r.Put("/profile", deps.Auth.ProfileUpdate)
				r.Post("/2fa/setup", deps.Auth.TwoFASetup)
				r.With(throttleLogin).Post("/2fa/verify", deps.Auth.TwoFAVerify)
			})
		})
	})

	// Admin API. The whole subtree sits behind the full gate: a live
	// session, completed 2FA, and a fresh admin-role check.
	r.Route("/admin/api", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.Require2FA)
		r.Use(middleware.RequireAdmin(deps.Users))

		r.Get("/dashboard", deps.Admin.Dashboard)

		r.Post("/publications", deps.Admin.PublicationCreate)
		r.Put("/publications/{id}", deps.Admin.PublicationUpdate)
		r.Delete("/publications/{id}", deps.Admin.PublicationDelete)

		r.Post("/banner", deps.Admin.BannerCreate)
		r.Put("/banner/{id}", deps.Admin.BannerUpdate)
		r.Delete("/banner/{id}", deps.Admin.BannerDelete)

		r.Delete("/reviews/{id}", deps.Admin.ReviewDelete)
	})

	return r
}

// healthHandler answers liveness probes.
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func passthrough(next http.Handler) http.Handler { return next }
