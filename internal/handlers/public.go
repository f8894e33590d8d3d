// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"vidriera/internal/middleware"
	"vidriera/internal/models"
	"vidriera/internal/store"
)

// Public groups the handlers behind the visitor-facing endpoints. List
// endpoints degrade to an empty collection when the store fails, so the
// frontend always has something to render.
type Public struct {
	publications *store.PublicationStore
	banner       *store.BannerStore
	reviews      *store.ReviewStore
	reviewLimit  int
}

// NewPublic creates the public handler group. reviewLimit is the
// per-account cap on published reviews.
func NewPublic(publications *store.PublicationStore, banner *store.BannerStore, reviews *store.ReviewStore, reviewLimit int) *Public {
	return &Public{
		publications: publications,
		banner:       banner,
		reviews:      reviews,
		reviewLimit:  reviewLimit,
	}
}

// PublicationsList returns a page of catalog items, newest first, each
// with its attached images.
func (p *Public) PublicationsList(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	items, err := p.publications.List(pageSize, page*pageSize)
	if err != nil {
		slog.Error("list publications failed", "error", err)
		writeJSON(w, http.StatusOK, listResponse{Items: []*models.Publication{}, Total: 0})
		return
	}

	total, err := p.publications.Count()
	if err != nil {
		slog.Error("count publications failed", "error", err)
		total = len(items)
	}

	writeJSON(w, http.StatusOK, listResponse{Items: items, Total: total})
}

// Categories returns the fixed catalog categories, in display order.
func (p *Public) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"categories": models.Categories})
}

// BannerList returns every banner slide, newest first. The collection
// is capped at creation time so this never exceeds the slide limit.
func (p *Public) BannerList(w http.ResponseWriter, r *http.Request) {
	slides, err := p.banner.List()
	if err != nil {
		slog.Error("list banner slides failed", "error", err)
		writeJSON(w, http.StatusOK, map[string]any{"slides": []*models.BannerSlide{}})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"slides": slides})
}

// ReviewsList returns a page of customer reviews, newest first, with
// author names already resolved.
func (p *Public) ReviewsList(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	items, err := p.reviews.List(pageSize, page*pageSize)
	if err != nil {
		slog.Error("list reviews failed", "error", err)
		writeJSON(w, http.StatusOK, listResponse{Items: []*models.Review{}, Total: 0})
		return
	}

	total, err := p.reviews.Count()
	if err != nil {
		slog.Error("count reviews failed", "error", err)
		total = len(items)
	}

	writeJSON(w, http.StatusOK, listResponse{Items: items, Total: total})
}

// ReviewSubmit publishes a review for the signed-in visitor. Each
// account gets a fixed number of reviews; once the cap is hit the
// request is refused before anything is written.
func (p *Public) ReviewSubmit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, "Debes iniciar sesión para dejar una opinión.", http.StatusUnauthorized)
		return
	}

	var req struct {
		Content string `json:"content"`
		Rating  int    `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Solicitud no válida.", http.StatusBadRequest)
		return
	}

	if errMsg := validateReview(req.Content, req.Rating); errMsg != "" {
		writeError(w, errMsg, http.StatusUnprocessableEntity)
		return
	}

	count, err := p.reviews.CountByUser(sess.UserID)
	if err != nil {
		slog.Error("count reviews by user failed", "error", err)
		writeError(w, "Ocurrió un error inesperado.", http.StatusInternalServerError)
		return
	}
	if count >= p.reviewLimit {
		writeError(w, "Ya alcanzaste el límite de opiniones publicadas.", http.StatusTooManyRequests)
		return
	}

	review, err := p.reviews.Create(sess.UserID, strings.TrimSpace(req.Content), req.Rating)
	if err != nil {
		slog.Error("create review failed", "error", err)
		writeError(w, "Error al publicar tu opinión.", http.StatusInternalServerError)
		return
	}

	review.AuthorName = sess.FullName
	if review.AuthorName == "" {
		review.AuthorName = models.AnonymousAuthor
	}

	writeJSON(w, http.StatusCreated, review)
}
