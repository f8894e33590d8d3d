// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"vidriera/internal/models"
)

func TestPublicationsList(t *testing.T) {
	env := newTestEnv(t)

	title := "Lista pública " + uuid.NewString()[:8]
	pub, err := env.Publications.Create(title, "Ventana de prueba", models.CategoryVentaneria)
	if err != nil {
		t.Fatalf("create publication: %v", err)
	}
	t.Cleanup(func() { env.DB.Exec("DELETE FROM publications WHERE id = $1", pub.ID) })

	req := httptest.NewRequest(http.MethodGet, "/api/publications?page=0&page_size=5", nil)
	rec := httptest.NewRecorder()
	env.Public.PublicationsList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var resp struct {
		Items []models.Publication `json:"items"`
		Total int                  `json:"total"`
	}
	decodeJSON(t, rec.Body, &resp)

	if len(resp.Items) == 0 {
		t.Fatal("expected at least one publication")
	}
	if len(resp.Items) > 5 {
		t.Errorf("page size not applied: got %d items", len(resp.Items))
	}
	if resp.Total < 1 {
		t.Errorf("total: got %d, want at least 1", resp.Total)
	}
}

func TestCategoriesFixedList(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	rec := httptest.NewRecorder()
	env.Public.Categories(rec, req)

	var resp struct {
		Categories []models.Category `json:"categories"`
	}
	decodeJSON(t, rec.Body, &resp)

	if len(resp.Categories) != 5 {
		t.Fatalf("got %d categories, want 5", len(resp.Categories))
	}
	if resp.Categories[0] != models.CategoryVentaneria {
		t.Errorf("first category: got %q", resp.Categories[0])
	}
}

func TestBannerListPublic(t *testing.T) {
	env := newTestEnv(t)

	title := "Slide público " + uuid.NewString()[:8]
	slide, err := env.Banner.Create(title, "d", nil, "https://cdn.example.test/s.jpg")
	if err != nil {
		t.Fatalf("create slide: %v", err)
	}
	t.Cleanup(func() { env.DB.Exec("DELETE FROM banner_slides WHERE id = $1", slide.ID) })

	req := httptest.NewRequest(http.MethodGet, "/api/banner", nil)
	rec := httptest.NewRecorder()
	env.Public.BannerList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var resp struct {
		Slides []models.BannerSlide `json:"slides"`
	}
	decodeJSON(t, rec.Body, &resp)
	if len(resp.Slides) == 0 {
		t.Error("expected at least one slide")
	}
}

func TestReviewSubmitRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/reviews",
		jsonBody(t, map[string]any{"content": "Muy bueno", "rating": 5}))
	rec := httptest.NewRecorder()
	env.Public.ReviewSubmit(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestReviewSubmitInvalidRating(t *testing.T) {
	env := newTestEnv(t)
	u := env.testUser(t, models.RoleUser, "Cliente")

	for _, rating := range []int{0, 6, -1} {
		req := httptest.NewRequest(http.MethodPost, "/api/reviews",
			jsonBody(t, map[string]any{"content": "Muy bueno", "rating": rating}))
		req = req.WithContext(ctxWithSession(req.Context(), sessionFor(u, true)))
		rec := httptest.NewRecorder()
		env.Public.ReviewSubmit(rec, req)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("rating %d: got status %d, want 422", rating, rec.Code)
		}
	}
}

func TestReviewSubmitAndCap(t *testing.T) {
	env := newTestEnv(t)
	u := env.testUser(t, models.RoleUser, "Cliente Fiel")
	t.Cleanup(func() { env.DB.Exec("DELETE FROM reviews WHERE user_id = $1", u.ID) })

	submit := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/reviews",
			jsonBody(t, map[string]any{"content": "Trabajo impecable.", "rating": 5}))
		req = req.WithContext(ctxWithSession(req.Context(), sessionFor(u, true)))
		rec := httptest.NewRecorder()
		env.Public.ReviewSubmit(rec, req)
		return rec
	}

	// The test env caps reviews at 2 per account.
	for i := 0; i < 2; i++ {
		rec := submit()
		if rec.Code != http.StatusCreated {
			t.Fatalf("submit %d: got status %d, want 201: %s", i, rec.Code, rec.Body.String())
		}
	}

	rec := submit()
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("over cap: got status %d, want 429", rec.Code)
	}

	// The refused submission must not have been written.
	count, err := env.Reviews.CountByUser(u.ID)
	if err != nil {
		t.Fatalf("CountByUser: %v", err)
	}
	if count != 2 {
		t.Errorf("reviews written: got %d, want 2", count)
	}
}

func TestReviewSubmitResolvesAuthor(t *testing.T) {
	env := newTestEnv(t)
	u := env.testUser(t, models.RoleUser, "")
	t.Cleanup(func() { env.DB.Exec("DELETE FROM reviews WHERE user_id = $1", u.ID) })

	req := httptest.NewRequest(http.MethodPost, "/api/reviews",
		jsonBody(t, map[string]any{"content": "Sin nombre registrado.", "rating": 4}))
	req = req.WithContext(ctxWithSession(req.Context(), sessionFor(u, true)))
	rec := httptest.NewRecorder()
	env.Public.ReviewSubmit(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201", rec.Code)
	}

	var review models.Review
	decodeJSON(t, rec.Body, &review)
	if review.AuthorName != models.AnonymousAuthor {
		t.Errorf("author: got %q, want %q", review.AuthorName, models.AnonymousAuthor)
	}
}

func TestReviewsListPublic(t *testing.T) {
	env := newTestEnv(t)
	u := env.testUser(t, models.RoleUser, "Cliente")

	r, err := env.Reviews.Create(u.ID, "Listado de opiniones.", 5)
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	t.Cleanup(func() { env.DB.Exec("DELETE FROM reviews WHERE id = $1", r.ID) })

	req := httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	rec := httptest.NewRecorder()
	env.Public.ReviewsList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var resp struct {
		Items []models.Review `json:"items"`
		Total int             `json:"total"`
	}
	decodeJSON(t, rec.Body, &resp)
	if len(resp.Items) == 0 {
		t.Error("expected at least one review")
	}
}
