// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vidriera/internal/models"
)

func TestValidatePublication(t *testing.T) {
	cases := []struct {
		name        string
		title       string
		description string
		category    models.Category
		wantErr     bool
	}{
		{"valid", "Ventana corrediza", "En aluminio blanco", models.CategoryVentaneria, false},
		{"empty title", "", "d", models.CategoryVentaneria, true},
		{"whitespace title", "   ", "d", models.CategoryVentaneria, true},
		{"empty description", "t", "", models.CategoryVentaneria, true},
		{"unknown category", "t", "d", models.Category("Puertas"), true},
		{"empty category", "t", "d", models.Category(""), true},
		{"title too long", strings.Repeat("a", 201), "d", models.CategoryEspejos, true},
		{"description too long", "t", strings.Repeat("a", 2001), models.CategoryEspejos, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := validatePublication(tc.title, tc.description, tc.category)
			if (got != "") != tc.wantErr {
				t.Errorf("got %q, wantErr=%v", got, tc.wantErr)
			}
		})
	}
}

func TestValidatePublicationAllCategories(t *testing.T) {
	for _, c := range models.Categories {
		if got := validatePublication("t", "d", c); got != "" {
			t.Errorf("category %q rejected: %s", c, got)
		}
	}
}

func TestValidateSlide(t *testing.T) {
	cases := []struct {
		name     string
		title    string
		desc     string
		slogan   string
		imageURL string
		wantErr  bool
	}{
		{"valid", "Promo", "De temporada", "Calidad", "https://x.test/a.jpg", false},
		{"valid empty slogan", "Promo", "De temporada", "", "https://x.test/a.jpg", false},
		{"empty title", "", "d", "", "u", true},
		{"empty description", "t", "", "", "u", true},
		{"slogan too long", "t", "d", strings.Repeat("a", 201), "u", true},
		{"url too long", "t", "d", "", strings.Repeat("a", 2001), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := validateSlide(tc.title, tc.desc, tc.slogan, tc.imageURL)
			if (got != "") != tc.wantErr {
				t.Errorf("got %q, wantErr=%v", got, tc.wantErr)
			}
		})
	}
}

func TestValidateReview(t *testing.T) {
	cases := []struct {
		name    string
		content string
		rating  int
		wantErr bool
	}{
		{"valid min rating", "Bien.", 1, false},
		{"valid max rating", "Excelente.", 5, false},
		{"rating zero", "Bien.", 0, true},
		{"rating six", "Bien.", 6, true},
		{"rating negative", "Bien.", -3, true},
		{"empty content", "", 5, true},
		{"whitespace content", "   ", 5, true},
		{"content too long", strings.Repeat("a", 2001), 5, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := validateReview(tc.content, tc.rating)
			if (got != "") != tc.wantErr {
				t.Errorf("got %q, wantErr=%v", got, tc.wantErr)
			}
		})
	}
}

func TestValidateSignup(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		password string
		fullName string
		wantErr  bool
	}{
		{"valid", "a@b.test", "una-clave-larga", "Cliente", false},
		{"valid no name", "a@b.test", "una-clave-larga", "", false},
		{"no at sign", "invalido", "una-clave-larga", "", true},
		{"empty email", "", "una-clave-larga", "", true},
		{"short password", "a@b.test", "corta", "", true},
		{"long name", "a@b.test", "una-clave-larga", strings.Repeat("a", 201), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := validateSignup(tc.email, tc.password, tc.fullName)
			if (got != "") != tc.wantErr {
				t.Errorf("got %q, wantErr=%v", got, tc.wantErr)
			}
		})
	}
}

func TestPageParams(t *testing.T) {
	cases := []struct {
		query    string
		page     int
		pageSize int
	}{
		{"", 0, defaultPageSize},
		{"?page=2", 2, defaultPageSize},
		{"?page=2&page_size=5", 2, 5},
		{"?page=-1&page_size=0", 0, defaultPageSize},
		{"?page_size=10000", 0, maxPageSize},
		{"?page=abc", 0, defaultPageSize},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/publications"+tc.query, nil)
			page, pageSize := pageParams(r)
			if page != tc.page || pageSize != tc.pageSize {
				t.Errorf("got (%d, %d), want (%d, %d)", page, pageSize, tc.page, tc.pageSize)
			}
		})
	}
}
