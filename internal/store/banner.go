// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"vidriera/internal/models"
)

// BannerStore handles the promotional banner slides.
type BannerStore struct {
	db *sql.DB
}

// NewBannerStore creates a new BannerStore with the given database connection.
func NewBannerStore(db *sql.DB) *BannerStore {
	return &BannerStore{db: db}
}

// List returns every slide, newest first. The set is capped at
// models.MaxBannerSlides at write time, so no pagination is needed.
func (s *BannerStore) List() ([]models.BannerSlide, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, slogan, image_url, created_at, updated_at
		FROM banner_slides
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list banner slides: %w", err)
	}
	defer rows.Close()

	var slides []models.BannerSlide
	for rows.Next() {
		var b models.BannerSlide
		if err := rows.Scan(&b.ID, &b.Title, &b.Description, &b.Slogan, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan banner slide: %w", err)
		}
		slides = append(slides, b)
	}
	return slides, rows.Err()
}

// Count returns the number of live slides. Checked before create to
// enforce the slide cap.
func (s *BannerStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM banner_slides`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count banner slides: %w", err)
	}
	return count, nil
}

// FindByID retrieves a slide by its UUID. Returns nil if not found.
func (s *BannerStore) FindByID(id uuid.UUID) (*models.BannerSlide, error) {
	b := &models.BannerSlide{}
	err := s.db.QueryRow(`
		SELECT id, title, description, slogan, image_url, created_at, updated_at
		FROM banner_slides WHERE id = $1
	`, id).Scan(&b.ID, &b.Title, &b.Description, &b.Slogan, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find banner slide by id: %w", err)
	}
	return b, nil
}

// Create inserts a new slide and returns it with the generated ID.
// The cap on live slides is the caller's check — this is a plain insert.
func (s *BannerStore) Create(title, description string, slogan *string, imageURL string) (*models.BannerSlide, error) {
	b := &models.BannerSlide{}
	err := s.db.QueryRow(`
		INSERT INTO banner_slides (title, description, slogan, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, description, slogan, image_url, created_at, updated_at
	`, title, description, slogan, imageURL).Scan(
		&b.ID, &b.Title, &b.Description, &b.Slogan, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create banner slide: %w", err)
	}
	return b, nil
}

// Update modifies an existing slide. Edits are exempt from the slide cap.
func (s *BannerStore) Update(id uuid.UUID, title, description string, slogan *string, imageURL string) error {
	res, err := s.db.Exec(`
		UPDATE banner_slides SET
			title = $1, description = $2, slogan = $3, image_url = $4, updated_at = NOW()
		WHERE id = $5
	`, title, description, slogan, imageURL, id)
	if err != nil {
		return fmt.Errorf("update banner slide: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a slide by ID.
func (s *BannerStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM banner_slides WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete banner slide: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
