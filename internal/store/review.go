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

// ReviewStore handles customer reviews.
type ReviewStore struct {
	db *sql.DB
}

// NewReviewStore creates a new ReviewStore with the given database connection.
func NewReviewStore(db *sql.DB) *ReviewStore {
	return &ReviewStore{db: db}
}

// List returns one page of reviews ordered by creation date descending,
// each joined with the author's display name. Authors without a name on
// file appear as models.AnonymousAuthor.
func (s *ReviewStore) List(limit, offset int) ([]models.Review, error) {
	rows, err := s.db.Query(`
		SELECT r.id, r.user_id, r.content, r.rating, COALESCE(NULLIF(u.full_name, ''), $3), r.created_at
		FROM reviews r
		LEFT JOIN users u ON u.id = r.user_id
		ORDER BY r.created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset, models.AnonymousAuthor)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.UserID, &r.Content, &r.Rating, &r.AuthorName, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// Count returns the total number of reviews.
func (s *ReviewStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM reviews`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count reviews: %w", err)
	}
	return count, nil
}

// CountByUser returns how many reviews a user has submitted. Checked
// against the per-user cap before every insert.
func (s *ReviewStore) CountByUser(userID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM reviews WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count reviews by user: %w", err)
	}
	return count, nil
}

// FindByID retrieves a review by its UUID. Returns nil if not found.
func (s *ReviewStore) FindByID(id uuid.UUID) (*models.Review, error) {
	r := &models.Review{}
	err := s.db.QueryRow(`
		SELECT r.id, r.user_id, r.content, r.rating, COALESCE(NULLIF(u.full_name, ''), $2), r.created_at
		FROM reviews r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.id = $1
	`, id, models.AnonymousAuthor).Scan(&r.ID, &r.UserID, &r.Content, &r.Rating, &r.AuthorName, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find review by id: %w", err)
	}
	return r, nil
}

// Create inserts a new review and returns it with the generated ID.
func (s *ReviewStore) Create(userID uuid.UUID, content string, rating int) (*models.Review, error) {
	r := &models.Review{}
	err := s.db.QueryRow(`
		INSERT INTO reviews (user_id, content, rating)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, content, rating, created_at
	`, userID, content, rating).Scan(&r.ID, &r.UserID, &r.Content, &r.Rating, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return r, nil
}

// Delete removes a review by ID. Admin-only at the HTTP boundary.
func (s *ReviewStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
