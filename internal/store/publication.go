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

// PublicationStore handles catalog publications and their attached images.
type PublicationStore struct {
	db *sql.DB
}

// NewPublicationStore creates a new PublicationStore with the given database connection.
func NewPublicationStore(db *sql.DB) *PublicationStore {
	return &PublicationStore{db: db}
}

// List returns one page of publications ordered by creation date
// descending, each with its images attached newest-first. The total is
// answered separately by Count so callers see the full collection size
// regardless of the page they asked for.
func (s *PublicationStore) List(limit, offset int) ([]models.Publication, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, category, created_at, updated_at
		FROM publications
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list publications: %w", err)
	}
	defer rows.Close()

	var items []models.Publication
	for rows.Next() {
		var p models.Publication
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan publication: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Attach images per publication. Pages are small (a handful of rows),
	// so a query per item keeps the SQL simple.
	for i := range items {
		images, err := s.Images(items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Images = images
	}
	return items, nil
}

// Count returns the total number of publications.
func (s *PublicationStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM publications`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count publications: %w", err)
	}
	return count, nil
}

// FindByID retrieves a publication with its images. Returns nil if not found.
func (s *PublicationStore) FindByID(id uuid.UUID) (*models.Publication, error) {
	p := &models.Publication{}
	err := s.db.QueryRow(`
		SELECT id, title, description, category, created_at, updated_at
		FROM publications WHERE id = $1
	`, id).Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find publication by id: %w", err)
	}

	p.Images, err = s.Images(p.ID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a new publication and returns it with the generated ID.
// Images are attached separately with AddImage.
func (s *PublicationStore) Create(title, description string, category models.Category) (*models.Publication, error) {
	p := &models.Publication{}
	err := s.db.QueryRow(`
		INSERT INTO publications (title, description, category)
		VALUES ($1, $2, $3)
		RETURNING id, title, description, category, created_at, updated_at
	`, title, description, category).Scan(
		&p.ID, &p.Title, &p.Description, &p.Category, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create publication: %w", err)
	}
	return p, nil
}

// Update modifies a publication's text fields. Images are never replaced
// here — a new one is appended with AddImage.
func (s *PublicationStore) Update(id uuid.UUID, title, description string, category models.Category) error {
	res, err := s.db.Exec(`
		UPDATE publications SET
			title = $1, description = $2, category = $3, updated_at = NOW()
		WHERE id = $4
	`, title, description, category, id)
	if err != nil {
		return fmt.Errorf("update publication: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a publication. Its image rows go with it via the
// ON DELETE CASCADE constraint.
func (s *PublicationStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM publications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete publication: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Images returns the images attached to a publication, newest first.
// The first image is the one the site displays.
func (s *PublicationStore) Images(publicationID uuid.UUID) ([]models.PublicationImage, error) {
	rows, err := s.db.Query(`
		SELECT id, publication_id, url, created_at
		FROM publication_images
		WHERE publication_id = $1
		ORDER BY created_at DESC
	`, publicationID)
	if err != nil {
		return nil, fmt.Errorf("list publication images: %w", err)
	}
	defer rows.Close()

	var images []models.PublicationImage
	for rows.Next() {
		var img models.PublicationImage
		if err := rows.Scan(&img.ID, &img.PublicationID, &img.URL, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan publication image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// AddImage appends an image row to a publication.
func (s *PublicationStore) AddImage(publicationID uuid.UUID, url string) (*models.PublicationImage, error) {
	img := &models.PublicationImage{}
	err := s.db.QueryRow(`
		INSERT INTO publication_images (publication_id, url)
		VALUES ($1, $2)
		RETURNING id, publication_id, url, created_at
	`, publicationID, url).Scan(&img.ID, &img.PublicationID, &img.URL, &img.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("add publication image: %w", err)
	}
	return img, nil
}
