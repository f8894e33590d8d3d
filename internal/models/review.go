// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating bounds for customer reviews.
const (
	MinRating = 1
	MaxRating = 5
)

// AnonymousAuthor is shown when a reviewer has no full name on file.
const AnonymousAuthor = "Usuario"

// Review is a customer testimonial: a star rating plus free text.
// Reviews publish immediately on submission and are only ever removed
// by an admin; there is no edit path.
type Review struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Content    string    `json:"content"`
	Rating     int       `json:"rating"`
	AuthorName string    `json:"author_name"` // joined from the author's profile
	CreatedAt  time.Time `json:"created_at"`
}
