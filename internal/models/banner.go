// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxBannerSlides caps how many slides the rotating banner may hold.
// Creating past the cap is rejected; editing an existing slide is exempt.
const MaxBannerSlides = 6

// BannerSlide is one frame of the rotating promotional banner on the
// landing page. Slides are served newest-first; which slide is currently
// visible is the frontend's business.
type BannerSlide struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Slogan      *string   `json:"slogan,omitempty"` // optional pull-quote
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
