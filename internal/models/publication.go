// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is one of the fixed set of work categories shown in the catalog.
type Category string

const (
	CategoryVentaneria  Category = "Ventanería"
	CategoryPasamanos   Category = "Pasamanos"
	CategoryCabinasBano Category = "Cabinas de Baño"
	CategoryEspejos     Category = "Espejos"
	CategoryFachadas    Category = "Fachadas"
)

// Categories lists every valid catalog category, in display order.
var Categories = []Category{
	CategoryVentaneria,
	CategoryPasamanos,
	CategoryCabinasBano,
	CategoryEspejos,
	CategoryFachadas,
}

// Valid reports whether c belongs to the fixed category set.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Publication is a portfolio entry shown in the public catalog. Images
// hang off it in a one-to-many relation; the newest image is the one the
// site displays.
type Publication struct {
	ID          uuid.UUID          `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Category    Category           `json:"category"`
	Images      []PublicationImage `json:"images"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// PublicationImage is one image attached to a publication. Images are
// appended on edit, never replaced; deletion cascades from the publication.
type PublicationImage struct {
	ID            uuid.UUID `json:"id"`
	PublicationID uuid.UUID `json:"publication_id"`
	URL           string    `json:"url"`
	CreatedAt     time.Time `json:"created_at"`
}
