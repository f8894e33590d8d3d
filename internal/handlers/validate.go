package handlers

import (
	"strings"
	"unicode/utf8"

	"vidriera/internal/models"
)

// Validation limits for user-submitted fields.
const (
	maxTitleLen    = 200
	maxDescLen     = 2_000
	maxSloganLen   = 200
	maxURLLen      = 2_000
	maxContentLen  = 2_000
	maxFullNameLen = 200
	minPasswordLen = 8
)

// validatePublication checks catalog item fields and returns the first
// error found, or "" when everything is in order. The category must be
// one of the fixed five values — anything else is rejected outright.
func validatePublication(title, description string, category models.Category) string {
	if strings.TrimSpace(title) == "" {
		return "El título es obligatorio."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "El título es demasiado largo (máximo 200 caracteres)."
	}
	if strings.TrimSpace(description) == "" {
		return "La descripción es obligatoria."
	}
	if utf8.RuneCountInString(description) > maxDescLen {
		return "La descripción es demasiado larga (máximo 2.000 caracteres)."
	}
	if !category.Valid() {
		return "Categoría no válida."
	}
	return ""
}

// validateSlide checks banner slide fields. The image URL is validated
// here because slides always carry one; the slogan is optional.
func validateSlide(title, description, slogan, imageURL string) string {
	if strings.TrimSpace(title) == "" {
		return "El título es obligatorio."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "El título es demasiado largo (máximo 200 caracteres)."
	}
	if strings.TrimSpace(description) == "" {
		return "La descripción es obligatoria."
	}
	if utf8.RuneCountInString(description) > maxDescLen {
		return "La descripción es demasiado larga (máximo 2.000 caracteres)."
	}
	if utf8.RuneCountInString(slogan) > maxSloganLen {
		return "El eslogan es demasiado largo (máximo 200 caracteres)."
	}
	if utf8.RuneCountInString(imageURL) > maxURLLen {
		return "La URL de la imagen es demasiado larga."
	}
	return ""
}

// validateReview checks a review submission: non-empty content and an
// integer rating between 1 and 5.
func validateReview(content string, rating int) string {
	if strings.TrimSpace(content) == "" {
		return "Escribe tu opinión antes de enviarla."
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "Tu opinión es demasiado larga (máximo 2.000 caracteres)."
	}
	if rating < models.MinRating || rating > models.MaxRating {
		return "La calificación debe estar entre 1 y 5."
	}
	return ""
}

// validateSignup checks the registration form.
func validateSignup(email, password, fullName string) string {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return "Correo electrónico no válido."
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return "La contraseña debe tener al menos 8 caracteres."
	}
	if utf8.RuneCountInString(fullName) > maxFullNameLen {
		return "El nombre es demasiado largo (máximo 200 caracteres)."
	}
	return ""
}
