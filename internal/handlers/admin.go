// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"vidriera/internal/media"
	"vidriera/internal/models"
	"vidriera/internal/storage"
	"vidriera/internal/store"
)

// maxUploadMemory bounds the in-memory part of multipart parsing.
const maxUploadMemory = 32 << 20

// Admin groups the handlers behind the admin API. Every route is gated
// by the auth middleware chain before a request reaches these.
type Admin struct {
	publications *store.PublicationStore
	banner       *store.BannerStore
	reviews      *store.ReviewStore
	ingestor     *media.Ingestor
	storage      *storage.Client
}

// NewAdmin creates the admin handler group. storage may be nil when
// object storage is not configured; stored-object cleanup is skipped.
func NewAdmin(publications *store.PublicationStore, banner *store.BannerStore, reviews *store.ReviewStore, ingestor *media.Ingestor, storage *storage.Client) *Admin {
	return &Admin{
		publications: publications,
		banner:       banner,
		reviews:      reviews,
		ingestor:     ingestor,
		storage:      storage,
	}
}

// Dashboard returns collection counts for the admin landing page.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	pubCount, err := a.publications.Count()
	if err != nil {
		slog.Error("dashboard publication count failed", "error", err)
		writeError(w, "Ocurrió un error inesperado.", http.StatusInternalServerError)
		return
	}
	slideCount, err := a.banner.Count()
	if err != nil {
		slog.Error("dashboard slide count failed", "error", err)
		writeError(w, "Ocurrió un error inesperado.", http.StatusInternalServerError)
		return
	}
	reviewCount, err := a.reviews.Count()
	if err != nil {
		slog.Error("dashboard review count failed", "error", err)
		writeError(w, "Ocurrió un error inesperado.", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{
		"publications":  pubCount,
		"banner_slides": slideCount,
		"reviews":       reviewCount,
	})
}

// formImage pulls the optional image file out of a multipart form.
// A missing file part is not an error — the ingestor decides whether
// an image was required.
func formImage(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return file, header, nil
}

// removeObject deletes a stored object referenced by url, if the URL
// belongs to our bucket. Foreign URLs (manually pasted links) and
// failures are left alone — orphaned objects are cheaper than broken
// deletes.
func (a *Admin) removeObject(ctx context.Context, url string) {
	if a.storage == nil {
		return
	}
	key, ok := a.storage.ExtractKey(url)
	if !ok {
		return
	}
	if err := a.storage.Delete(ctx, key); err != nil {
		slog.Warn("stored object delete failed", "key", key, "error", err)
	}
}

// writeIngestError maps the ingestor's sentinel errors onto HTTP
// responses: a missing image is the admin's mistake, a failed upload is
// the infrastructure's.
func writeIngestError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, media.ErrNoImage):
		writeError(w, "Sube una imagen o pega la URL de una.", http.StatusUnprocessableEntity)
	case errors.Is(err, media.ErrUploadFailed):
		slog.Error("image upload failed", "error", err)
		writeError(w, "No se pudo subir la imagen. Intenta de nuevo o pega la URL manualmente.", http.StatusBadGateway)
	default:
		slog.Error("image ingest failed", "error", err)
		writeError(w, "Ocurrió un error inesperado.", http.StatusInternalServerError)
	}
}

// PublicationCreate creates a catalog item from a multipart form. The
// image is resolved first; if attaching it to the fresh row fails, the
// row and any uploaded object are rolled back so no half-created item
// survives.
func (a *Admin) PublicationCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, "Solicitud no válida.", http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	description := strings.TrimSpace(r.FormValue("description"))
	category := models.Category(r.FormValue("category"))

	if errMsg := validatePublication(title, description, category); errMsg != "" {
		writeError(w, errMsg, http.StatusUnprocessableEntity)
		return
	}

	file, header, err := formImage(r)
	if err != nil {
		writeError(w, "Solicitud no válida.", http.StatusBadRequest)
		return
	}
	if file != nil {
		defer file.Close()
	}

	imageURL, err := a.ingestor.Ingest(r.Context(), file, header, r.FormValue("image_url"))
	if err != nil {
		writeIngestError(w, err)
		return
	}

	pub, err := a.publications.Create(title, description, category)
	if err != nil {
		slog.Error("create publication failed", "error", err)
		a.removeObject(r.Context(), imageURL)
		writeError(w, "Error al crear la publicación.", http.StatusInternalServerError)
		return
	}

	img, err := a.publications.AddImage(pub.ID, imageURL)
	if err != nil {
		slog.Error("attach publication image failed", "publication_id", pub.ID, "error", err)
		// Roll back the orphaned row and the uploaded object.
		if delErr := a.publications.Delete(pub.ID); delErr != nil {
			slog.Error("rollback publication failed", "publication_id", pub.ID, "error", delErr)
		}
		a.removeObject(r.Context(), imageURL)
		writeError(w, "Error al crear la publicación.", http.StatusInternalServerError)
		return
	}

	pub.Images = []models.PublicationImage{*img}
	writeJSON(w, http.StatusCreated, pub)
}

// PublicationUpdate edits a catalog item's text fields and optionally
// appends a new image. An edit without an image leaves the existing
// images untouched.
func (a *Admin) PublicationUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "Publicación no encontrada.", http.StatusNotFound)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, "Solicitud no válida.", http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	description := strings.TrimSpace(r.FormValue("description"))
	category := models.Category(r.FormValue("category"))

	if errMsg := validatePublication(title, description, category); errMsg != "" {
		writeError(w, errMsg, http.StatusUnprocessableEntity)
		return
	}

	file, header, err := formImage(r)
	if err != nil {
		writeError(w, "Solicitud no válida.", http.StatusBadRequest)
		return
	}
	if file != nil {
		defer file.Close()
	}

	if err := a.publications.Update(id, title, description, category); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, "Publicación no encontrada.", http.StatusNotFound)
			return
		}
		slog.Error("update publication failed", "publication_id", id, "error", err)
		writeError(w, "Error al actualizar la publicación.", http.StatusInternalServerError)
		return
	}

	imageURL, err := a.ingestor.Ingest(r.Context(), file, header, r.FormValue("image_url"))
	switch {
	case errors.Is(err, media.ErrNoImage):
		// No new image on an edit is fine.
	case err != nil:
		writeIngestError(w, err)
		return
	default:
		if _, err := a.publications.AddImage(id, imageURL); err != nil {
			slog.Error("attach publication image failed", "publication_id", id, "error", err)
			a.removeObject(r.Context(), imageURL)
			writeError(w, "Error al actualizar la publicación.", http.StatusInternalServerError)
			return
		}
	}

	pub, err := a.publications.FindByID(id)
	if err != nil || pub == nil {
		slog.Error("reload publication failed", "publication_id", id, "error", err)
		writeError(w, "Ocurrió un error inesperado.", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, pub)
}

// PublicationDelete removes a catalog item, its image rows (via the
// cascade), and best-effort its stored objects.
func (a *Admin) PublicationDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "Publicación no encontrada.", http.StatusNotFound)
		return
	}

	// Collect image URLs before the cascade wipes the rows.
	pub, err := a.publications.FindByID(id)
	if err != nil {
		slog.Error("find publication failed", "publication_id", id, "error", err)
		writeError(w, "Ocurrió un error inesperado.", http.StatusInternalServerError)
		return
	}
	if pub == nil {
		writeError(w, "Publicación no encontrada.", http.StatusNotFound)
		return
	}

	if err := a.publications.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, "Publicación no encontrada.", http.StatusNotFound)
			return
		}
		slog.Error("delete publication failed", "publication_id", id, "error", err)
		writeError(w, "Error al eliminar la publicación.", http.StatusInternalServerError)
		return
	}

	for _, img := range pub.Images {
		a.removeObject(r.Context(), img.URL)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Publicación eliminada."})
}

// slideForm reads the shared banner slide fields from a multipart form.
func slideForm(r *http.Request) (title, description string, slogan *string) {
	title = strings.TrimSpace(r.FormValue("title"))
	description = strings.TrimSpace(r.FormValue("description"))
	if s := strings.TrimSpace(r.FormValue("slogan")); s != "" {
		slogan = &s
	}
	return title, description, slogan
}

// BannerCreate adds a banner slide. The live set is capped; once full,
// creation is refused and the admin must edit or delete an existing
// slide instead.
func (a *Admin) BannerCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, "Solicitud no válida.", http.StatusBadRequest)
		return
	}

	count, err := a.banner.Count()
	if err != nil {
		slog.Error("count banner slides failed", "error", err)
		writeError(w, "Ocurrió un error inesperado.", http.StatusInternalServerError)
		return
	}
	if count >= models.MaxBannerSlides {
		writeError(w, "El banner ya tiene el máximo de 6 diapositivas.", http.StatusConflict)
		return
	}

	title, description, slogan := slideForm(r)

	file, header, err := formImage(r)
	if err != nil {
		writeError(w, "Solicitud no válida.", http.StatusBadRequest)
		return
	}
	if file != nil {
		defer file.Close()
	}

	imageURL, err := a.ingestor.Ingest(r.Context(), file, header, r.FormValue("image_url"))
	if err != nil {
		writeIngestError(w, err)
		return
	}

	sloganStr := ""
	if slogan != nil {
		sloganStr = *slogan
	}
	if errMsg := validateSlide(title, description, sloganStr, imageURL); errMsg != "" {
		a.removeObject(r.Context(), imageURL)
		writeError(w, errMsg, http.StatusUnprocessableEntity)
		return
	}

	slide, err := a.banner.Create(title, description, slogan, imageURL)
	if err != nil {
		slog.Error("create banner slide failed", "error", err)
		a.removeObject(r.Context(), imageURL)
		writeError(w, "Error al crear la diapositiva.", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, slide)
}

// BannerUpdate edits a slide. Edits are exempt from the slide cap, and
// a missing image keeps the current one.
func (a *Admin) BannerUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "Diapositiva no encontrada.", http.StatusNotFound)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, "Solicitud no válida.", http.StatusBadRequest)
		return
	}

	existing, err := a.banner.FindByID(id)
	if err != nil {
		slog.Error("find banner slide failed", "slide_id", id, "error", err)
		writeError(w, "Ocurrió un error inesperado.", http.StatusInternalServerError)
		return
	}
	if existing == nil {
		writeError(w, "Diapositiva no encontrada.", http.StatusNotFound)
		return
	}

	title, description, slogan := slideForm(r)

	file, header, err := formImage(r)
	if err != nil {
		writeError(w, "Solicitud no válida.", http.StatusBadRequest)
		return
	}
	if file != nil {
		defer file.Close()
	}

	imageURL, err := a.ingestor.Ingest(r.Context(), file, header, r.FormValue("image_url"))
	switch {
	case errors.Is(err, media.ErrNoImage):
		imageURL = existing.ImageURL
	case err != nil:
		writeIngestError(w, err)
		return
	}

	sloganStr := ""
	if slogan != nil {
		sloganStr = *slogan
	}
	if errMsg := validateSlide(title, description, sloganStr, imageURL); errMsg != "" {
		writeError(w, errMsg, http.StatusUnprocessableEntity)
		return
	}

	if err := a.banner.Update(id, title, description, slogan, imageURL); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, "Diapositiva no encontrada.", http.StatusNotFound)
			return
		}
		slog.Error("update banner slide failed", "slide_id", id, "error", err)
		writeError(w, "Error al actualizar la diapositiva.", http.StatusInternalServerError)
		return
	}

	// A replaced image leaves its old object behind; clean it up.
	if imageURL != existing.ImageURL {
		a.removeObject(r.Context(), existing.ImageURL)
	}

	slide, err := a.banner.FindByID(id)
	if err != nil || slide == nil {
		slog.Error("reload banner slide failed", "slide_id", id, "error", err)
		writeError(w, "Ocurrió un error inesperado.", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, slide)
}

// BannerDelete removes a slide and best-effort its stored image.
func (a *Admin) BannerDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "Diapositiva no encontrada.", http.StatusNotFound)
		return
	}

	slide, err := a.banner.FindByID(id)
	if err != nil {
		slog.Error("find banner slide failed", "slide_id", id, "error", err)
		writeError(w, "Ocurrió un error inesperado.", http.StatusInternalServerError)
		return
	}
	if slide == nil {
		writeError(w, "Diapositiva no encontrada.", http.StatusNotFound)
		return
	}

	if err := a.banner.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, "Diapositiva no encontrada.", http.StatusNotFound)
			return
		}
		slog.Error("delete banner slide failed", "slide_id", id, "error", err)
		writeError(w, "Error al eliminar la diapositiva.", http.StatusInternalServerError)
		return
	}

	a.removeObject(r.Context(), slide.ImageURL)

	writeJSON(w, http.StatusOK, map[string]string{"message": "Diapositiva eliminada."})
}

// ReviewDelete removes a review. Moderation is delete-only — there is
// no editing of what a customer wrote.
func (a *Admin) ReviewDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "Opinión no encontrada.", http.StatusNotFound)
		return
	}

	if err := a.reviews.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, "Opinión no encontrada.", http.StatusNotFound)
			return
		}
		slog.Error("delete review failed", "review_id", id, "error", err)
		writeError(w, "Error al eliminar la opinión.", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Opinión eliminada."})
}
