// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the site's JSON API.
// Handlers are grouped by concern (auth, public, admin) and receive
// their dependencies through the handler struct.
package handlers

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"vidriera/internal/middleware"
	"vidriera/internal/models"
	"vidriera/internal/session"
	"vidriera/internal/store"
)

// totpIssuer is the name shown in authenticator apps.
const totpIssuer = "Vidriera El Paisa"

// Auth groups all authentication and profile HTTP handlers.
type Auth struct {
	sessions    *session.Store
	users       *store.UserStore
	resetTokens *session.ResetTokens
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions *session.Store, users *store.UserStore, resetTokens *session.ResetTokens) *Auth {
	return &Auth{
		sessions:    sessions,
		users:       users,
		resetTokens: resetTokens,
	}
}

// sessionView is the session snapshot returned to the frontend.
type sessionView struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	TwoFADone bool   `json:"two_fa_done"`
}

func viewOf(sess *session.Data) *sessionView {
	return &sessionView{
		UserID:    sess.UserID.String(),
		Email:     sess.Email,
		FullName:  sess.FullName,
		Role:      sess.Role,
		TwoFADone: sess.TwoFADone,
	}
}

// Signup registers a new account. The profile row is created in the same
// insert; every self-registered account gets the "user" role.
func (a *Auth) Signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Solicitud no válida.", http.StatusBadRequest)
		return
	}

	if errMsg := validateSignup(req.Email, req.Password, req.FullName); errMsg != "" {
		writeError(w, errMsg, http.StatusUnprocessableEntity)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := a.users.FindByEmail(email)
	if err != nil {
		slog.Error("signup lookup failed", "error", err)
		writeError(w, "Ocurrió un error inesperado.", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		writeError(w, "Ya existe una cuenta con ese correo.", http.StatusConflict)
		return
	}

	user, err := a.users.Create(email, req.Password, strings.TrimSpace(req.FullName), models.RoleUser)
	if err != nil {
		slog.Error("signup create failed", "error", err)
		writeError(w, "Ocurrió un error inesperado.", http.StatusInternalServerError)
		return
	}

	// Sign the new user in right away. Regular users never do 2FA.
	sess := &session.Data{
		UserID:    user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      string(user.Role),
		TwoFADone: true,
	}
	if _, err := a.sessions.Create(r.Context(), w, sess); err != nil {
		slog.Error("session create failed", "error", err)
		writeError(w, "Ocurrió un error inesperado.", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"user": viewOf(sess)})
}

// Login validates credentials and opens a session. Admins must still
// pass 2FA before the admin area opens; the response tells the frontend
// which step comes next.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Solicitud no válida.", http.StatusBadRequest)
		return
	}

	user, err := a.users.FindByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		writeError(w, "Ocurrió un error inesperado.", http.StatusInternalServerError)
		return
	}
	if user == nil || !a.users.CheckPassword(user, req.Password) {
		writeError(w, "Correo o contraseña incorrectos.", http.StatusUnauthorized)
		return
	}

	// Admin sessions start without 2FA; verification flips the flag.
	sess := &session.Data{
		UserID:    user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      string(user.Role),
		TwoFADone: !user.IsAdmin(),
	}
	if _, err := a.sessions.Create(r.Context(), w, sess); err != nil {
		slog.Error("session create failed", "error", err)
		writeError(w, "Ocurrió un error inesperado.", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":            viewOf(sess),
		"needs_2fa_setup": user.Needs2FASetup(),
		"needs_2fa":       user.IsAdmin(),
	})
}

// Logout destroys the session.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(r.Context(), w, r)
	writeJSON(w, http.StatusOK, map[string]any{"user": nil})
}

// Me returns the current session snapshot, or a null user when no
// session exists. The frontend re-requests this after every auth action
// instead of tracking auth state on its own.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeJSON(w, http.StatusOK, map[string]any{"user": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": viewOf(sess)})
}

// Profile returns the caller's profile row, fetched fresh.
func (a *Auth) Profile(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	user, err := a.users.FindByID(sess.UserID)
	if err != nil {
		slog.Error("profile lookup failed", "error", err)
		writeError(w, "Ocurrió un error inesperado.", http.StatusInternalServerError)
		return
	}
	if user == nil {
		writeError(w, "Perfil no encontrado.", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// ProfileUpdate changes the caller's display name. The role is never
// writable here — only the name travels in.
func (a *Auth) ProfileUpdate(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req struct {
		FullName string `json:"full_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Solicitud no válida.", http.StatusBadRequest)
		return
	}

	fullName := strings.TrimSpace(req.FullName)
	if len(fullName) > maxFullNameLen {
		writeError(w, "El nombre es demasiado largo (máximo 200 caracteres).", http.StatusUnprocessableEntity)
		return
	}

	if err := a.users.UpdateFullName(sess.UserID, fullName); err != nil {
		slog.Error("profile update failed", "error", err)
		writeError(w, "Error al actualizar perfil.", http.StatusInternalServerError)
		return
	}

	// Keep the session snapshot in step with the store.
	sess.FullName = fullName
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Warn("session refresh after profile update failed", "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": viewOf(sess)})
}

// ResetPasswordRequest issues a single-use reset token. The response is
// the same whether or not the account exists, so the endpoint can't be
// used to probe for registered emails. Without a mailer the token is
// surfaced through the server log.
func (a *Auth) ResetPasswordRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Solicitud no válida.", http.StatusBadRequest)
		return
	}

	user, err := a.users.FindByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		slog.Error("reset lookup failed", "error", err)
	}
	if user != nil {
		token, err := a.resetTokens.Issue(r.Context(), user.ID)
		if err != nil {
			slog.Error("reset token issue failed", "error", err)
		} else {
			// TODO: deliver by email once an SMTP relay is provisioned.
			slog.Info("password reset token issued", "email", user.Email, "token", token)
		}
	}

	writeJSON(w, http.StatusAccepted, map[string]string{
		"message": "Si el correo existe, recibirás instrucciones para restablecer tu contraseña.",
	})
}

// ResetPasswordConfirm consumes a reset token and sets the new password.
func (a *Auth) ResetPasswordConfirm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Solicitud no válida.", http.StatusBadRequest)
		return
	}

	if len(req.Password) < minPasswordLen {
		writeError(w, "La contraseña debe tener al menos 8 caracteres.", http.StatusUnprocessableEntity)
		return
	}

	userID, err := a.resetTokens.Consume(r.Context(), req.Token)
	if err != nil {
		slog.Error("reset token consume failed", "error", err)
		writeError(w, "Ocurrió un error inesperado.", http.StatusInternalServerError)
		return
	}
	if userID == uuid.Nil {
		writeError(w, "El enlace de restablecimiento no es válido o expiró.", http.StatusUnauthorized)
		return
	}

	if err := a.users.UpdatePassword(userID, req.Password); err != nil {
		slog.Error("password update failed", "error", err)
		writeError(w, "Ocurrió un error inesperado.", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Contraseña actualizada."})
}

// TwoFASetup generates a TOTP secret for the signed-in admin and returns
// it with a QR code PNG (base64) for authenticator enrollment.
func (a *Auth) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: sess.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		writeError(w, "Ocurrió un error inesperado.", http.StatusInternalServerError)
		return
	}

	if err := a.users.SetTOTPSecret(sess.UserID, key.Secret()); err != nil {
		slog.Error("save totp secret failed", "error", err)
		writeError(w, "Ocurrió un error inesperado.", http.StatusInternalServerError)
		return
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		writeError(w, "Ocurrió un error inesperado.", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"secret":  key.Secret(),
		"qr_png":  base64.StdEncoding.EncodeToString(qrPNG),
		"otpauth": key.URL(),
	})
}

// TwoFAVerify validates a TOTP code and marks the session as verified.
// On the first successful verification, 2FA is switched on for the account.
func (a *Auth) TwoFAVerify(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Solicitud no válida.", http.StatusBadRequest)
		return
	}

	user, err := a.users.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("user lookup for 2fa failed", "error", err)
		writeError(w, "Ocurrió un error inesperado.", http.StatusInternalServerError)
		return
	}
	if user.TOTPSecret == nil {
		writeError(w, "Configura la verificación en dos pasos primero.", http.StatusConflict)
		return
	}

	if !totp.Validate(req.Code, *user.TOTPSecret) {
		writeError(w, "Código incorrecto, inténtalo de nuevo.", http.StatusUnauthorized)
		return
	}

	if !user.TOTPEnabled {
		if err := a.users.EnableTOTP(user.ID); err != nil {
			slog.Error("enable totp failed", "error", err)
			writeError(w, "Ocurrió un error inesperado.", http.StatusInternalServerError)
			return
		}
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
		writeError(w, "Ocurrió un error inesperado.", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": viewOf(sess)})
}
