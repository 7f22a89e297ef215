package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mcoot/blockdrop/internal/services/auth"
	"github.com/mcoot/blockdrop/internal/web/middleware"
	"github.com/mcoot/blockdrop/internal/web/templates/layout"
	"github.com/mcoot/blockdrop/internal/web/templates/pages"
)

const sessionCookieMaxAge = 7 * 24 * 60 * 60

// AuthHandler handles authentication pages and actions
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetPlayer(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.renderLogin(w, r, http.StatusOK, pages.LoginData{Next: r.URL.Query().Get("next")})
}

// RegisterPage renders the registration page
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetPlayer(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.renderRegister(w, r, http.StatusOK, pages.RegisterData{})
}

// CreateGuest handles the guest form on the home page
func (h *AuthHandler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Invalid form data")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	displayName := strings.TrimSpace(r.FormValue("display_name"))
	if displayName == "" {
		middleware.SetFlash(w, middleware.FlashError, "Display name is required")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	session, err := h.authService.CreateGuestPlayer(r.Context(), displayName)
	if err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Could not create guest: "+err.Error())
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	setSessionCookie(w, session.Token)
	middleware.SetFlash(w, middleware.FlashSuccess, "Welcome, "+session.Player.DisplayName+"!")
	http.Redirect(w, r, safeNext(r.FormValue("next")), http.StatusSeeOther)
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, http.StatusBadRequest, pages.LoginData{Error: "Invalid form data"})
		return
	}

	data := pages.LoginData{
		Username: strings.TrimSpace(r.FormValue("username")),
		Next:     r.FormValue("next"),
	}
	password := r.FormValue("password")

	if data.Username == "" || password == "" {
		data.Error = "Username and password are required"
		h.renderLogin(w, r, http.StatusBadRequest, data)
		return
	}

	session, err := h.authService.Login(r.Context(), data.Username, password)
	if err != nil {
		data.Error = "Invalid username or password"
		h.renderLogin(w, r, http.StatusUnauthorized, data)
		return
	}

	setSessionCookie(w, session.Token)
	middleware.SetFlash(w, middleware.FlashSuccess, "Welcome back, "+session.Player.DisplayName+"!")
	http.Redirect(w, r, safeNext(data.Next), http.StatusSeeOther)
}

// Register handles registration form submission
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderRegister(w, r, http.StatusBadRequest, pages.RegisterData{Error: "Invalid form data"})
		return
	}

	data := pages.RegisterData{
		Username:    strings.TrimSpace(r.FormValue("username")),
		DisplayName: strings.TrimSpace(r.FormValue("display_name")),
		FieldErrors: make(map[string]string),
	}
	password := r.FormValue("password")

	if data.Username == "" {
		data.FieldErrors["username"] = "Username is required"
	}
	if data.DisplayName == "" {
		data.FieldErrors["display_name"] = "Display name is required"
	}
	if password == "" {
		data.FieldErrors["password"] = "Password is required"
	}
	if password != r.FormValue("password_confirm") {
		data.FieldErrors["password_confirm"] = "Passwords do not match"
	}
	if len(data.FieldErrors) > 0 {
		h.renderRegister(w, r, http.StatusBadRequest, data)
		return
	}

	session, err := h.authService.RegisterPlayer(r.Context(), data.Username, password, data.DisplayName)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUsernameExists):
			data.FieldErrors["username"] = "Username already taken"
		case errors.Is(err, auth.ErrInvalidUsername):
			data.FieldErrors["username"] = err.Error()
		case errors.Is(err, auth.ErrInvalidPassword):
			data.FieldErrors["password"] = err.Error()
		case errors.Is(err, auth.ErrInvalidDisplayName):
			data.FieldErrors["display_name"] = err.Error()
		default:
			data.Error = "Registration failed"
		}
		status := http.StatusBadRequest
		if errors.Is(err, auth.ErrUsernameExists) {
			status = http.StatusConflict
		}
		h.renderRegister(w, r, status, data)
		return
	}

	setSessionCookie(w, session.Token)
	middleware.SetFlash(w, middleware.FlashSuccess, "Account created! Welcome, "+session.Player.DisplayName+"!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout ends the session and clears the cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		h.authService.InvalidateSession(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.SetFlash(w, middleware.FlashInfo, "You have been logged out")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   sessionCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, data pages.LoginData) {
	data.PageData = layout.PageData{
		Title: "Log in",
		Flash: middleware.GetFlash(r.Context()),
	}
	render(w, r, status, pages.Login(data))
}

func (h *AuthHandler) renderRegister(w http.ResponseWriter, r *http.Request, status int, data pages.RegisterData) {
	data.PageData = layout.PageData{
		Title: "Register",
		Flash: middleware.GetFlash(r.Context()),
	}
	render(w, r, status, pages.Register(data))
}
