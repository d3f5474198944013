// Copyright (c) 2026 Plume. All rights reserved.

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plumehq/plume/internal/platform/constants"
	"github.com/plumehq/plume/internal/platform/middleware"
	requestutil "github.com/plumehq/plume/internal/platform/request"
	"github.com/plumehq/plume/internal/platform/respond"
	"github.com/plumehq/plume/internal/platform/validate"
)

// Handler exposes the authentication endpoints.
//
// The refresh token travels only in an HttpOnly cookie scoped to the API
// path; the access token travels in the JSON body and is the client's job to
// attach as a bearer header.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/logout", handler.logout)
		protected.Get("/user", handler.currentUser)
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 255).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, PasswordMinLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Register(request.Context(), RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Login(request.Context(), LoginInput{
		Email:     input.Email,
		Password:  input.Password,
		UserAgent: request.UserAgent(),
		IPAddress: request.RemoteAddr,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setRefreshCookie(writer, session)
	respond.OK(writer, map[string]any{
		"access_token": session.AccessToken,
		"user":         session.User,
	})
}

func (handler *Handler) currentUser(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.CurrentUser(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil && cookie.Value != "" {
		_ = handler.service.Logout(request.Context(), cookie.Value)
	}

	clearRefreshCookie(writer)
	respond.NoContent(writer)
}

func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil || cookie.Value == "" {
		respond.Error(writer, request, validate.RequiredError("refresh_token", "Refresh token cookie is missing"))
		return
	}

	session, err := handler.service.Refresh(request.Context(), cookie.Value, request.UserAgent(), request.RemoteAddr)
	if err != nil {
		clearRefreshCookie(writer)
		respond.Error(writer, request, err)
		return
	}

	setRefreshCookie(writer, session)
	respond.OK(writer, map[string]any{
		"access_token": session.AccessToken,
		"user":         session.User,
	})
}

func setRefreshCookie(writer http.ResponseWriter, session *LoginSession) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    session.RefreshToken,
		Path:     constants.RefreshTokenCookiePath,
		Expires:  session.RefreshTokenExpiresAt,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearRefreshCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    "",
		Path:     constants.RefreshTokenCookiePath,
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
