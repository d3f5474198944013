// Copyright (c) 2026 Plume. All rights reserved.

package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plumehq/plume/internal/platform/middleware"
	requestutil "github.com/plumehq/plume/internal/platform/request"
	"github.com/plumehq/plume/internal/platform/respond"
	"github.com/plumehq/plume/internal/platform/validate"
)

// Handler exposes category CRUD over HTTP.
//
// GET /categories/{id}/posts is registered by the post handler, which owns
// post hydration.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the category routes on the API router.
// Reads are public; mutations sit behind the auth gate.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/categories", handler.list)
	router.Get("/categories/{id}", handler.get)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/categories", handler.create)
		protected.Put("/categories/{id}", handler.update)
		protected.Delete("/categories/{id}", handler.delete)
	})
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input categoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	category, err := handler.service.Create(request.Context(), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, category)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input categoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	category, err := handler.service.Update(request.Context(), id, input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
