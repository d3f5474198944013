// Copyright (c) 2026 Plume. All rights reserved.

package tag

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plumehq/plume/internal/platform/middleware"
	requestutil "github.com/plumehq/plume/internal/platform/request"
	"github.com/plumehq/plume/internal/platform/respond"
	"github.com/plumehq/plume/internal/platform/validate"
)

// Handler exposes tag CRUD over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/tags", handler.list)
	router.Get("/tags/{id}", handler.get)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/tags", handler.create)
		protected.Put("/tags/{id}", handler.update)
		protected.Delete("/tags/{id}", handler.delete)
	})
}

type tagRequest struct {
	Name string `json:"name"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	tags, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tags)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tag, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tag)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input tagRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	tag, err := handler.service.Create(request.Context(), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, tag)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input tagRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	tag, err := handler.service.Update(request.Context(), id, input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tag)
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
