// Copyright (c) 2026 Plume. All rights reserved.

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plumehq/plume/internal/platform/middleware"
	requestutil "github.com/plumehq/plume/internal/platform/request"
	"github.com/plumehq/plume/internal/platform/respond"
	"github.com/plumehq/plume/internal/platform/validate"
)

// Handler exposes comment CRUD and the per-post comment listing over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/comments", handler.list)
	router.Get("/comments/{id}", handler.get)
	router.Get("/posts/{id}/comments", handler.listByPost)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/comments", handler.create)
		protected.Put("/comments/{id}", handler.update)
		protected.Delete("/comments/{id}", handler.delete)
	})
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	comments, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comments)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comment)
}

func (handler *Handler) listByPost(writer http.ResponseWriter, request *http.Request) {
	postID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comments, err := handler.service.ListByPost(request.Context(), postID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comments)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	comment, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, comment)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	comment, err := handler.service.Update(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comment)
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
