// Copyright (c) 2026 Plume. All rights reserved.

package post

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plumehq/plume/internal/platform/middleware"
	requestutil "github.com/plumehq/plume/internal/platform/request"
	"github.com/plumehq/plume/internal/platform/respond"
	"github.com/plumehq/plume/internal/platform/validate"
	"github.com/plumehq/plume/pkg/pagination"
)

// Handler exposes post CRUD and the post-centric listing routes over HTTP.
//
// The nested label and owner listings (/users/{id}/posts and friends) live
// here rather than in the label handlers because this package owns post
// hydration.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/posts", handler.list)
	router.Get("/posts/{id}", handler.get)
	router.Get("/posts/{id}/categories", handler.categories)
	router.Get("/posts/{id}/tags", handler.tags)
	router.Get("/users/{id}/posts", handler.listByUser)
	router.Get("/categories/{id}/posts", handler.listByCategory)
	router.Get("/tags/{id}/posts", handler.listByTag)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/posts", handler.create)
		protected.Put("/posts/{id}", handler.update)
		protected.Delete("/posts/{id}", handler.delete)
	})
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	posts, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	page, meta := paginate(posts, params)
	respond.Paginated(writer, page, meta)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, post)
}

func (handler *Handler) categories(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	categories, err := handler.service.Categories(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

func (handler *Handler) tags(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tags, err := handler.service.Tags(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tags)
}

func (handler *Handler) listByUser(writer http.ResponseWriter, request *http.Request) {
	handler.listBy(writer, request, handler.service.ListByUser)
}

func (handler *Handler) listByCategory(writer http.ResponseWriter, request *http.Request) {
	handler.listBy(writer, request, handler.service.ListByCategory)
}

func (handler *Handler) listByTag(writer http.ResponseWriter, request *http.Request) {
	handler.listBy(writer, request, handler.service.ListByTag)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	post, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, post)
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

	post, err := handler.service.Update(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, post)
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

// listBy handles the shared shape of the nested listing routes: parse the
// path ID, fetch, paginate.
func (handler *Handler) listBy(writer http.ResponseWriter, request *http.Request, list func(context.Context, int64) ([]Post, error)) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	posts, err := list(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	page, meta := paginate(posts, params)
	respond.Paginated(writer, page, meta)
}

// paginate slices the full result set into the requested page.
func paginate(posts []Post, params pagination.Params) ([]Post, pagination.Meta) {
	total := len(posts)
	start := params.Offset()
	if start > total {
		start = total
	}
	end := start + params.Limit
	if end > total {
		end = total
	}

	return posts[start:end], pagination.NewMeta(params.Page, params.Limit, total)
}
