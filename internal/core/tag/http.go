// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/taakbeheer/internal/platform/middleware"
	requestutil "github.com/taibuivan/taakbeheer/internal/platform/request"
	"github.com/taibuivan/taakbeheer/internal/platform/respond"
	"github.com/taibuivan/taakbeheer/internal/platform/validate"
)

type Handler struct {
	service *Service
	gate    *middleware.Gate
}

func NewHandler(service *Service, gate *middleware.Gate) *Handler {
	return &Handler{service: service, gate: gate}
}

var idParams = validate.Fields{{Name: ParamID, Rule: validate.Int().Positive()}}

var (
	listSchema   = validate.Schema{Query: validate.None}
	idSchema     = validate.Schema{Params: idParams}
	createSchema = validate.Schema{Body: validate.Fields{{Name: FieldName, Rule: validate.String().Min(1).Max(50)}}}
	updateSchema = validate.Schema{
		Params: idParams,
		Body:   validate.Fields{{Name: FieldName, Rule: validate.String().Min(1).Max(50).Optional()}},
	}
)

func (handler *Handler) RegisterRoutes(router chi.Router) {
	authenticated := handler.gate.Authenticated()

	router.With(authenticated, middleware.Validate(listSchema)).Get("/", handler.listTags)
	router.With(authenticated, middleware.Validate(createSchema)).Post("/", handler.createTag)
	router.With(authenticated, middleware.Validate(idSchema)).Get("/{id}", handler.getTag)
	router.With(authenticated, middleware.Validate(updateSchema)).Put("/{id}", handler.updateTag)
	router.With(authenticated, middleware.Validate(idSchema)).Delete("/{id}", handler.deleteTag)
}

func (handler *Handler) listTags(writer http.ResponseWriter, request *http.Request) {
	tags, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.List(writer, tags)
}

func (handler *Handler) createTag(writer http.ResponseWriter, request *http.Request) {
	tag, err := handler.service.Create(request.Context(), requestutil.Input(request).Body.String(FieldName))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, tag)
}

func (handler *Handler) getTag(writer http.ResponseWriter, request *http.Request) {
	tag, err := handler.service.Get(request.Context(), requestutil.Input(request).Params.Int(ParamID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tag)
}

func (handler *Handler) updateTag(writer http.ResponseWriter, request *http.Request) {
	input := requestutil.Input(request)

	tag, err := handler.service.Update(request.Context(), input.Params.Int(ParamID), input.Body.StringPtr(FieldName))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tag)
}

func (handler *Handler) deleteTag(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Input(request).Params.Int(ParamID)); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
