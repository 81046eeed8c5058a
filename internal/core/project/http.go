// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/taakbeheer/internal/platform/middleware"
	requestutil "github.com/taibuivan/taakbeheer/internal/platform/request"
	"github.com/taibuivan/taakbeheer/internal/platform/respond"
	"github.com/taibuivan/taakbeheer/internal/platform/validate"
)

// Handler implements the project endpoints.
type Handler struct {
	service *Service
	gate    *middleware.Gate
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, gate *middleware.Gate) *Handler {
	return &Handler{service: service, gate: gate}
}

// # Request Schemas

var idParams = validate.Fields{{Name: ParamID, Rule: validate.Int().Positive()}}

var createSchema = validate.Schema{
	Body: validate.Fields{
		{Name: FieldName, Rule: validate.String().Max(255)},
		{Name: FieldDescription, Rule: validate.String().AllowEmpty().Nullable().Optional()},
	},
}

// listSchema rejects any query string.
var listSchema = validate.Schema{Query: validate.None}

var idSchema = validate.Schema{Params: idParams}

var updateSchema = validate.Schema{
	Params: idParams,
	Body: validate.Fields{
		{Name: FieldName, Rule: validate.String().Max(255).Optional()},
		{Name: FieldDescription, Rule: validate.String().AllowEmpty().Nullable().Optional()},
	},
}

// RegisterRoutes mounts the project routes. All of them require a session.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	authenticated := handler.gate.Authenticated()

	router.With(authenticated, middleware.Validate(listSchema)).Get("/", handler.list)
	router.With(authenticated, middleware.Validate(createSchema)).Post("/", handler.create)
	router.With(authenticated, middleware.Validate(idSchema)).Get("/{id}", handler.get)
	router.With(authenticated, middleware.Validate(updateSchema)).Put("/{id}", handler.update)
	router.With(authenticated, middleware.Validate(idSchema)).Delete("/{id}", handler.delete)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	projects, err := handler.service.List(request.Context(), requestutil.Session(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.List(writer, projects)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	body := requestutil.Input(request).Body

	project, err := handler.service.Create(request.Context(), requestutil.Session(request), CreateInput{
		Name:        body.String(FieldName),
		Description: body.StringPtr(FieldDescription),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, project)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Input(request).Params.Int(ParamID)

	project, err := handler.service.Get(request.Context(), requestutil.Session(request), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, project)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	input := requestutil.Input(request)

	project, err := handler.service.Update(request.Context(), requestutil.Session(request), input.Params.Int(ParamID), UpdateInput{
		Name:           input.Body.StringPtr(FieldName),
		SetDescription: input.Body.Has(FieldDescription),
		Description:    input.Body.StringPtr(FieldDescription),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, project)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Input(request).Params.Int(ParamID)

	if err := handler.service.Delete(request.Context(), requestutil.Session(request), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
