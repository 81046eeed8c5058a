// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/taakbeheer/internal/platform/middleware"
	requestutil "github.com/taibuivan/taakbeheer/internal/platform/request"
	"github.com/taibuivan/taakbeheer/internal/platform/respond"
	"github.com/taibuivan/taakbeheer/internal/platform/sec"
	"github.com/taibuivan/taakbeheer/internal/platform/validate"
	"github.com/taibuivan/taakbeheer/internal/users/auth"
)

// Handler implements the user management endpoints.
type Handler struct {
	service *Service
	gate    *middleware.Gate
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, gate *middleware.Gate) *Handler {
	return &Handler{service: service, gate: gate}
}

// # Request Schemas

var userIDParams = validate.Fields{
	{Name: ParamID, Rule: validate.Alternatives(
		validate.Int().Positive(),
		validate.String().OneOf(AliasMe),
	)},
}

var listSchema = validate.Schema{Query: validate.None}

var getSchema = validate.Schema{Params: userIDParams}

var updateSchema = validate.Schema{
	Params: userIDParams,
	Body: validate.Fields{
		{Name: auth.FieldUsername, Rule: validate.String().Max(255).Optional()},
		{Name: auth.FieldEmail, Rule: validate.String().Email().Optional()},
		{Name: auth.FieldPassword, Rule: validate.String().Min(12).Max(128).Optional()},
		{Name: auth.FieldRole, Rule: validate.String().OneOf(sec.Roles()...).Optional()},
	},
}

// RegisterRoutes mounts the user management routes.
//
// # Endpoints
//   - GET    /     : All accounts (admin).
//   - GET    /{id} : One account, id or "me".
//   - PUT    /{id} : Update an account.
//   - DELETE /{id} : Delete an account.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	authenticated := handler.gate.Authenticated()

	router.With(authenticated, handler.gate.Role(sec.RoleAdmin), middleware.Validate(listSchema)).Get("/", handler.list)
	router.With(authenticated, middleware.Validate(getSchema)).Get("/{id}", handler.get)
	router.With(authenticated, middleware.Validate(updateSchema)).Put("/{id}", handler.update)
	router.With(authenticated, middleware.Validate(getSchema)).Delete("/{id}", handler.delete)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.service.List(request.Context(), requestutil.Session(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.List(writer, users)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.service.Get(request.Context(), requestutil.Session(request), requestutil.TargetUserID(request, ParamID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

/*
Update changes an account.

PUT /api/users/{id}

Request:
  - Body: username?, email?, password?, role? (admin only)

Response:
  - 200: The updated account
  - 403: Not the owner, or a role change by a non-admin
  - 409: Email already registered
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	body := requestutil.Input(request).Body

	input := UpdateInput{
		Username: body.StringPtr(auth.FieldUsername),
		Email:    body.StringPtr(auth.FieldEmail),
		Password: body.StringPtr(auth.FieldPassword),
	}
	if role := body.StringPtr(auth.FieldRole); role != nil {
		parsed := sec.Role(*role)
		input.Role = &parsed
	}

	user, err := handler.service.Update(request.Context(), requestutil.Session(request), requestutil.TargetUserID(request, ParamID), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Session(request), requestutil.TargetUserID(request, ParamID)); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
