// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/taakbeheer/internal/platform/middleware"
	requestutil "github.com/taibuivan/taakbeheer/internal/platform/request"
	"github.com/taibuivan/taakbeheer/internal/platform/respond"
	"github.com/taibuivan/taakbeheer/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the credential endpoints.
//
// # Scope
//
// Sign-in lives under /sessions and registration under POST /users. Both
// run behind the throttle chain (pacing and jitter) given at construction.
type Handler struct {
	service  *Service
	throttle []func(http.Handler) http.Handler
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, throttle ...func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, throttle: throttle}
}

// # Request Schemas

var loginSchema = validate.Schema{
	Body: validate.Fields{
		{Name: FieldEmail, Rule: validate.String().Email()},
		{Name: FieldPassword, Rule: validate.String()},
	},
}

var registerSchema = validate.Schema{
	Body: validate.Fields{
		{Name: FieldUsername, Rule: validate.String().Max(255)},
		{Name: FieldEmail, Rule: validate.String().Email()},
		{Name: FieldPassword, Rule: validate.String().Min(12).Max(128)},
	},
}

// RegisterSessionRoutes mounts sign-in.
//
// # Endpoints
//   - POST / : Authenticates and returns a token.
func (handler *Handler) RegisterSessionRoutes(router chi.Router) {
	router.With(handler.throttle...).With(middleware.Validate(loginSchema)).Post("/", handler.login)
}

// RegisterSignupRoutes mounts registration on the users router.
//
// # Endpoints
//   - POST / : Creates an account and returns a token.
func (handler *Handler) RegisterSignupRoutes(router chi.Router) {
	router.With(handler.throttle...).With(middleware.Validate(registerSchema)).Post("/", handler.register)
}

type tokenResponse struct {
	Token string `json:"token"`
}

/*
Login authenticates a user.

POST /api/sessions

Request:
  - Body: email, password

Response:
  - 200: {token}
  - 400: Validation failure
  - 401: Email and password do not match
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	body := requestutil.Input(request).Body

	token, err := handler.service.Login(request.Context(), body.String(FieldEmail), body.String(FieldPassword))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tokenResponse{Token: token})
}

/*
Register creates a new account and signs it in.

POST /api/users

Request:
  - Body: username, email, password (12 to 128 characters)

Response:
  - 200: {token}
  - 400: Validation failure
  - 409: Email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	body := requestutil.Input(request).Body

	token, err := handler.service.Register(request.Context(), RegisterInput{
		Username: body.String(FieldUsername),
		Email:    body.String(FieldEmail),
		Password: body.String(FieldPassword),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tokenResponse{Token: token})
}
