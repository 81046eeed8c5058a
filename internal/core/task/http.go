// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/taakbeheer/internal/platform/middleware"
	requestutil "github.com/taibuivan/taakbeheer/internal/platform/request"
	"github.com/taibuivan/taakbeheer/internal/platform/respond"
	"github.com/taibuivan/taakbeheer/internal/platform/validate"
)

// Handler implements the task endpoints.
type Handler struct {
	service *Service
	gate    *middleware.Gate
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, gate *middleware.Gate) *Handler {
	return &Handler{service: service, gate: gate}
}

// # Request Schemas

var (
	positiveID = validate.Int().Positive()
	idParams   = validate.Fields{{Name: ParamID, Rule: positiveID}}
)

var listSchema = validate.Schema{
	Query: validate.Fields{{Name: FieldProjectID, Rule: positiveID.Optional()}},
}

var createSchema = validate.Schema{
	Body: validate.Fields{
		{Name: FieldProjectID, Rule: positiveID},
		{Name: FieldTitle, Rule: validate.String().Min(1).Max(255)},
		{Name: FieldDescription, Rule: validate.String().AllowEmpty().Nullable().Optional()},
		{Name: FieldStatus, Rule: validate.String().OneOf(Statuses...).Default(StatusOpen)},
		{Name: FieldPriority, Rule: validate.String().OneOf(Priorities...).Default(PriorityMedium)},
		{Name: FieldDueDate, Rule: validate.Date().Nullable().Optional()},
	},
}

var idSchema = validate.Schema{Params: idParams}

var updateSchema = validate.Schema{
	Params: idParams,
	Body: validate.Fields{
		{Name: FieldTitle, Rule: validate.String().Min(1).Max(255).Optional()},
		{Name: FieldDescription, Rule: validate.String().AllowEmpty().Nullable().Optional()},
		{Name: FieldStatus, Rule: validate.String().OneOf(Statuses...).Optional()},
		{Name: FieldPriority, Rule: validate.String().OneOf(Priorities...).Optional()},
		{Name: FieldDueDate, Rule: validate.Date().Nullable().Optional()},
	},
}

var (
	addTagSchema = validate.Schema{
		Params: idParams,
		Body:   validate.Fields{{Name: FieldTagID, Rule: positiveID}},
	}
	removeTagSchema = validate.Schema{
		Params: validate.Fields{{Name: ParamID, Rule: positiveID}, {Name: ParamTagID, Rule: positiveID}},
	}
	addAssigneeSchema = validate.Schema{
		Params: idParams,
		Body:   validate.Fields{{Name: FieldUserID, Rule: positiveID}},
	}
	removeAssigneeSchema = validate.Schema{
		Params: validate.Fields{{Name: ParamID, Rule: positiveID}, {Name: ParamUserID, Rule: positiveID}},
	}
)

// RegisterRoutes mounts the task routes. All of them require a session.
//
// # Endpoints
//   - GET    /                          : Tasks, optionally of ?project_id.
//   - POST   /                          : Create a task.
//   - GET    /{id}                      : One task.
//   - PUT    /{id}                      : Update a task.
//   - DELETE /{id}                      : Delete a task.
//   - POST   /{id}/tags                 : Attach a tag.
//   - DELETE /{id}/tags/{tagId}         : Detach a tag.
//   - POST   /{id}/assignees            : Assign a user.
//   - DELETE /{id}/assignees/{userId}   : Unassign a user.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	authenticated := handler.gate.Authenticated()

	router.With(authenticated, middleware.Validate(listSchema)).Get("/", handler.list)
	router.With(authenticated, middleware.Validate(createSchema)).Post("/", handler.create)
	router.With(authenticated, middleware.Validate(idSchema)).Get("/{id}", handler.get)
	router.With(authenticated, middleware.Validate(updateSchema)).Put("/{id}", handler.update)
	router.With(authenticated, middleware.Validate(idSchema)).Delete("/{id}", handler.delete)

	router.With(authenticated, middleware.Validate(addTagSchema)).Post("/{id}/tags", handler.addTag)
	router.With(authenticated, middleware.Validate(removeTagSchema)).Delete("/{id}/tags/{tagId}", handler.removeTag)
	router.With(authenticated, middleware.Validate(addAssigneeSchema)).Post("/{id}/assignees", handler.addAssignee)
	router.With(authenticated, middleware.Validate(removeAssigneeSchema)).Delete("/{id}/assignees/{userId}", handler.removeAssignee)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	query := requestutil.Input(request).Query

	tasks, err := handler.service.List(request.Context(), requestutil.Session(request), query.IntPtr(FieldProjectID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.List(writer, tasks)
}

/*
Create adds a task to a project.

POST /api/tasks

Request:
  - Body: project_id, title, description?, status? (open), priority? (medium), due_date?

Response:
  - 201: The task
  - 403: Project not accessible
  - 404: Unknown project
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	body := requestutil.Input(request).Body

	task, err := handler.service.Create(request.Context(), requestutil.Session(request), CreateInput{
		ProjectID:   body.Int(FieldProjectID),
		Title:       body.String(FieldTitle),
		Description: body.StringPtr(FieldDescription),
		Status:      body.String(FieldStatus),
		Priority:    body.String(FieldPriority),
		DueDate:     body.TimePtr(FieldDueDate),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, task)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	task, err := handler.service.Get(request.Context(), requestutil.Session(request), requestutil.Input(request).Params.Int(ParamID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, task)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	input := requestutil.Input(request)
	body := input.Body

	task, err := handler.service.Update(request.Context(), requestutil.Session(request), input.Params.Int(ParamID), UpdateInput{
		Title:          body.StringPtr(FieldTitle),
		Status:         body.StringPtr(FieldStatus),
		Priority:       body.StringPtr(FieldPriority),
		SetDescription: body.Has(FieldDescription),
		Description:    body.StringPtr(FieldDescription),
		SetDueDate:     body.Has(FieldDueDate),
		DueDate:        body.TimePtr(FieldDueDate),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, task)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Session(request), requestutil.Input(request).Params.Int(ParamID)); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) addTag(writer http.ResponseWriter, request *http.Request) {
	input := requestutil.Input(request)

	err := handler.service.AddTag(request.Context(), requestutil.Session(request), input.Params.Int(ParamID), input.Body.Int(FieldTagID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) removeTag(writer http.ResponseWriter, request *http.Request) {
	params := requestutil.Input(request).Params

	err := handler.service.RemoveTag(request.Context(), requestutil.Session(request), params.Int(ParamID), params.Int(ParamTagID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) addAssignee(writer http.ResponseWriter, request *http.Request) {
	input := requestutil.Input(request)

	err := handler.service.AddAssignee(request.Context(), requestutil.Session(request), input.Params.Int(ParamID), input.Body.Int(FieldUserID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) removeAssignee(writer http.ResponseWriter, request *http.Request) {
	params := requestutil.Input(request).Params

	err := handler.service.RemoveAssignee(request.Context(), requestutil.Session(request), params.Int(ParamID), params.Int(ParamUserID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
