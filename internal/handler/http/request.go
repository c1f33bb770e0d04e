package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/approval"
	"github.com/cmlabs-hris/hris-workflow-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type RequestHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Inbox(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
}

type requestHandlerImpl struct {
	approvalService approval.ApprovalService
}

func NewRequestHandler(approvalService approval.ApprovalService) RequestHandler {
	return &requestHandlerImpl{approvalService: approvalService}
}

// Submit implements RequestHandler.
func (h *requestHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	actor, ok := actingUser(w, r)
	if !ok {
		return
	}

	var req approval.SubmitRequest
	if !decodeJSON(w, r, "Submit", &req) {
		return
	}

	created, err := h.approvalService.Submit(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Request submitted successfully", created)
}

// List implements RequestHandler.
func (h *requestHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actingUser(w, r)
	if !ok {
		return
	}

	filter, err := parseRequestFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.approvalService.ListRequests(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Requests, response.Paginate(result.Page, result.Limit, result.TotalCount))
}

// ListMine implements RequestHandler.
func (h *requestHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := actingUser(w, r)
	if !ok {
		return
	}

	filter, err := parseRequestFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	filter.EmployeeID = &actor.EmployeeID

	result, err := h.approvalService.ListRequests(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Requests, response.Paginate(result.Page, result.Limit, result.TotalCount))
}

// Inbox implements RequestHandler.
func (h *requestHandlerImpl) Inbox(w http.ResponseWriter, r *http.Request) {
	actor, ok := actingUser(w, r)
	if !ok {
		return
	}

	filter, err := parseRequestFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.approvalService.ListPendingFor(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Requests, response.Paginate(result.Page, result.Limit, result.TotalCount))
}

// Get implements RequestHandler.
func (h *requestHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actingUser(w, r)
	if !ok {
		return
	}

	result, err := h.approvalService.GetRequest(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Decide implements RequestHandler.
func (h *requestHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	actor, ok := actingUser(w, r)
	if !ok {
		return
	}

	var req approval.DecideRequest
	if !decodeJSON(w, r, "Decide", &req) {
		return
	}

	result, err := h.approvalService.Decide(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Decision recorded", result)
}

func parseRequestFilter(r *http.Request) (approval.RequestFilter, error) {
	q := r.URL.Query()
	filter := approval.RequestFilter{
		EmployeeID:  optionalQuery(r, "employee_id"),
		CompositeID: optionalQuery(r, "composite_id"),
		Page:        getIntQueryParam(r, "page", 1),
		Limit:       getIntQueryParam(r, "limit", 20),
	}

	if v := q.Get("type"); v != "" {
		t, ok := approval.ParseType(v)
		if !ok {
			return filter, validator.Fail("type", "type must be one of leave, od, compensatory, punch_missed")
		}
		filter.Type = &t
	}
	if v := q.Get("status"); v != "" {
		o, ok := approval.ParseOutcome(v)
		if !ok {
			return filter, validator.Fail("status", "status must be one of pending, approved, rejected")
		}
		filter.Outcome = &o
	}
	if v := q.Get("from"); v != "" {
		d, ok := validator.IsValidDate(v)
		if !ok {
			return filter, validator.Fail("from", "from must be YYYY-MM-DD")
		}
		filter.From = &d
	}
	if v := q.Get("to"); v != "" {
		d, ok := validator.IsValidDate(v)
		if !ok {
			return filter, validator.Fail("to", "to must be YYYY-MM-DD")
		}
		filter.To = &d
	}
	return filter, nil
}
