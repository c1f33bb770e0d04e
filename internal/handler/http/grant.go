package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/grant"
	"github.com/cmlabs-hris/hris-workflow-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type GrantHandler interface {
	ListMine(w http.ResponseWriter, r *http.Request)
	ListClaimable(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Claim(w http.ResponseWriter, r *http.Request)
}

type grantHandlerImpl struct {
	grantService grant.GrantService
}

func NewGrantHandler(grantService grant.GrantService) GrantHandler {
	return &grantHandlerImpl{grantService: grantService}
}

// ListMine implements GrantHandler.
func (h *grantHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := actingUser(w, r)
	if !ok {
		return
	}

	grants, err := h.grantService.ListMine(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, grants)
}

// ListClaimable implements GrantHandler.
func (h *grantHandlerImpl) ListClaimable(w http.ResponseWriter, r *http.Request) {
	actor, ok := actingUser(w, r)
	if !ok {
		return
	}

	grants, err := h.grantService.ListClaimable(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, grants)
}

// Get implements GrantHandler.
func (h *grantHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actingUser(w, r)
	if !ok {
		return
	}

	result, err := h.grantService.GetGrant(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Claim implements GrantHandler.
func (h *grantHandlerImpl) Claim(w http.ResponseWriter, r *http.Request) {
	actor, ok := actingUser(w, r)
	if !ok {
		return
	}

	var req grant.ClaimRequest
	if !decodeJSON(w, r, "Claim", &req) {
		return
	}

	result, err := h.grantService.Claim(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Grant claimed successfully", result)
}
