package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-workflow-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	MyEntitlement(w http.ResponseWriter, r *http.Request)
	Celebrations(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

// Create implements EmployeeHandler.
func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if !decodeJSON(w, r, "CreateEmployee", &req) {
		return
	}

	result, err := h.employeeService.CreateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", result)
}

// Get implements EmployeeHandler. Employees may read only their own record.
func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actingUser(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id != actor.EmployeeID && !actor.Role.IsApprover() {
		response.HandleError(w, user.ErrInsufficientPermissions)
		return
	}

	result, err := h.employeeService.GetEmployee(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements EmployeeHandler.
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := employee.EmployeeFilter{
		Department: optionalQuery(r, "department"),
		Page:       getIntQueryParam(r, "page", 1),
		Limit:      getIntQueryParam(r, "limit", 20),
	}
	if v := r.URL.Query().Get("role"); v != "" {
		role, ok := user.ParseRole(v)
		if !ok {
			response.HandleError(w, validator.Fail("role", "role must be one of employee, hod, ceo, admin"))
			return
		}
		filter.Role = &role
	}

	result, err := h.employeeService.ListEmployees(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Employees, response.Paginate(result.Page, result.Limit, result.TotalCount))
}

// MyEntitlement implements EmployeeHandler.
func (h *employeeHandlerImpl) MyEntitlement(w http.ResponseWriter, r *http.Request) {
	actor, ok := actingUser(w, r)
	if !ok {
		return
	}

	result, err := h.employeeService.Entitlement(r.Context(), actor.EmployeeID, getIntQueryParam(r, "year", 0))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Celebrations implements EmployeeHandler.
func (h *employeeHandlerImpl) Celebrations(w http.ResponseWriter, r *http.Request) {
	var asOf time.Time
	if v := r.URL.Query().Get("date"); v != "" {
		d, ok := validator.IsValidDate(v)
		if !ok {
			response.HandleError(w, validator.Fail("date", "date must be YYYY-MM-DD"))
			return
		}
		asOf = d
	}

	result, err := h.employeeService.Celebrations(r.Context(), asOf)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
