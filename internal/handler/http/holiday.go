package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-workflow-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/validator"
)

type HolidayHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Import(w http.ResponseWriter, r *http.Request)
	Check(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	holidayService holiday.HolidayService
	clock          clock.Clock
}

func NewHolidayHandler(holidayService holiday.HolidayService, clk clock.Clock) HolidayHandler {
	return &holidayHandlerImpl{holidayService: holidayService, clock: clk}
}

// List implements HolidayHandler. Defaults to the current year.
func (h *holidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	year := getIntQueryParam(r, "year", clock.Today(h.clock).Year())

	result, err := h.holidayService.List(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Import implements HolidayHandler.
func (h *holidayHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	var req holiday.ImportRequest
	if !decodeJSON(w, r, "ImportHolidays", &req) {
		return
	}

	result, err := h.holidayService.Import(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holidays imported successfully", result)
}

// Check implements HolidayHandler.
func (h *holidayHandlerImpl) Check(w http.ResponseWriter, r *http.Request) {
	date := clock.Today(h.clock)
	if v := r.URL.Query().Get("date"); v != "" {
		d, ok := validator.IsValidDate(v)
		if !ok {
			response.HandleError(w, validator.Fail("date", "date must be YYYY-MM-DD"))
			return
		}
		date = d
	}

	result, err := h.holidayService.Check(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
