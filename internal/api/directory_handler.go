package api

import (
	"net/http"

	"intake-assistant/backend/internal/interfaces"
	"intake-assistant/backend/internal/service"
)

// DirectoryHandler serves the provider and schedule lookups and the booking stub.
type DirectoryHandler struct {
	service interfaces.DirectoryService
}

func NewDirectoryHandler(svc interfaces.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{service: svc}
}

// HandleListProviders godoc
// @Summary      Search providers
// @Description  Filters the provider directory. All filters are optional and case-insensitive; count is the number of matches before the result cap.
// @Tags         Directory
// @Produce      json
// @Param        q          query     string  false  "Substring over id, name, type, styles, lived experience, languages, states and insurance"
// @Param        type       query     string  false  "Therapy, Psychiatry or Both"
// @Param        insurance  query     string  false  "Substring of an accepted insurance"
// @Param        state      query     string  false  "Licensed state, e.g. AZ"
// @Param        zip        query     string  false  "Accepted but currently ignored"
// @Success      200        {object}  model.ListResult[model.ProviderRecord]
// @Failure      500        {object}  InternalErrorResponse
// @Router       /providers [get]
func (h *DirectoryHandler) HandleListProviders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.service.ListProviders(r.Context(), service.ProviderFilter{
		Query:     q.Get("q"),
		Type:      q.Get("type"),
		Insurance: q.Get("insurance"),
		State:     q.Get("state"),
		Zip:       q.Get("zip"),
	})
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// HandleListSlots godoc
// @Summary      List open slots
// @Description  Lists schedule slots, optionally only those of one provider.
// @Tags         Directory
// @Produce      json
// @Param        prov  query     string  false  "Provider id, e.g. prov_007"
// @Success      200   {object}  model.ListResult[model.ScheduleSlot]
// @Failure      500   {object}  InternalErrorResponse
// @Router       /schedule [get]
func (h *DirectoryHandler) HandleListSlots(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListSlots(r.Context(), r.URL.Query().Get("prov"))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// HandleBook godoc
// @Summary      Book a slot
// @Description  Validates a booking and returns a synthetic appointment id. Nothing is stored.
// @Tags         Directory
// @Accept       json
// @Produce      json
// @Param        request  body      service.BookingRequest  true  "Provider, slot and patient details"
// @Success      200      {object}  model.Appointment
// @Failure      400      {object}  ErrorResponse
// @Failure      500      {object}  InternalErrorResponse
// @Router       /schedule [post]
func (h *DirectoryHandler) HandleBook(w http.ResponseWriter, r *http.Request) {
	var req service.BookingRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithError(w, r, err)
		return
	}

	appt, err := h.service.Book(r.Context(), &req)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, appt)
}
