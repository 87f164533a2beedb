package handlers

import (
	"delivery-fee-service/internal/api/dto"
	"delivery-fee-service/internal/domain"
	"net/http"
	"time"
)

type ServiceHoursHandler struct {
	Hours *domain.ServiceHours
	Now   func() time.Time
}

// Status reports whether deliveries are accepted now, or at ?at=RFC3339.
func (h *ServiceHoursHandler) Status(w http.ResponseWriter, r *http.Request) {
	at := time.Now()
	if h.Now != nil {
		at = h.Now()
	}

	if raw := r.URL.Query().Get("at"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "at must be an RFC3339 timestamp")
			return
		}
		at = t
	}

	writeJSON(w, r, http.StatusOK, dto.ServiceHoursResponse{
		At:        at.In(h.Hours.Zone),
		Open:      h.Hours.IsOpen(at),
		Holiday:   h.Hours.IsHoliday(at),
		OpenHour:  h.Hours.OpenHour,
		CloseHour: h.Hours.CloseHour,
	})
}
