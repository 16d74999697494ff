package export

import (
	"errors"
	"mime"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/wonderplan/wonderplan/pkg/trip"
)

type Handler struct {
	trips    *trip.Service
	renderer *ICalRenderer
}

func NewHandler(trips *trip.Service, renderer *ICalRenderer) *Handler {
	return &Handler{trips: trips, renderer: renderer}
}

// ExportICal responds with the trip's calendar as a text/calendar document.
func (h *Handler) ExportICal(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tripUid := vars["tripUid"]

	t, err := h.trips.GetTripByUid(r.Context(), tripUid)
	if err != nil {
		if errors.Is(err, trip.ErrTripNotFound) {
			http.Error(w, "trip not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Trip names are user input; FormatMediaType quotes and escapes the
	// filename so the header cannot be broken out of.
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": t.Name + ".ics"})
	if disposition == "" {
		disposition = "attachment"
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", disposition)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(h.renderer.Render(*t))); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
