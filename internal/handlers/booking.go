package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"pacificair.org/pacificair-web/internal/booking"
	"pacificair.org/pacificair-web/internal/render"
)

// BookingData is the view model for the self-submitting handoff page.
type BookingData struct {
	Title   string
	Handoff booking.Handoff
}

// Booking accepts widget submissions and hands the traveler off to the
// external reservation system.
type Booking struct {
	builder  *booking.Builder
	renderer *render.Renderer
	log      *zap.Logger
}

// NewBooking constructs the booking handoff handler.
func NewBooking(builder *booking.Builder, renderer *render.Renderer, log *zap.Logger) *Booking {
	if log == nil {
		log = zap.NewNop()
	}
	return &Booking{builder: builder, renderer: renderer, log: log}
}

// Search validates the widget form and renders a page that immediately
// POSTs the search to the reservation system.
func (h *Booking) Search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	req, err := booking.ParseSearchForm(r.PostForm)
	if err != nil {
		h.log.Info("booking search rejected", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	handoff, err := h.builder.Build(req)
	if err != nil {
		h.log.Error("booking handoff build", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	data := BookingData{Title: "Redirecting to booking", Handoff: handoff}
	if err := h.renderer.HTML(w, http.StatusOK, "booking_handoff", data); err != nil {
		h.log.Error("render booking handoff", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
