package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hotel_service/internal/domain"
)

func (h *Handlers) searchHotels(w http.ResponseWriter, r *http.Request) {
	q, err := hotelQuery(r.URL.Query())
	if err != nil {
		writeDomainError(w, r, err, "hotel")
		return
	}
	hotels, err := h.Hotels.Search(r.Context(), q)
	if err != nil {
		writeDomainError(w, r, err, "hotel")
		return
	}
	if hotels == nil {
		hotels = []domain.HotelView{}
	}
	respond(w, http.StatusOK, "Hotels found", hotels)
}

func (h *Handlers) hotelBySlug(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.Hotels.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeDomainError(w, r, err, "hotel")
		return
	}
	respond(w, http.StatusOK, okMsg("hotel", "retrieved"), hotel)
}

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	if err := h.Hotels.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, r, err, "hotel")
		return
	}
	respond(w, http.StatusOK, "Hotel permanently deleted", nil)
}
