package httpserver

import (
	"net/http"

	"hotel_service/internal/domain"
)

func (h *Handlers) searchRooms(w http.ResponseWriter, r *http.Request) {
	q, err := roomQuery(r.URL.Query())
	if err != nil {
		writeDomainError(w, r, err, "room")
		return
	}
	rooms, err := h.Rooms.Search(r.Context(), q)
	if err != nil {
		writeDomainError(w, r, err, "room")
		return
	}
	if rooms == nil {
		rooms = []domain.RoomView{}
	}
	respond(w, http.StatusOK, "Rooms found", rooms)
}
