package httpserver

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_service/internal/domain"
)

type HotelAPI interface {
	Create(ctx context.Context, in domain.HotelInput) (domain.Hotel, error)
	ListAll(ctx context.Context) ([]domain.HotelView, error)
	ListActive(ctx context.Context) ([]domain.HotelView, error)
	Search(ctx context.Context, q domain.HotelQuery) ([]domain.HotelView, error)
	GetByID(ctx context.Context, id string) (domain.HotelView, error)
	GetBySlug(ctx context.Context, slug string) (domain.HotelView, error)
	Update(ctx context.Context, id string, p domain.HotelPatch) (domain.HotelView, error)
	SoftDelete(ctx context.Context, id string) (domain.Hotel, error)
	Delete(ctx context.Context, id string) error
}

type RoomAPI interface {
	Create(ctx context.Context, in domain.RoomInput) (domain.Room, error)
	List(ctx context.Context) ([]domain.RoomView, error)
	ListByHotel(ctx context.Context, hotelID string) ([]domain.RoomView, error)
	Search(ctx context.Context, q domain.RoomQuery) ([]domain.RoomView, error)
	GetByID(ctx context.Context, id string) (domain.RoomView, error)
	Update(ctx context.Context, id string, p domain.RoomPatch) (domain.RoomView, error)
	Delete(ctx context.Context, id string) (domain.Room, error)
}

type RoomTypeAPI interface {
	Create(ctx context.Context, in domain.RoomTypeInput) (domain.RoomType, error)
	List(ctx context.Context) ([]domain.RoomTypeView, error)
	GetByID(ctx context.Context, id string) (domain.RoomTypeView, error)
	Update(ctx context.Context, id string, p domain.RoomTypePatch) (domain.RoomTypeView, error)
	Delete(ctx context.Context, id string) (domain.RoomType, error)
}

type AmenityAPI interface {
	Create(ctx context.Context, in domain.AmenityInput) (domain.Amenity, error)
	List(ctx context.Context) ([]domain.Amenity, error)
	GetByID(ctx context.Context, id string) (domain.Amenity, error)
	Update(ctx context.Context, id string, p domain.AmenityPatch) (domain.Amenity, error)
	Delete(ctx context.Context, id string) (domain.Amenity, error)
}

type Handlers struct {
	Hotels    HotelAPI
	Rooms     RoomAPI
	RoomTypes RoomTypeAPI
	Amenities AmenityAPI
	// Ready, when set, backs /healthz with a dependency check.
	Ready func(context.Context) error
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", h.healthz)

	s.mux.Route("/api", func(api chi.Router) {
		api.Route("/hotels", func(r chi.Router) {
			r.Post("/", handleCreate("hotel", h.Hotels.Create))
			r.Get("/", handleList("hotels", h.Hotels.ListAll))
			r.Get("/active", handleList("active hotels", h.Hotels.ListActive))
			r.Get("/search", h.searchHotels)
			r.Get("/slug/{slug}", h.hotelBySlug)
			r.Get("/{id}", handleGet("hotel", h.Hotels.GetByID))
			r.Put("/{id}", handleUpdate("hotel", h.Hotels.Update))
			r.Patch("/{id}/soft-delete", handleDeactivate("hotel", h.Hotels.SoftDelete))
			r.Delete("/{id}", h.deleteHotel)
		})
		api.Route("/rooms", func(r chi.Router) {
			r.Post("/", handleCreate("room", h.Rooms.Create))
			r.Get("/", handleList("rooms", h.Rooms.List))
			r.Get("/search", h.searchRooms)
			r.Get("/hotel/{hotelId}", handleListByParam("rooms", "hotelId", h.Rooms.ListByHotel))
			r.Get("/{id}", handleGet("room", h.Rooms.GetByID))
			r.Put("/{id}", handleUpdate("room", h.Rooms.Update))
			r.Delete("/{id}", handleDeactivate("room", h.Rooms.Delete))
		})
		api.Route("/room-types", func(r chi.Router) {
			r.Post("/", handleCreate("room type", h.RoomTypes.Create))
			r.Get("/", handleList("room types", h.RoomTypes.List))
			r.Get("/{id}", handleGet("room type", h.RoomTypes.GetByID))
			r.Put("/{id}", handleUpdate("room type", h.RoomTypes.Update))
			r.Delete("/{id}", handleDeactivate("room type", h.RoomTypes.Delete))
		})
		api.Route("/amenities", func(r chi.Router) {
			r.Post("/", handleCreate("amenity", h.Amenities.Create))
			r.Get("/", handleList("amenities", h.Amenities.List))
			r.Get("/{id}", handleGet("amenity", h.Amenities.GetByID))
			r.Put("/{id}", handleUpdate("amenity", h.Amenities.Update))
			r.Delete("/{id}", handleDeactivate("amenity", h.Amenities.Delete))
		})
		api.NotFound(func(w http.ResponseWriter, r *http.Request) {
			fail(w, http.StatusNotFound, "route not found")
		})
		api.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			fail(w, http.StatusMethodNotAllowed, "method not allowed")
		})
	})
}

func (h *Handlers) healthz(w http.ResponseWriter, r *http.Request) {
	if h.Ready != nil {
		if err := h.Ready(r.Context()); err != nil {
			log.Error().Err(err).Msg("readiness check failed")
			fail(w, http.StatusServiceUnavailable, "service unavailable")
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
