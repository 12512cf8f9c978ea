package mongo

import (
	"context"
	"time"

	"hotel_service/internal/domain"
)

func (s *Store) InsertRoom(ctx context.Context, r domain.Room) error {
	return insertOne(ctx, s.rooms, r)
}

func (s *Store) GetRoom(ctx context.Context, id string, activeOnly bool) (domain.Room, error) {
	return findOne[domain.Room](ctx, s.rooms, "get", append(activeFilter(activeOnly), byID(id)...))
}

func (s *Store) ListRooms(ctx context.Context, q domain.RoomQuery) ([]domain.Room, error) {
	return findMany[domain.Room](ctx, s.rooms, "list", roomFilter(q), roomSort(q.Sort))
}

func (s *Store) UpdateRoom(ctx context.Context, id string, p domain.RoomPatch) (domain.Room, error) {
	return updateOne[domain.Room](ctx, s.rooms, "update", id, roomUpdate(p, time.Now().UTC()))
}

func (s *Store) SetRoomActive(ctx context.Context, id string, active bool) (domain.Room, error) {
	return setActive[domain.Room](ctx, s.rooms, id, active)
}
