package domain

import "time"

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
	RoomReserved    RoomStatus = "reserved"
)

// Valid reports membership only; any status may follow any other.
func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance, RoomReserved:
		return true
	}
	return false
}

type Room struct {
	ID         string     `json:"id" bson:"document_id"`
	HotelID    string     `json:"hotel" bson:"hotel" validate:"required"`
	RoomTypeID string     `json:"room_type" bson:"room_type" validate:"required"`
	RoomNumber string     `json:"room_number" bson:"room_number" validate:"required,max=32"`
	Floor      int        `json:"floor" bson:"floor"`
	Price      float64    `json:"price" bson:"price" validate:"gte=0"`
	Status     RoomStatus `json:"status" bson:"status" validate:"oneof=available occupied maintenance reserved"`
	Amenities  []string   `json:"amenities" bson:"amenities"`
	Active     bool       `json:"is_active" bson:"is_active"`
	CreatedAt  time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt" bson:"updatedAt"`
}

type RoomInput struct {
	HotelID    string     `json:"hotel" validate:"required"`
	RoomTypeID string     `json:"room_type" validate:"required"`
	RoomNumber string     `json:"room_number" validate:"required"`
	Floor      *int       `json:"floor" validate:"required"`
	Price      *float64   `json:"price" validate:"required"`
	Status     RoomStatus `json:"status"`
	Amenities  []string   `json:"amenities"`
	Active     *bool      `json:"is_active"`
}

type RoomPatch struct {
	HotelID    Optional[string]     `json:"hotel"`
	RoomTypeID Optional[string]     `json:"room_type"`
	RoomNumber Optional[string]     `json:"room_number"`
	Floor      Optional[int]        `json:"floor"`
	Price      Optional[float64]    `json:"price"`
	Status     Optional[RoomStatus] `json:"status"`
	Amenities  Optional[[]string]   `json:"amenities"`
	Active     Optional[bool]       `json:"is_active"`
}

func (p RoomPatch) Apply(r *Room) {
	p.HotelID.Apply(&r.HotelID)
	p.RoomTypeID.Apply(&r.RoomTypeID)
	p.RoomNumber.Apply(&r.RoomNumber)
	p.Floor.Apply(&r.Floor)
	p.Price.Apply(&r.Price)
	p.Status.Apply(&r.Status)
	p.Amenities.Apply(&r.Amenities)
	p.Active.Apply(&r.Active)
}

type RoomView struct {
	Room
	Hotel     *Hotel    `json:"hotel"`
	RoomType  *RoomType `json:"room_type"`
	Amenities []Amenity `json:"amenities"`
}

type RoomSort int

const (
	RoomsNewestFirst RoomSort = iota // createdAt desc
	RoomsByFloor                     // floor, room_number asc
	RoomsByPrice                     // price asc
)

type RoomQuery struct {
	ActiveOnly bool
	HotelID    string
	RoomTypeID string
	Status     RoomStatus
	MinPrice   *float64
	MaxPrice   *float64
	Amenities  []string // any-of
	Sort       RoomSort
}
