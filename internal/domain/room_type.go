package domain

import "time"

type RoomType struct {
	ID          string    `json:"id" bson:"document_id"`
	Name        string    `json:"name" bson:"name" validate:"required,max=128"`
	Description string    `json:"description" bson:"description"`
	BasePrice   float64   `json:"base_price" bson:"base_price" validate:"gte=0"`
	MaxCapacity int       `json:"max_capacity" bson:"max_capacity" validate:"gte=1"`
	Amenities   []string  `json:"amenities" bson:"amenities"`
	Active      bool      `json:"is_active" bson:"is_active"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

type RoomTypeInput struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	BasePrice   *float64 `json:"base_price" validate:"required"`
	MaxCapacity *int     `json:"max_capacity" validate:"required"`
	Amenities   []string `json:"amenities"`
	Active      *bool    `json:"is_active"`
}

type RoomTypePatch struct {
	Name        Optional[string]   `json:"name"`
	Description Optional[string]   `json:"description"`
	BasePrice   Optional[float64]  `json:"base_price"`
	MaxCapacity Optional[int]      `json:"max_capacity"`
	Amenities   Optional[[]string] `json:"amenities"`
	Active      Optional[bool]     `json:"is_active"`
}

func (p RoomTypePatch) Apply(rt *RoomType) {
	p.Name.Apply(&rt.Name)
	p.Description.Apply(&rt.Description)
	p.BasePrice.Apply(&rt.BasePrice)
	p.MaxCapacity.Apply(&rt.MaxCapacity)
	p.Amenities.Apply(&rt.Amenities)
	p.Active.Apply(&rt.Active)
}

type RoomTypeView struct {
	RoomType
	Amenities []Amenity `json:"amenities"`
}
