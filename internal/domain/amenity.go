package domain

import "time"

const DefaultAmenityIcon = "default-amenity.png"

type Amenity struct {
	ID          string    `json:"id" bson:"document_id"`
	Name        string    `json:"name" bson:"name" validate:"required,max=128"`
	Description string    `json:"description" bson:"description"`
	Icon        string    `json:"icon" bson:"icon"`
	Active      bool      `json:"is_active" bson:"is_active"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

type AmenityInput struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Icon        *string `json:"icon"`
	Active      *bool   `json:"is_active"`
}

type AmenityPatch struct {
	Name        Optional[string] `json:"name"`
	Description Optional[string] `json:"description"`
	Icon        Optional[string] `json:"icon"`
	Active      Optional[bool]   `json:"is_active"`
}

func (p AmenityPatch) Apply(a *Amenity) {
	p.Name.Apply(&a.Name)
	p.Description.Apply(&a.Description)
	p.Icon.Apply(&a.Icon)
	p.Active.Apply(&a.Active)
}
