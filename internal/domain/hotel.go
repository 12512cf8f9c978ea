package domain

import "time"

const (
	DefaultHotelDescription = "Không có mô tả"
	DefaultUserRatingInfo   = "Chưa có đánh giá"
	DefaultHotelImage       = "default.webp"
	DefaultStarRating       = 3.0
)

type Hotel struct {
	ID             string    `json:"id" bson:"document_id"`
	DisplayName    string    `json:"displayName" bson:"displayName" validate:"required,max=256"`
	Description    string    `json:"description" bson:"description"`
	Region         string    `json:"region" bson:"region"`
	Latitude       *float64  `json:"latitude" bson:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude      *float64  `json:"longitude" bson:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	Price          float64   `json:"price" bson:"price" validate:"gte=0"`
	StarRating     float64   `json:"starRating" bson:"starRating" validate:"gte=0,lte=5"`
	UserRating     float64   `json:"userRating" bson:"userRating" validate:"gte=0,lte=10"`
	NumReviews     int       `json:"numReviews" bson:"numReviews" validate:"gte=0"`
	UserRatingInfo string    `json:"userRatingInfo" bson:"userRatingInfo"`
	ImageURL       string    `json:"imageUrl" bson:"imageUrl"`
	ImageURLs      []string  `json:"imageUrls" bson:"imageUrls"`
	HotelFeatures  []string  `json:"hotelFeatures" bson:"hotelFeatures"`
	Amenities      []string  `json:"amenities" bson:"amenities"` // amenity ids
	Slug           string    `json:"slug" bson:"slug" validate:"required"`
	Active         bool      `json:"is_active" bson:"is_active"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt"`
}

// HotelInput is the create payload; pointer fields fall back to defaults.
type HotelInput struct {
	DisplayName    string   `json:"displayName" validate:"required"`
	Description    *string  `json:"description"`
	Region         string   `json:"region"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	Price          *float64 `json:"price"`
	StarRating     *float64 `json:"starRating"`
	UserRating     *float64 `json:"userRating"`
	NumReviews     *int     `json:"numReviews"`
	UserRatingInfo *string  `json:"userRatingInfo"`
	ImageURL       *string  `json:"imageUrl"`
	ImageURLs      []string `json:"imageUrls"`
	HotelFeatures  []string `json:"hotelFeatures"`
	Amenities      []string `json:"amenities"`
	Active         *bool    `json:"is_active"`
}

type HotelPatch struct {
	DisplayName    Optional[string]   `json:"displayName"`
	Description    Optional[string]   `json:"description"`
	Region         Optional[string]   `json:"region"`
	Latitude       Optional[float64]  `json:"latitude"`
	Longitude      Optional[float64]  `json:"longitude"`
	Price          Optional[float64]  `json:"price"`
	StarRating     Optional[float64]  `json:"starRating"`
	UserRating     Optional[float64]  `json:"userRating"`
	NumReviews     Optional[int]      `json:"numReviews"`
	UserRatingInfo Optional[string]   `json:"userRatingInfo"`
	ImageURL       Optional[string]   `json:"imageUrl"`
	ImageURLs      Optional[[]string] `json:"imageUrls"`
	HotelFeatures  Optional[[]string] `json:"hotelFeatures"`
	Amenities      Optional[[]string] `json:"amenities"`
	Active         Optional[bool]     `json:"is_active"`

	// Slug is derived from DisplayName by the service, never taken from clients.
	Slug Optional[string] `json:"-"`
}

func (p HotelPatch) Apply(h *Hotel) {
	p.DisplayName.Apply(&h.DisplayName)
	p.Description.Apply(&h.Description)
	p.Region.Apply(&h.Region)
	p.Latitude.ApplyPtr(&h.Latitude)
	p.Longitude.ApplyPtr(&h.Longitude)
	p.Price.Apply(&h.Price)
	p.StarRating.Apply(&h.StarRating)
	p.UserRating.Apply(&h.UserRating)
	p.NumReviews.Apply(&h.NumReviews)
	p.UserRatingInfo.Apply(&h.UserRatingInfo)
	p.ImageURL.Apply(&h.ImageURL)
	p.ImageURLs.Apply(&h.ImageURLs)
	p.HotelFeatures.Apply(&h.HotelFeatures)
	p.Amenities.Apply(&h.Amenities)
	p.Active.Apply(&h.Active)
	p.Slug.Apply(&h.Slug)
}

// HotelView is a hotel with its amenity references resolved.
type HotelView struct {
	Hotel
	Amenities []Amenity `json:"amenities"`
}

type HotelQuery struct {
	ActiveOnly bool
	Text       string // matched against displayName, description, region
	Region     string
	MinPrice   *float64
	MaxPrice   *float64
	StarRating *float64
	MinStar    *float64
	MaxStar    *float64
	Features   []string // any-of
	Amenities  []string // any-of
	Geo        *GeoFilter
}
