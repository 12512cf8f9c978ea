package mongo

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"hotel_service/internal/domain"
)

func activeFilter(activeOnly bool) bson.D {
	if activeOnly {
		return bson.D{{Key: "is_active", Value: true}}
	}
	return bson.D{}
}

// contains is a case-insensitive literal substring match.
func contains(s string) bson.Regex {
	return bson.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

// between builds a range document from optional bounds; nil when neither is set.
func between(lo, hi *float64) bson.D {
	var d bson.D
	if lo != nil {
		d = append(d, bson.E{Key: "$gte", Value: *lo})
	}
	if hi != nil {
		d = append(d, bson.E{Key: "$lte", Value: *hi})
	}
	return d
}

func hotelFilter(q domain.HotelQuery) bson.D {
	f := activeFilter(q.ActiveOnly)
	if q.Text != "" {
		rx := contains(q.Text)
		f = append(f, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "displayName", Value: rx}},
			bson.D{{Key: "description", Value: rx}},
			bson.D{{Key: "region", Value: rx}},
		}})
	}
	if q.Region != "" {
		f = append(f, bson.E{Key: "region", Value: contains(q.Region)})
	}
	if r := between(q.MinPrice, q.MaxPrice); r != nil {
		f = append(f, bson.E{Key: "price", Value: r})
	}
	star := between(q.MinStar, q.MaxStar)
	if q.StarRating != nil {
		star = append(bson.D{{Key: "$eq", Value: *q.StarRating}}, star...)
	}
	if star != nil {
		f = append(f, bson.E{Key: "starRating", Value: star})
	}
	if len(q.Features) > 0 {
		f = append(f, bson.E{Key: "hotelFeatures", Value: bson.D{{Key: "$in", Value: q.Features}}})
	}
	if len(q.Amenities) > 0 {
		f = append(f, bson.E{Key: "amenities", Value: bson.D{{Key: "$in", Value: q.Amenities}}})
	}
	if q.Geo != nil {
		minLat, maxLat, minLng, maxLng := q.Geo.Box()
		f = append(f,
			bson.E{Key: "latitude", Value: bson.D{{Key: "$gte", Value: minLat}, {Key: "$lte", Value: maxLat}}},
			bson.E{Key: "longitude", Value: bson.D{{Key: "$gte", Value: minLng}, {Key: "$lte", Value: maxLng}}},
		)
	}
	return f
}

func roomFilter(q domain.RoomQuery) bson.D {
	f := activeFilter(q.ActiveOnly)
	if q.HotelID != "" {
		f = append(f, bson.E{Key: "hotel", Value: q.HotelID})
	}
	if q.RoomTypeID != "" {
		f = append(f, bson.E{Key: "room_type", Value: q.RoomTypeID})
	}
	if q.Status != "" {
		f = append(f, bson.E{Key: "status", Value: string(q.Status)})
	}
	if r := between(q.MinPrice, q.MaxPrice); r != nil {
		f = append(f, bson.E{Key: "price", Value: r})
	}
	if len(q.Amenities) > 0 {
		f = append(f, bson.E{Key: "amenities", Value: bson.D{{Key: "$in", Value: q.Amenities}}})
	}
	return f
}

var newestFirst = bson.D{{Key: "createdAt", Value: -1}}

func roomSort(s domain.RoomSort) bson.D {
	switch s {
	case domain.RoomsByFloor:
		return bson.D{{Key: "floor", Value: 1}, {Key: "room_number", Value: 1}}
	case domain.RoomsByPrice:
		return bson.D{{Key: "price", Value: 1}}
	default:
		return newestFirst
	}
}

func inIDs(ids []string) bson.D {
	return bson.D{{Key: "document_id", Value: bson.D{{Key: "$in", Value: ids}}}}
}

// update accumulates $set and $unset clauses from a patch.
type update struct {
	set   bson.D
	unset bson.D
}

// put sets key from o; an explicit null stores the zero value.
func put[T any](u *update, key string, o domain.Optional[T]) {
	if !o.Set {
		return
	}
	var v T
	if !o.Null {
		v = o.Value
	}
	u.set = append(u.set, bson.E{Key: key, Value: v})
}

// putList stores lists as arrays, never null.
func putList(u *update, key string, o domain.Optional[[]string]) {
	if !o.Set {
		return
	}
	v := o.Value
	if o.Null || v == nil {
		v = []string{}
	}
	u.set = append(u.set, bson.E{Key: key, Value: v})
}

// putNullable removes the field on an explicit null.
func putNullable[T any](u *update, key string, o domain.Optional[T]) {
	if !o.Set {
		return
	}
	if o.Null {
		u.unset = append(u.unset, bson.E{Key: key, Value: ""})
		return
	}
	u.set = append(u.set, bson.E{Key: key, Value: o.Value})
}

func (u update) doc(now time.Time) bson.D {
	set := append(u.set, bson.E{Key: "updatedAt", Value: now})
	d := bson.D{{Key: "$set", Value: set}}
	if len(u.unset) > 0 {
		d = append(d, bson.E{Key: "$unset", Value: u.unset})
	}
	return d
}

func hotelUpdate(p domain.HotelPatch, now time.Time) bson.D {
	var u update
	put(&u, "displayName", p.DisplayName)
	put(&u, "description", p.Description)
	put(&u, "region", p.Region)
	putNullable(&u, "latitude", p.Latitude)
	putNullable(&u, "longitude", p.Longitude)
	put(&u, "price", p.Price)
	put(&u, "starRating", p.StarRating)
	put(&u, "userRating", p.UserRating)
	put(&u, "numReviews", p.NumReviews)
	put(&u, "userRatingInfo", p.UserRatingInfo)
	put(&u, "imageUrl", p.ImageURL)
	putList(&u, "imageUrls", p.ImageURLs)
	putList(&u, "hotelFeatures", p.HotelFeatures)
	putList(&u, "amenities", p.Amenities)
	put(&u, "is_active", p.Active)
	put(&u, "slug", p.Slug)
	return u.doc(now)
}

func roomUpdate(p domain.RoomPatch, now time.Time) bson.D {
	var u update
	put(&u, "hotel", p.HotelID)
	put(&u, "room_type", p.RoomTypeID)
	put(&u, "room_number", p.RoomNumber)
	put(&u, "floor", p.Floor)
	put(&u, "price", p.Price)
	put(&u, "status", p.Status)
	putList(&u, "amenities", p.Amenities)
	put(&u, "is_active", p.Active)
	return u.doc(now)
}

func roomTypeUpdate(p domain.RoomTypePatch, now time.Time) bson.D {
	var u update
	put(&u, "name", p.Name)
	put(&u, "description", p.Description)
	put(&u, "base_price", p.BasePrice)
	put(&u, "max_capacity", p.MaxCapacity)
	putList(&u, "amenities", p.Amenities)
	put(&u, "is_active", p.Active)
	return u.doc(now)
}

func amenityUpdate(p domain.AmenityPatch, now time.Time) bson.D {
	var u update
	put(&u, "name", p.Name)
	put(&u, "description", p.Description)
	put(&u, "icon", p.Icon)
	put(&u, "is_active", p.Active)
	return u.doc(now)
}
