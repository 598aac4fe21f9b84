package types

import "slices"

// Place is a rental listing in a City, owned by a User. AmenityIDs is the
// forward reference to the amenities it offers; Amenity has no back-pointer.
type Place struct {
	BaseModel       `mapstructure:",squash"`
	CityID          string   `mapstructure:"city_id"`
	UserID          string   `mapstructure:"user_id"`
	Name            string   `mapstructure:"name"`
	Description     string   `mapstructure:"description"`
	NumberRooms     int      `mapstructure:"number_rooms"`
	NumberBathrooms int      `mapstructure:"number_bathrooms"`
	MaxGuest        int      `mapstructure:"max_guest"`
	PriceByNight    int      `mapstructure:"price_by_night"`
	Latitude        float64  `mapstructure:"latitude"`
	Longitude       float64  `mapstructure:"longitude"`
	AmenityIDs      []string `mapstructure:"amenity_ids"`
}

// Kind returns KindPlace.
func (p *Place) Kind() Kind { return KindPlace }

// ToMap returns the serializable form of the place.
func (p *Place) ToMap(bool) map[string]any {
	m := p.baseMap(KindPlace)
	m["city_id"] = p.CityID
	m["user_id"] = p.UserID
	m["name"] = p.Name
	m["description"] = p.Description
	m["number_rooms"] = p.NumberRooms
	m["number_bathrooms"] = p.NumberBathrooms
	m["max_guest"] = p.MaxGuest
	m["price_by_night"] = p.PriceByNight
	m["latitude"] = p.Latitude
	m["longitude"] = p.Longitude
	m["amenity_ids"] = normalizeIDs(slices.Clone(p.AmenityIDs))
	return m
}

// normalize sorts AmenityIDs and drops duplicates.
func (p *Place) normalize() {
	p.AmenityIDs = normalizeIDs(p.AmenityIDs)
}

// normalizeIDs sorts ids in place and removes repeats. A nil slice comes
// back empty.
func normalizeIDs(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// HasAmenity reports whether the place lists amenityID.
func (p *Place) HasAmenity(amenityID string) bool {
	return slices.Contains(p.AmenityIDs, amenityID)
}

// AddAmenity links amenityID, keeping AmenityIDs sorted. Returns false if it
// was already linked.
func (p *Place) AddAmenity(amenityID string) bool {
	i, found := slices.BinarySearch(p.AmenityIDs, amenityID)
	if found || p.HasAmenity(amenityID) {
		return false
	}
	p.AmenityIDs = slices.Insert(p.AmenityIDs, i, amenityID)
	return true
}

// RemoveAmenity unlinks amenityID. Returns false if it was not linked.
func (p *Place) RemoveAmenity(amenityID string) bool {
	i := slices.Index(p.AmenityIDs, amenityID)
	if i < 0 {
		return false
	}
	p.AmenityIDs = slices.Delete(p.AmenityIDs, i, i+1)
	return true
}
