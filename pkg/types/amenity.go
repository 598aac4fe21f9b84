package types

// Amenity is a feature a place can offer.
type Amenity struct {
	BaseModel `mapstructure:",squash"`
	Name      string `mapstructure:"name"`
}

// Kind returns KindAmenity.
func (a *Amenity) Kind() Kind { return KindAmenity }

// ToMap returns the serializable form of the amenity.
func (a *Amenity) ToMap(bool) map[string]any {
	m := a.baseMap(KindAmenity)
	m["name"] = a.Name
	return m
}
