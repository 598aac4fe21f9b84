package types

// Review is a user's comment on a place.
type Review struct {
	BaseModel `mapstructure:",squash"`
	PlaceID   string `mapstructure:"place_id"`
	UserID    string `mapstructure:"user_id"`
	Text      string `mapstructure:"text"`
}

// Kind returns KindReview.
func (r *Review) Kind() Kind { return KindReview }

// ToMap returns the serializable form of the review.
func (r *Review) ToMap(bool) map[string]any {
	m := r.baseMap(KindReview)
	m["place_id"] = r.PlaceID
	m["user_id"] = r.UserID
	m["text"] = r.Text
	return m
}
