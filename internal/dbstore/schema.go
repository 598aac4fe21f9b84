package dbstore

import "github.com/mesh-intelligence/hbnb/pkg/types"

// Schema DDL for all tables. The statements are portable between SQLite and
// MySQL. Foreign keys are declared; SQLite leaves them unenforced because the
// foreign_keys pragma stays off, InnoDB enforces them.
const (
	createStates = `CREATE TABLE IF NOT EXISTS states (
    id VARCHAR(60) NOT NULL PRIMARY KEY,
    created_at VARCHAR(32) NOT NULL,
    updated_at VARCHAR(32) NOT NULL,
    name VARCHAR(128) NOT NULL
)`

	createUsers = `CREATE TABLE IF NOT EXISTS users (
    id VARCHAR(60) NOT NULL PRIMARY KEY,
    created_at VARCHAR(32) NOT NULL,
    updated_at VARCHAR(32) NOT NULL,
    email VARCHAR(128) NOT NULL UNIQUE,
    password VARCHAR(128) NOT NULL,
    first_name VARCHAR(128),
    last_name VARCHAR(128)
)`

	createAmenities = `CREATE TABLE IF NOT EXISTS amenities (
    id VARCHAR(60) NOT NULL PRIMARY KEY,
    created_at VARCHAR(32) NOT NULL,
    updated_at VARCHAR(32) NOT NULL,
    name VARCHAR(128) NOT NULL
)`

	createCities = `CREATE TABLE IF NOT EXISTS cities (
    id VARCHAR(60) NOT NULL PRIMARY KEY,
    created_at VARCHAR(32) NOT NULL,
    updated_at VARCHAR(32) NOT NULL,
    state_id VARCHAR(60) NOT NULL,
    name VARCHAR(128) NOT NULL,
    FOREIGN KEY (state_id) REFERENCES states(id)
)`

	createPlaces = `CREATE TABLE IF NOT EXISTS places (
    id VARCHAR(60) NOT NULL PRIMARY KEY,
    created_at VARCHAR(32) NOT NULL,
    updated_at VARCHAR(32) NOT NULL,
    city_id VARCHAR(60) NOT NULL,
    user_id VARCHAR(60) NOT NULL,
    name VARCHAR(128) NOT NULL,
    description VARCHAR(1024),
    number_rooms INTEGER NOT NULL DEFAULT 0,
    number_bathrooms INTEGER NOT NULL DEFAULT 0,
    max_guest INTEGER NOT NULL DEFAULT 0,
    price_by_night INTEGER NOT NULL DEFAULT 0,
    latitude DOUBLE,
    longitude DOUBLE,
    FOREIGN KEY (city_id) REFERENCES cities(id),
    FOREIGN KEY (user_id) REFERENCES users(id)
)`

	createReviews = `CREATE TABLE IF NOT EXISTS reviews (
    id VARCHAR(60) NOT NULL PRIMARY KEY,
    created_at VARCHAR(32) NOT NULL,
    updated_at VARCHAR(32) NOT NULL,
    place_id VARCHAR(60) NOT NULL,
    user_id VARCHAR(60) NOT NULL,
    text VARCHAR(1024) NOT NULL,
    FOREIGN KEY (place_id) REFERENCES places(id),
    FOREIGN KEY (user_id) REFERENCES users(id)
)`

	createPlaceAmenity = `CREATE TABLE IF NOT EXISTS place_amenity (
    place_id VARCHAR(60) NOT NULL,
    amenity_id VARCHAR(60) NOT NULL,
    PRIMARY KEY (place_id, amenity_id),
    FOREIGN KEY (place_id) REFERENCES places(id),
    FOREIGN KEY (amenity_id) REFERENCES amenities(id)
)`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createStates,
	createUsers,
	createAmenities,
	createCities,
	createPlaces,
	createReviews,
	createPlaceAmenity,
}

// dropDDL drops every table, children first.
var dropDDL = []string{
	`DROP TABLE IF EXISTS place_amenity`,
	`DROP TABLE IF EXISTS reviews`,
	`DROP TABLE IF EXISTS places`,
	`DROP TABLE IF EXISTS cities`,
	`DROP TABLE IF EXISTS amenities`,
	`DROP TABLE IF EXISTS users`,
	`DROP TABLE IF EXISTS states`,
}

// tableDef maps an entity kind to its table and column list. Place amenity
// ids live in place_amenity, not in a column.
type tableDef struct {
	name    string
	columns []string
}

var baseColumns = []string{"id", "created_at", "updated_at"}

func withBase(cols ...string) []string {
	return append(append([]string{}, baseColumns...), cols...)
}

var tables = map[types.Kind]tableDef{
	types.KindState:   {"states", withBase("name")},
	types.KindUser:    {"users", withBase("email", "password", "first_name", "last_name")},
	types.KindAmenity: {"amenities", withBase("name")},
	types.KindCity:    {"cities", withBase("state_id", "name")},
	types.KindPlace: {"places", withBase("city_id", "user_id", "name", "description",
		"number_rooms", "number_bathrooms", "max_guest", "price_by_night", "latitude", "longitude")},
	types.KindReview: {"reviews", withBase("place_id", "user_id", "text")},
}
