package model

// Grade is a letter ranking summarizing a neighborhood's score.
type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeBPlus Grade = "B+"
	GradeB     Grade = "B"
	GradeCPlus Grade = "C+"
	GradeC     Grade = "C"
)

// Coordinates is a (lat, lng) pair, encoded as a two-element array.
type Coordinates [2]float64

// Lat returns the latitude.
func (c Coordinates) Lat() float64 { return c[0] }

// Lng returns the longitude.
func (c Coordinates) Lng() float64 { return c[1] }

// NeighborhoodStats are the walkability and amenity counts for an area.
type NeighborhoodStats struct {
	WalkScore    int    `json:"walkScore" yaml:"walkScore"`
	TransitScore int    `json:"transitScore" yaml:"transitScore"`
	BikeScore    int    `json:"bikeScore" yaml:"bikeScore"`
	CrimeRate    string `json:"crimeRate" yaml:"crimeRate"`
	Schools      int    `json:"schools" yaml:"schools"`
	Restaurants  int    `json:"restaurants" yaml:"restaurants"`
	Cafes        int    `json:"cafes" yaml:"cafes"`
	Shops        int    `json:"shops" yaml:"shops"`
}

// NeighborhoodDetails are the free-text descriptions shown in the detail panel.
type NeighborhoodDetails struct {
	Overview       string `json:"overview" yaml:"overview"`
	Transportation string `json:"transportation" yaml:"transportation"`
	Amenities      string `json:"amenities" yaml:"amenities"`
	Demographics   string `json:"demographics" yaml:"demographics"`
}

// Place is a point of interest near a neighborhood.
type Place struct {
	Name     string  `json:"name" yaml:"name"`
	Type     string  `json:"type" yaml:"type"`
	Distance string  `json:"distance" yaml:"distance"`
	Rating   float64 `json:"rating" yaml:"rating"`
}

// Neighborhood is one entry of the ranking catalog. Rent is a
// currency-prefixed string ("£2,400") and Commute a minute count with a
// "min" suffix ("18min").
type Neighborhood struct {
	ID           string              `json:"id" yaml:"id"`
	Name         string              `json:"name" yaml:"name"`
	Score        int                 `json:"score" yaml:"score"`
	Grade        Grade               `json:"grade" yaml:"grade"`
	Rent         string              `json:"rent" yaml:"rent"`
	Commute      string              `json:"commute" yaml:"commute"`
	Coordinates  Coordinates         `json:"coordinates" yaml:"coordinates"`
	Stats        NeighborhoodStats   `json:"stats" yaml:"stats"`
	Details      NeighborhoodDetails `json:"details" yaml:"details"`
	NearbyPlaces []Place             `json:"nearbyPlaces" yaml:"nearbyPlaces"`
}

// OfficeLocation is the resolved workplace a neighborhood search is anchored on.
type OfficeLocation struct {
	Address      string      `json:"address"`
	Coordinates  Coordinates `json:"coordinates"`
	Neighborhood string      `json:"neighborhood"`
}
