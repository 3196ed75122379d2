package domain

import "time"

// Accommodation is a published listing, keyed by its register number.
// Wire spelling of the endpoint family is "accomodations" — the server's,
// kept as-is.
type Accommodation struct {
	RegisterNumber string      `json:"registerNumber"`
	NumOfBeds      int         `json:"numOfBeds"`
	NumOfBathRooms int         `json:"numOfBathRooms"`
	NumOfBedRooms  int         `json:"numOfBedRooms"`
	PricePerNight  float64     `json:"pricePerNight"`
	NumOfGuests    int         `json:"numOfGuests"`
	Area           float64     `json:"area,omitempty"`
	Category       string      `json:"category,omitempty"`
	Location       Location    `json:"accomodationLocation"`
	Images         []string    `json:"accomodationImages"`
	Rules          []string    `json:"accomodationRules"`
	Services       []string    `json:"accomodationServices"`
	PromoCodes     []PromoCode `json:"promoCodes,omitempty"`
	Host           HostRef     `json:"userHost"`
	Stars          float64     `json:"stars,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// Location is where an accommodation sits.
type Location struct {
	Coords    Coordinate `json:"coords"`
	Direction string     `json:"direction"`
	City      string     `json:"city"`
	Zip       string     `json:"zip"`
}

// Coordinate is a latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PromoCode is a discount code attached to a listing. Discount is the
// fraction of the stay price taken off, e.g. 0.15 for 15%.
type PromoCode struct {
	Code     string  `json:"code"`
	Discount float64 `json:"discount"`
}

// HostRef is the minimal host representation embedded in a listing.
type HostRef struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Surname      string `json:"surname"`
	ProfileImage string `json:"profileImage,omitempty"`
}
