package readykit

import "fmt"

// Location identifies the place a collection pass gathers documents for.
// It is constructed once by the caller and shared read-only by every
// provider in the pass.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	ZIPCode   string  `json:"zipCode"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Country   string  `json:"country"`
}

// String returns the human-readable "City, ST" form used in document titles
// and location metadata.
func (l Location) String() string {
	if l.City == "" {
		return l.State
	}
	if l.State == "" {
		return l.City
	}
	return l.City + ", " + l.State
}

// Validate returns an error if the location is missing fields providers
// depend on or carries out-of-range coordinates.
func (l Location) Validate() error {
	if l.City == "" {
		return Errorf(EINVALID, "location city required")
	}
	if l.State == "" {
		return Errorf(EINVALID, "location state required")
	}
	if l.Latitude < -90 || l.Latitude > 90 {
		return Errorf(EINVALID, "location latitude %v out of range", l.Latitude)
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return Errorf(EINVALID, "location longitude %v out of range", l.Longitude)
	}
	return nil
}

// Query returns the best free-text query string for directory-style APIs:
// the ZIP code when present, otherwise "City, ST".
func (l Location) Query() string {
	if l.ZIPCode != "" {
		return l.ZIPCode
	}
	return l.String()
}

// Point returns the latitude,longitude pair formatted for point-based APIs.
func (l Location) Point() string {
	return fmt.Sprintf("%.4f,%.4f", l.Latitude, l.Longitude)
}
