package sample

// GeoLocation is the sampling location. Latitude and longitude are
// always both set when the value exists at all; elevation and place
// are optional extras.
type GeoLocation struct {
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	Elevation     *float64 `json:"elevation,omitempty"`
	ElevationUnit string   `json:"elevation_unit,omitempty"`
	Place         string   `json:"place,omitempty"`
}

// InBounds reports whether the coordinates fall inside the valid
// WGS 84 ranges.
func (g *GeoLocation) InBounds() bool {
	if g == nil {
		return false
	}
	return g.Latitude >= -90 && g.Latitude <= 90 &&
		g.Longitude >= -180 && g.Longitude <= 180
}
