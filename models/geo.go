package models

// GeoLocation is a location code in the geo-ban list (for example "US").
type GeoLocation string

// EntryID returns the location code.
func (g GeoLocation) EntryID() string {
	return string(g)
}

// GeoLocationsFromStrings converts raw codes to [GeoLocation] values.
func GeoLocationsFromStrings(codes []string) []GeoLocation {
	out := make([]GeoLocation, 0, len(codes))
	for _, c := range codes {
		out = append(out, GeoLocation(c))
	}
	return out
}

// GeoLocationStrings converts locations back to raw codes.
func GeoLocationStrings(locations []GeoLocation) []string {
	out := make([]string, 0, len(locations))
	for _, l := range locations {
		out = append(out, string(l))
	}
	return out
}
