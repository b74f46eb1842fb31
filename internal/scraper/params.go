package scraper

import "net/url"

// Neighborhood anchors a listings search to one Porto Alegre
// neighborhood. AltName carries the accented display form when it
// differs from the location-ID form.
type Neighborhood struct {
	Name    string
	AltName string
	Lat     string
	Lon     string
}

// DisplayName returns the accented form when one is set.
func (n Neighborhood) DisplayName() string {
	if n.AltName != "" {
		return n.AltName
	}
	return n.Name
}

// DefaultNeighborhoods are the neighborhoods covered by the flood
// analysis: two that went under in the 2024 flood and two that stayed
// dry, for contrast.
func DefaultNeighborhoods() []Neighborhood {
	return []Neighborhood{
		{Name: "Menino Deus", Lat: "-30.05444", Lon: "-51.222427"},
		{Name: "Cidade Baixa", Lat: "-30.040167", Lon: "-51.222861"},
		{Name: "Centro Historico", AltName: "Centro Histórico", Lat: "-30.030804", Lon: "-51.227824"},
		{Name: "Sarandi", Lat: "-29.986181", Lon: "-51.129206"},
	}
}

// searchParams returns the address query parameters the glue API
// expects for a neighborhood-scoped search.
func (n Neighborhood) searchParams() url.Values {
	return url.Values{
		"addressCity":         {"Porto Alegre"},
		"addressLocationId":   {"BR>Rio Grande do Sul>NULL>Porto Alegre>Barrios>" + n.Name},
		"addressState":        {"Rio Grande do Sul"},
		"addressNeighborhood": {n.DisplayName()},
		"addressPointLat":     {n.Lat},
		"addressPointLon":     {n.Lon},
		"addressType":         {"neighborhood"},
	}
}
