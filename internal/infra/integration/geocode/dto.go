package geocode

// Estruturas espelham o JSON da API de Geocode do Google.
// Só os campos que o fluxo consome.

type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Geometry struct {
	Location Location `json:"location"`
}

type Result struct {
	AddressComponents []AddressComponent `json:"address_components"`
	Geometry          Geometry           `json:"geometry"`
}

type geocodeResponse struct {
	Results []Result `json:"results"`
	Status  string   `json:"status"`
}
