package usecase

import (
	"strings"

	"github.com/cezarfreitas/completa-hub/internal/entity"
	"github.com/cezarfreitas/completa-hub/internal/infra/integration/geocode"
)

// extractedAddress carrega os campos já resolvidos (geocode ou fallback do
// body) que alimentam a pré-assinatura.
type extractedAddress struct {
	Rua       string
	Numero    string
	Bairro    string
	Cep       string
	Cidade    string
	Estado    string
	Latitude  float64
	Longitude float64
	Nome      string
	Whatsapp  string
}

// componentByTypes devolve o primeiro componente cujo conjunto de types
// cruza com os candidatos. A ordem dos componentes do geocode manda.
func componentByTypes(components []geocode.AddressComponent, candidates []string) *geocode.AddressComponent {
	for i := range components {
		for _, t := range components[i].Types {
			for _, candidate := range candidates {
				if t == candidate {
					return &components[i]
				}
			}
		}
	}
	return nil
}

func longByTypes(components []geocode.AddressComponent, candidates []string) string {
	if c := componentByTypes(components, candidates); c != nil {
		return c.LongName
	}
	return ""
}

func shortByTypes(components []geocode.AddressComponent, candidates []string) string {
	if c := componentByTypes(components, candidates); c != nil {
		return c.ShortName
	}
	return ""
}

// extractAddress resolve cada campo independentemente: valor do geocode
// quando o tipo existe, senão o valor cru do body. Estado não tem fallback
// porque o body não traz estado. Função pura.
func extractAddress(result geocode.Result, body entity.WebhookBody) extractedAddress {
	comps := result.AddressComponents

	return extractedAddress{
		Rua:       fallback(longByTypes(comps, []string{"route"}), body.Rua),
		Numero:    fallback(longByTypes(comps, []string{"street_number"}), body.Numero),
		Bairro:    fallback(longByTypes(comps, []string{"sublocality", "sublocality_level_1", "neighborhood"}), body.Bairro),
		Cep:       fallback(longByTypes(comps, []string{"postal_code"}), body.Cep),
		Cidade:    fallback(longByTypes(comps, []string{"administrative_area_level_2"}), body.Cidade),
		Estado:    longByTypes(comps, []string{"administrative_area_level_1"}),
		Latitude:  result.Geometry.Location.Lat,
		Longitude: result.Geometry.Location.Lng,
		Nome:      body.Nome,
		Whatsapp:  normalizeWhatsapp(body.Whatsapp),
	}
}

func fallback(value, raw string) string {
	if value == "" {
		return raw
	}
	return value
}

// normalizeWhatsapp tira o DDI 55 do começo, uma vez só. Não é parsing de
// telefone, é só o strip que o fluxo sempre fez.
func normalizeWhatsapp(phone string) string {
	return strings.TrimPrefix(phone, "55")
}
