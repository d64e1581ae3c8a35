package entity

// WebhookBody é o payload recebido no webhook de viabilidade.
// Todos os campos são obrigatórios.
type WebhookBody struct {
	Rua      string `json:"rua"`
	Numero   string `json:"numero"`
	Bairro   string `json:"bairro"`
	Cidade   string `json:"cidade"`
	Cep      string `json:"cep"`
	Nome     string `json:"nome"`
	Whatsapp string `json:"whatsapp"`
}

// FlowResult é a resposta canônica do fluxo de viabilidade.
// IDConecteAI pode ser null mesmo em sucesso: a API Completa aceitou a
// pré-assinatura mas não gerou id.
type FlowResult struct {
	Cobertura   string  `json:"Cobertura"`
	Rua         string  `json:"rua"`
	Numero      string  `json:"numero"`
	Bairro      string  `json:"bairro"`
	Cidade      string  `json:"cidade"`
	Estado      string  `json:"estado"`
	Cep         string  `json:"cep"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	IDConecteAI *string `json:"id_conecteai"`
}

const (
	CoberturaSim = "Tem Cobertura"
	CoberturaNao = "Sem Cobertura"
)

// FlowError é a variante de falha estruturada do fluxo.
// Só existem duas condições que a produzem: chave do Geocode ausente e
// endereço não encontrado. Qualquer outra falha sobe como erro comum.
type FlowError struct {
	Message string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (e *FlowError) Error() string {
	return e.Message
}
