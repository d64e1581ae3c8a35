package completa

// --- PAYLOAD: o que mandamos para a API Completa ---

// Coordinates vai como string no JSON. Exigência do contrato da API
// Completa, não converter para número.
type Coordinates struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

type Subscription struct {
	PreSubscription bool        `json:"pre_subscription"`
	TelefoneCelular string      `json:"telefone_celular"`
	NomeRazaoSocial string      `json:"nome_razao_social"`
	Rua             string      `json:"rua"`
	Numero          string      `json:"numero"`
	Cidade          string      `json:"cidade"`
	Bairro          string      `json:"bairro"`
	Cep             string      `json:"cep"`
	Coordinates     Coordinates `json:"coordinates"`
}

type SubscriptionRequest struct {
	PlanID       int          `json:"plan_id"`
	Subscription Subscription `json:"subscription"`
}

// --- RESPONSE: o que a API Completa devolve ---

type subscriptionResponse struct {
	Data *struct {
		ID         string `json:"id"`
		Attributes *struct {
			Coverage *bool `json:"coverage"`
		} `json:"attributes"`
	} `json:"data"`
}

// SubscriptionResult é o resultado já reconciliado. SubscriberID nil quando
// a API não gerou id (não é erro).
type SubscriptionResult struct {
	Coverage     bool
	SubscriberID *string
}
