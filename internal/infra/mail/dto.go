package mail

type CoverageLeadData struct {
	ClientName string
	Endereco   string
	Cidade     string
	Cep        string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
