package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/cezarfreitas/completa-hub/internal/entity"
)

const coverageLeadTemplate = `
<h2>Novo lead com cobertura - {{.ClientName}}</h2>
<p>Uma consulta de viabilidade retornou cobertura para o endereço:</p>
<ul>
  <li>Endereço: {{.Endereco}}</li>
  <li>Cidade: {{.Cidade}}</li>
  <li>CEP: {{.Cep}}</li>
</ul>
<p>A pré-assinatura já foi registrada na API Completa.</p>
`

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     "nao-responda@completahub.com",
	}
}

// SendCoverageLead avisa o cliente que uma viabilidade fechou com cobertura.
func (s *EmailSender) SendCoverageLead(to, clientName string, result *entity.FlowResult) error {
	data := CoverageLeadData{
		ClientName: clientName,
		Endereco:   fmt.Sprintf("%s, %s - %s", result.Rua, result.Numero, result.Bairro),
		Cidade:     result.Cidade,
		Cep:        result.Cep,
	}

	t, err := template.New("coverage-lead").Parse(coverageLeadTemplate)
	if err != nil {
		return fmt.Errorf("erro ao ler template de email: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Novo lead com cobertura (%s)", clientName))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
