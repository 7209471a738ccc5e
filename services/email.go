package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"os"
	"strconv"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/jara-travels/booking_api/model"
	"github.com/jara-travels/booking_api/shared"
)

// EmailService sends the transactional emails around a booking. Every send is
// best-effort: callers fire it from a goroutine and failures are only logged,
// they never affect the already-committed booking.
type EmailService struct {
	appContext.DefaultService

	smtpHost      string
	smtpPort      string
	smtpUsername  string
	smtpPassword  string
	fromEmail     string
	fromName      string
	operatorEmail string

	paySvc *PaymentService

	templates map[string]*template.Template
}

const EMAIL_SVC = "email_svc"

func (svc EmailService) Id() string {
	return EMAIL_SVC
}

func (svc *EmailService) Configure(ctx *appContext.Context) error {
	svc.smtpHost = os.Getenv("SMTP_HOST")
	svc.smtpPort = os.Getenv("SMTP_PORT")
	svc.smtpUsername = os.Getenv("SMTP_USERNAME")
	svc.smtpPassword = os.Getenv("SMTP_PASSWORD")
	svc.fromEmail = os.Getenv("FROM_EMAIL")
	svc.fromName = os.Getenv("FROM_NAME")
	svc.operatorEmail = os.Getenv("OPERATOR_EMAIL")

	if svc.smtpPort == "" {
		svc.smtpPort = "587"
	}
	if svc.fromName == "" {
		svc.fromName = "JaraTravels"
	}

	svc.templates = make(map[string]*template.Template)

	return svc.DefaultService.Configure(ctx)
}

func (svc *EmailService) Start() error {
	svc.paySvc = svc.Service(PAYMENT_SVC).(*PaymentService)

	err := svc.loadTemplates()
	if err != nil {
		log.WithError(err).Error("Failed to load email templates")
		// Don't fail startup, just log the error
	}

	return nil
}

// Email templates. User-supplied values pass through html/template, which
// escapes them on interpolation.
const bookingCustomerEmailHTML = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Reserva Recebida - {{.AppName}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #2563eb; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background-color: #f9f9f9; }
        .details { background-color: white; padding: 15px; border-radius: 5px; margin: 15px 0; }
        .payment { background-color: #f0f9ff; border-left: 4px solid #2563eb; padding: 15px; margin: 20px 0; }
        .footer { padding: 20px; text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Reserva Recebida!</h1>
        </div>
        <div class="content">
            <h2>Olá {{.Name}},</h2>
            <p>Recebemos o seu pedido de reserva. Segue o resumo:</p>

            <div class="details">
                <p><strong>Serviço:</strong> {{.ServiceName}}</p>
                <p><strong>Preço:</strong> {{.ServicePrice}}</p>
                <p><strong>Duração:</strong> {{.ServiceDuration}}</p>
                <p><strong>Data:</strong> {{.Date}}</p>
                <p><strong>Participantes:</strong> {{.Participants}} pessoa(s)</p>
                <p><strong>Método de Pagamento:</strong> {{.PaymentMethodLabel}}</p>
            </div>

            {{if eq .PaymentMethod "bank-transfer"}}
            <div class="payment">
                <p><strong>Dados para Transferência Bancária:</strong></p>
                <p>IBAN: {{.BankIBAN}}</p>
                <p>Titular: {{.BankHolder}}</p>
                <p>Banco: {{.BankName}}</p>
                <p>Valor: {{.ServicePrice}}</p>
                <p>Descrição: {{.Reference}}</p>
                <p>Por favor, efetue o pagamento nas próximas 48 horas para confirmar a sua reserva.</p>
            </div>
            {{end}}
            {{if eq .PaymentMethod "paypal"}}
            <div class="payment">
                <p><strong>Instruções para Pagamento via PayPal:</strong></p>
                <p>Link: <a href="{{.PayPalLink}}">{{.PayPalLink}}</a></p>
                <p>Valor: {{.ServicePrice}}</p>
                <p>Descrição: {{.Reference}}</p>
                <p>Por favor, efetue o pagamento nas próximas 48 horas para confirmar a sua reserva.</p>
            </div>
            {{end}}
            {{if eq .PaymentMethod "mbway"}}
            <div class="payment">
                <p><strong>Instruções para Pagamento via MBWay:</strong></p>
                <p>Aguarde a solicitação MBWay no número: {{.Phone}}</p>
                <p>Confirme o pagamento de {{.ServicePrice}} no seu telemóvel.</p>
                <p>A solicitação MBWay será enviada nas próximas 24 horas úteis.</p>
            </div>
            {{end}}

            <p>O ponto de encontro será confirmado por email ou telefone após a confirmação do pagamento.</p>
        </div>
        <div class="footer">
            <p>&copy; 2025 {{.AppName}}. Todos os direitos reservados.</p>
        </div>
    </div>
</body>
</html>
`

const bookingOperatorEmailHTML = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Nova Reserva - {{.AppName}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #059669; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background-color: #f9f9f9; }
        .details { background-color: white; padding: 15px; border-radius: 5px; margin: 15px 0; }
        .message { background-color: #fef3c7; padding: 15px; border-radius: 5px; margin: 15px 0; }
        .footer { padding: 20px; text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Nova Reserva Recebida</h1>
        </div>
        <div class="content">
            <div class="details">
                <p><strong>Nome:</strong> {{.Name}}</p>
                <p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
                <p><strong>Telefone:</strong> {{.Phone}}</p>
            </div>
            <div class="details">
                <p><strong>Serviço:</strong> {{.ServiceName}}</p>
                <p><strong>Preço:</strong> {{.ServicePrice}}</p>
                <p><strong>Duração:</strong> {{.ServiceDuration}}</p>
                <p><strong>Data:</strong> {{.Date}}</p>
                <p><strong>Participantes:</strong> {{.Participants}} pessoa(s)</p>
                <p><strong>Método de Pagamento:</strong> {{.PaymentMethodLabel}}</p>
            </div>
            {{if .Message}}
            <div class="message">
                <p><strong>Mensagem do Cliente:</strong></p>
                <p>{{.Message}}</p>
            </div>
            {{end}}
            <p><strong>Próximos passos:</strong> confirma a disponibilidade e responde ao cliente por email ou telefone.</p>
        </div>
        <div class="footer">
            <p>Este email foi enviado automaticamente pelo sistema de reservas da {{.AppName}}.</p>
        </div>
    </div>
</body>
</html>
`

const contactEmailHTML = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Nova Mensagem de Contacto - {{.AppName}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #1e40af; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background-color: #f9f9f9; }
        .details { background-color: white; padding: 15px; border-radius: 5px; margin: 15px 0; }
        .footer { padding: 20px; text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Nova Mensagem de Contacto</h1>
        </div>
        <div class="content">
            <div class="details">
                <p><strong>Nome:</strong> {{.Name}}</p>
                <p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
                {{if .Phone}}<p><strong>Telefone:</strong> {{.Phone}}</p>{{end}}
            </div>
            <div class="details">
                <p><strong>Mensagem:</strong></p>
                <p>{{.Message}}</p>
            </div>
        </div>
        <div class="footer">
            <p>Esta mensagem foi enviada através do formulário de contacto do website {{.AppName}}.</p>
        </div>
    </div>
</body>
</html>
`

type BookingEmailData struct {
	AppName            string
	Name               string
	Email              string
	Phone              string
	ServiceName        string
	ServicePrice       string
	ServiceDuration    string
	Date               string
	Participants       string
	PaymentMethod      string
	PaymentMethodLabel string
	Message            string
	Reference          string
	BankIBAN           string
	BankHolder         string
	BankName           string
	PayPalLink         string
}

type ContactEmailData struct {
	AppName string
	Name    string
	Email   string
	Phone   string
	Message string
}

func (svc *EmailService) loadTemplates() error {
	var err error

	svc.templates["booking_customer"], err = template.New("booking_customer").Parse(bookingCustomerEmailHTML)
	if err != nil {
		return fmt.Errorf("failed to parse customer booking email template: %v", err)
	}

	svc.templates["booking_operator"], err = template.New("booking_operator").Parse(bookingOperatorEmailHTML)
	if err != nil {
		return fmt.Errorf("failed to parse operator booking email template: %v", err)
	}

	svc.templates["contact"], err = template.New("contact").Parse(contactEmailHTML)
	if err != nil {
		return fmt.Errorf("failed to parse contact email template: %v", err)
	}

	return nil
}

func (svc *EmailService) bookingEmailData(booking *model.Booking) BookingEmailData {
	return BookingEmailData{
		AppName:            svc.fromName,
		Name:               booking.Name,
		Email:              booking.Email,
		Phone:              booking.Phone,
		ServiceName:        booking.ServiceName,
		ServicePrice:       booking.ServicePrice,
		ServiceDuration:    booking.ServiceDuration,
		Date:               FormatDatePT(booking.BookingDate),
		Participants:       strconv.Itoa(booking.Participants),
		PaymentMethod:      booking.PaymentMethod,
		PaymentMethodLabel: PaymentMethodLabel(booking.PaymentMethod),
		Message:            booking.Message,
		Reference:          booking.Name + " - " + booking.ServiceName,
		BankIBAN:           svc.paySvc.BankIBAN(),
		BankHolder:         svc.paySvc.BankHolder(),
		BankName:           svc.paySvc.BankName(),
		PayPalLink:         svc.paySvc.PayPalLink(),
	}
}

// SendBookingConfirmation emails the customer their booking summary with the
// payment-instruction block for the chosen method.
func (svc *EmailService) SendBookingConfirmation(booking *model.Booking) error {
	if svc.smtpHost == "" {
		log.Warn("SMTP not configured, skipping booking confirmation email")
		return nil
	}

	subject := fmt.Sprintf("Reserva Recebida: %s - %s", booking.ServiceName, svc.fromName)
	body, err := svc.renderTemplate("booking_customer", svc.bookingEmailData(booking))
	if err != nil {
		return err
	}

	return svc.sendEmail(booking.Email, subject, body, "")
}

// SendBookingAlert emails the operator a summary of the new booking, with
// reply-to pointing at the customer.
func (svc *EmailService) SendBookingAlert(booking *model.Booking) error {
	if svc.smtpHost == "" {
		log.Warn("SMTP not configured, skipping booking alert email")
		return nil
	}
	if svc.operatorEmail == "" {
		log.Warn("OPERATOR_EMAIL not configured, skipping booking alert email")
		return nil
	}

	subject := fmt.Sprintf("Nova Reserva: %s - %s", booking.ServiceName, booking.Name)
	body, err := svc.renderTemplate("booking_operator", svc.bookingEmailData(booking))
	if err != nil {
		return err
	}

	return svc.sendEmail(svc.operatorEmail, subject, body, booking.Email)
}

// SendContactMessage forwards a contact-form message to the operator.
func (svc *EmailService) SendContactMessage(name, email, phone, message string) error {
	if svc.smtpHost == "" {
		log.Warn("SMTP not configured, skipping contact email")
		return nil
	}
	if svc.operatorEmail == "" {
		return fmt.Errorf("OPERATOR_EMAIL not configured")
	}

	data := ContactEmailData{
		AppName: svc.fromName,
		Name:    name,
		Email:   email,
		Phone:   phone,
		Message: message,
	}

	subject := fmt.Sprintf("Nova mensagem de contacto - %s", name)
	body, err := svc.renderTemplate("contact", data)
	if err != nil {
		return err
	}

	return svc.sendEmail(svc.operatorEmail, subject, body, email)
}

func (svc *EmailService) renderTemplate(templateName string, data interface{}) (string, error) {
	tmpl, exists := svc.templates[templateName]
	if !exists {
		return "", fmt.Errorf("template %s not found", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %v", err)
	}

	return body.String(), nil
}

func (svc *EmailService) sendEmail(to, subject, body, replyTo string) error {
	if svc.smtpHost == "" {
		return fmt.Errorf("SMTP not configured")
	}

	auth := smtp.PlainAuth("", svc.smtpUsername, svc.smtpPassword, svc.smtpHost)

	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n",
		svc.fromName, svc.fromEmail, to, subject)
	if replyTo != "" {
		headers += fmt.Sprintf("Reply-To: %s\r\n", replyTo)
	}
	headers += "MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=UTF-8\r\n" +
		"\r\n"

	msg := []byte(headers + body)

	err := smtp.SendMail(
		svc.smtpHost+":"+svc.smtpPort,
		auth,
		svc.fromEmail,
		[]string{to},
		msg,
	)

	if err != nil {
		emailsFailedTotal.Inc()
		log.WithError(err).WithFields(log.Fields{"to": to, "subject": subject}).Error("Failed to send email")
		return fmt.Errorf("failed to send email: %v", err)
	}

	emailsSentTotal.Inc()
	log.WithFields(log.Fields{"to": to, "subject": subject}).Info("Email sent successfully")
	return nil
}

var ptMonths = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// FormatDatePT renders an ISO calendar date as pt-PT long form
// ("1 de junho de 2025"). Unparseable input is returned as-is.
func FormatDatePT(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), ptMonths[t.Month()-1], t.Year())
}

func PaymentMethodLabel(method string) string {
	switch method {
	case shared.PaymentMBWay:
		return "MBWay"
	case shared.PaymentBankTransfer:
		return "Transferência Bancária"
	case shared.PaymentPayPal:
		return "PayPal"
	}
	return method
}
