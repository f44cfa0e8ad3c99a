package notify

import (
	"fmt"
	"net/smtp"
	"os"
)

// Mail envía correos de texto plano vía SMTP. La configuración sale del
// entorno: EMAIL_HOST, EMAIL_PORT, EMAIL_HOST_USER, EMAIL_HOST_PASSWORD.
type Mail struct {
	Host     string
	Port     string
	Username string
	Password string
}

// MailFromEnv construye el canal de correo desde las variables de entorno.
// Devuelve nil si no hay servidor configurado.
func MailFromEnv() *Mail {
	host := os.Getenv("EMAIL_HOST")
	if host == "" {
		return nil
	}
	port := os.Getenv("EMAIL_PORT")
	if port == "" {
		port = "587"
	}
	return &Mail{
		Host:     host,
		Port:     port,
		Username: os.Getenv("EMAIL_HOST_USER"),
		Password: os.Getenv("EMAIL_HOST_PASSWORD"),
	}
}

func (m *Mail) Send(msg Message) error {
	if msg.Recipient == "" {
		return fmt.Errorf("destinatario sin correo registrado")
	}

	body := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		m.Username, msg.Recipient, msg.Subject, msg.Body)

	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}
	addr := m.Host + ":" + m.Port
	if err := smtp.SendMail(addr, auth, m.Username, []string{msg.Recipient}, []byte(body)); err != nil {
		return fmt.Errorf("enviar correo: %w", err)
	}
	return nil
}
