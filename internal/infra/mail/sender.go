package mail

import (
	"bytes"
	"fmt"
	"log"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password, from, loginURL string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		LoginURL: loginURL,
	}
}

// SendCredentialsEmail envia o acesso de primeiro login após a confirmação do
// pagamento. Nunca retorna erro: falha é logada e devolve false, porque o
// envio é best-effort no fluxo do webhook.
func (s *EmailSender) SendCredentialsEmail(to, professionalName, email, password, planName string) bool {
	data := CredentialsEmailData{
		Name:     professionalName,
		Email:    email,
		Password: password,
		PlanName: planName,
		LoginURL: s.LoginURL,
	}

	subject := fmt.Sprintf("Bem-vindo ao Monte Everest, %s! Seu acesso chegou 🚀", professionalName)
	if err := s.send(to, subject, "credentials.html", data); err != nil {
		log.Printf("⚠️ Falha ao enviar credenciais para %s: %v", to, err)
		return false
	}
	return true
}

func (s *EmailSender) SendPasswordResetEmail(to, professionalName, resetURL string) bool {
	data := PasswordResetEmailData{
		Name:     professionalName,
		ResetURL: resetURL,
	}

	if err := s.send(to, "Redefinição de senha - Monte Everest", "password_reset.html", data); err != nil {
		log.Printf("⚠️ Falha ao enviar reset de senha para %s: %v", to, err)
		return false
	}
	return true
}

func (s *EmailSender) send(to, subject, templateName string, data any) error {
	tmplPath := filepath.Join("templates", templateName)
	t, err := template.ParseFiles(tmplPath)
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
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}
	return nil
}
