package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config concentra o que vem de variável de ambiente. As credenciais do
// gateway têm dupla origem: o valor daqui é só o bootstrap, a tabela
// system_config tem a palavra final.
type Config struct {
	Port        int
	DatabaseURL string
	JWTSecret   string

	RabbitMQURL string

	PagarmeURL    string
	PagarmeAPIKey string

	MailHost     string
	MailPort     int
	MailUser     string
	MailPassword string
	MailFrom     string

	AdminEmail    string
	AdminPassword string

	FrontendURL string
	SuccessURL  string
}

func Load() (*Config, error) {
	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	mailPort, _ := strconv.Atoi(getEnv("MAIL_PORT", "587"))

	dbURL := getEnv("DATABASE_URL", "")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL é obrigatória")
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET é obrigatória")
	}

	frontendURL := getEnv("FRONTEND_URL", "http://localhost:5173")

	return &Config{
		Port:          port,
		DatabaseURL:   dbURL,
		JWTSecret:     jwtSecret,
		RabbitMQURL:   getEnv("RABBITMQ_URL", ""),
		PagarmeURL:    getEnv("PAGARME_URL", "https://api.pagar.me/core/v5"),
		PagarmeAPIKey: getEnv("PAGARME_API_KEY", ""),
		MailHost:      getEnv("MAIL_HOST", ""),
		MailPort:      mailPort,
		MailUser:      getEnv("MAIL_USER", ""),
		MailPassword:  getEnv("MAIL_PASS", ""),
		MailFrom:      getEnv("MAIL_FROM", "nao-responda@monteeverest.com.br"),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		FrontendURL:   frontendURL,
		SuccessURL:    getEnv("CHECKOUT_SUCCESS_URL", frontendURL+"/pagamento/sucesso"),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
