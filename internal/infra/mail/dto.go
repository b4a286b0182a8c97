package mail

type CredentialsEmailData struct {
	Name     string
	Email    string
	Password string
	PlanName string
	LoginURL string
}

type PasswordResetEmailData struct {
	Name     string
	ResetURL string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	LoginURL string
}
