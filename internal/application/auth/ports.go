package auth

// Mailer puerto de correo saliente (códigos de recuperación de contraseña).
// La implementación real usa SMTP; en desarrollo un mailer de consola.
type Mailer interface {
	Send(to, subject, body string) error
}
