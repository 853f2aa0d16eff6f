package mail

import (
	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

var _ auth.Mailer = (*LogMailer)(nil)

// LogMailer escribe los correos en el log en vez de enviarlos. Se usa cuando
// SMTP_HOST no está configurado (desarrollo local, tests de integración).
type LogMailer struct {
	log *logger.Logger
}

// NewLogMailer construye el mailer de consola.
func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log}
}

// Send loguea el correo sin enviarlo.
func (m *LogMailer) Send(to, subject, body string) error {
	m.log.Info().
		Str("to", to).
		Str("subject", subject).
		Str("body", body).
		Msg("correo no enviado: SMTP sin configurar")
	return nil
}
