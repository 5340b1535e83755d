// Package email envía los mails transaccionales del servicio.
package email

// Sender es la interfaz para enviar emails.
// Implementada por SMTPSender y por NoopSender en dev.
type Sender interface {
	// Send envía un email con contenido HTML y texto plano.
	// El destinatario recibe ambas versiones como multipart/alternative.
	Send(to string, subject string, htmlBody string, textBody string) error
}
