package email

import "fmt"

// El copy del mail de códigos es fijo, en el único idioma del producto.
const confirmationSubject = "Código de confirmação"

// SendConfirmationCode envía el código de 4 dígitos a la dirección dada.
// El mismo template sirve para confirmación de email y para reset de
// password: el código es el secreto, el flujo lo decide el endpoint.
func SendConfirmationCode(s Sender, to, code string) error {
	body := fmt.Sprintf("IDA-%s é o código de confirmação para sua conta no IDA.", code)
	return s.Send(to, confirmationSubject, body, body)
}
