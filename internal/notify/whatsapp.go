package notify

import (
	"fmt"
	"os"
)

// WhatsApp simula el envío de mensajes imprimiéndolos en consola. La
// conexión real con Twilio o Meta queda para el futuro; el contrato con el
// núcleo no cambia.
type WhatsApp struct{}

func (WhatsApp) Send(msg Message) error {
	if msg.Recipient == "" {
		return fmt.Errorf("destinatario sin teléfono registrado")
	}
	fmt.Fprintf(os.Stdout, "\n==================================================\n")
	fmt.Fprintf(os.Stdout, "[WHATSAPP SALIENTE]\nPara: %s\nMensaje: %s\n", msg.Recipient, msg.Body)
	fmt.Fprintf(os.Stdout, "==================================================\n\n")
	return nil
}
