// Package notify entrega avisos a los residentes (correo o WhatsApp).
// Los envíos son best-effort: el libro mayor nunca se bloquea ni revierte
// por un fallo de entrega.
package notify

import "log/slog"

// Message es la carga que el núcleo entrega al notificador: un destinatario
// y un texto ya renderizado.
type Message struct {
	Recipient string // email o teléfono, según el canal
	Subject   string
	Body      string
}

// Notifier es un canal de salida de avisos.
type Notifier interface {
	Send(msg Message) error
}

// Multi reparte cada mensaje a varios canales. Un canal que falla no detiene
// a los demás; los errores se registran y se descartan.
type Multi []Notifier

func (m Multi) Send(msg Message) error {
	for _, n := range m {
		if err := n.Send(msg); err != nil {
			slog.Warn("canal de notificación falló", "error", err)
		}
	}
	return nil
}
