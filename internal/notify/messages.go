package notify

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Jusetreynoso/saas-residencial/models"
)

// Renderizadores de los avisos que el núcleo entrega tal cual al canal.
// El texto replica los recibos en español que el portal siempre ha enviado.

// GasInvoiceMessage arma el aviso de una factura de gas recién generada.
func GasInvoiceMessage(owner *models.User, reading *models.MeterReading, inv *models.Invoice) Message {
	body := fmt.Sprintf(`Hola %s,

Se ha generado tu factura de consumo de GAS.

---------------------------------------
Lectura Anterior: %s
Lectura Actual:   %s
Consumo:          %s galones
---------------------------------------
TOTAL A PAGAR:    $%s
Vencimiento:      %s
---------------------------------------`,
		owner.FullName,
		reading.Previous.StringFixed(3),
		reading.Current.StringFixed(3),
		reading.ConsumedVolume.StringFixed(2),
		inv.BalanceDue.StringFixed(2),
		inv.DueDate.Format("2006-01-02"))

	return Message{
		Recipient: owner.Email,
		Subject:   "Factura Gas",
		Body:      body,
	}
}

// FeeInvoiceMessage arma el aviso de la cuota de mantenimiento del mes.
func FeeInvoiceMessage(owner *models.User, tenant *models.Tenant, inv *models.Invoice) Message {
	body := fmt.Sprintf(`Hola %s,

Se ha generado la cuota de mantenimiento del mes.

---------------------------------------
Residencial:   %s
Concepto:      %s
TOTAL A PAGAR: $%s
Vencimiento:   %s
---------------------------------------

Por favor, ingresa a la plataforma para ver el detalle o realizar el pago.`,
		owner.FullName, tenant.Name, inv.Concept,
		inv.BalanceDue.StringFixed(2), inv.DueDate.Format("2006-01-02"))

	return Message{
		Recipient: owner.Email,
		Subject:   fmt.Sprintf("Nueva Cuota - %s", tenant.Name),
		Body:      body,
	}
}

// ProofApprovedMessage avisa al residente que su reporte de pago fue
// aprobado y liquidado.
func ProofApprovedMessage(user *models.User, proof *models.PaymentProof, invoicesPaid int, walletCredit decimal.Decimal) Message {
	body := fmt.Sprintf(`Hola %s,

Tu reporte de pago por $%s fue APROBADO.
Facturas saldadas: %d. Saldo a favor acreditado: $%s.`,
		user.FullName, proof.Amount.StringFixed(2), invoicesPaid, walletCredit.StringFixed(2))

	return Message{
		Recipient: user.Email,
		Subject:   "Reporte de pago aprobado",
		Body:      body,
	}
}

// ReservationDecisionMessage avisa la decisión sobre una reserva.
func ReservationDecisionMessage(user *models.User, res *models.Reservation, areaName string) Message {
	var body string
	if res.Status == models.ReservationApproved {
		body = fmt.Sprintf("Hola %s, tu solicitud para el %s el día %s ha sido APROBADA. ¡Disfrútalo!",
			user.FullName, areaName, res.Date.Format("2006-01-02"))
	} else {
		body = fmt.Sprintf("Hola %s, lamentamos informarte que tu solicitud para el %s ha sido RECHAZADA. Contacta a la administración.",
			user.FullName, areaName)
	}
	return Message{
		Recipient: user.Phone,
		Subject:   "Reserva de área social",
		Body:      body,
	}
}
