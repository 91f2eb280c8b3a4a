package flow

import (
	"strings"

	"github.com/selec-cl/salesiq-bot-go/internal/session"
)

// Session data keys for the post-sale intake.
const (
	keyPSName    = "nombre"
	keyPSTaxID   = "rut"
	keyPSInvoice = "numero_factura"
	keyPSDetail  = "detalle"
)

// PostSaleCase is the four answers collected by the step-by-step post-sale
// flow. Answers are stored verbatim, RUTs and invoice numbers included,
// because the support team wants to see exactly what the visitor typed.
type PostSaleCase struct {
	Name    string
	TaxID   string
	Invoice string
	Detail  string
}

// PostSaleCaseFrom reads the collected answers back out of a session.
func PostSaleCaseFrom(sess *session.Session) PostSaleCase {
	return PostSaleCase{
		Name:    sess.Get(keyPSName),
		TaxID:   sess.Get(keyPSTaxID),
		Invoice: sess.Get(keyPSInvoice),
		Detail:  sess.Get(keyPSDetail),
	}
}

// Summary renders the registered case for the confirmation reply.
func (c PostSaleCase) Summary() string {
	var b strings.Builder
	b.WriteString("Resumen de su solicitud de postventa:\n")
	b.WriteString("Nombre: " + c.Name + "\n")
	b.WriteString("RUT: " + c.TaxID + "\n")
	b.WriteString("Número de factura: " + c.Invoice + "\n")
	b.WriteString("Detalle: " + c.Detail)
	return b.String()
}
