package flow

import (
	"strings"

	"github.com/selec-cl/salesiq-bot-go/internal/session"
	"github.com/selec-cl/salesiq-bot-go/internal/textnorm"
)

// Session data keys for the quote form. They double as the column names
// sales sees when exporting sessions, so they stay in Spanish.
const (
	keyCompany      = "empresa"
	keyBusinessLine = "giro"
	keyTaxID        = "rut"
	keyContact      = "contacto"
	keyEmail        = "correo"
	keyPhone        = "telefono"
	keyPartNumber   = "num_parte"
	keyBrand        = "marca"
	keyQuantity     = "cantidad"
	keyDeliveryAddr = "direccion_entrega"
)

// QuoteForm holds the ten fields of the quote request form. Fields the
// visitor left out stay empty; the summary echoes them back blank so the
// visitor can see what is missing.
type QuoteForm struct {
	Company      string
	BusinessLine string
	TaxID        string
	Contact      string
	Email        string
	Phone        string
	PartNumber   string
	Brand        string
	Quantity     string
	DeliveryAddr string
}

// quoteField binds a label matcher to the form field it fills.
// Matchers run in order and the first hit wins for a line, mirroring how
// a human reads the form top to bottom; a later line for the same field
// overwrites an earlier one.
type quoteField struct {
	match  func(label string) bool
	assign func(f *QuoteForm, value string)
}

func contains(sub string) func(string) bool {
	return func(label string) bool { return strings.Contains(label, sub) }
}

var quoteFields = []quoteField{
	{contains("empresa"), func(f *QuoteForm, v string) { f.Company = v }},
	{contains("giro"), func(f *QuoteForm, v string) { f.BusinessLine = v }},
	{
		// "rut" as a substring would swallow labels like "ruta de
		// despacho", so this one matches the whole label.
		func(label string) bool {
			return label == "rut" || label == "r.u.t" || label == "r u t"
		},
		func(f *QuoteForm, v string) { f.TaxID = v },
	},
	{contains("contacto"), func(f *QuoteForm, v string) { f.Contact = v }},
	{
		func(label string) bool {
			return strings.Contains(label, "correo") || strings.Contains(label, "email")
		},
		func(f *QuoteForm, v string) { f.Email = v },
	},
	{contains("telefono"), func(f *QuoteForm, v string) { f.Phone = v }},
	{
		func(label string) bool {
			return strings.Contains(label, "numero de parte") || strings.Contains(label, "descripcion")
		},
		func(f *QuoteForm, v string) { f.PartNumber = v },
	},
	{contains("marca"), func(f *QuoteForm, v string) { f.Brand = v }},
	{contains("cantidad"), func(f *QuoteForm, v string) { f.Quantity = v }},
	{contains("direccion de entrega"), func(f *QuoteForm, v string) { f.DeliveryAddr = v }},
}

// ParseQuoteForm fills a QuoteForm from the visitor's single-message form
// answer. Each line of the shape "Label: value" is matched against the
// known labels after normalization; lines without a colon and lines with
// unknown labels are skipped.
func ParseQuoteForm(text string) QuoteForm {
	var form QuoteForm

	for _, line := range strings.Split(text, "\n") {
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		normLabel := textnorm.Normalize(label)
		value = strings.TrimSpace(value)

		for _, field := range quoteFields {
			if field.match(normLabel) {
				field.assign(&form, value)
				break
			}
		}
	}

	return form
}

// Summary renders the registered quote request for the confirmation reply.
func (f QuoteForm) Summary() string {
	var b strings.Builder
	b.WriteString("Resumen de su solicitud de cotización:\n")
	b.WriteString("Nombre de la empresa: " + f.Company + "\n")
	b.WriteString("Giro: " + f.BusinessLine + "\n")
	b.WriteString("RUT: " + f.TaxID + "\n")
	b.WriteString("Nombre de contacto: " + f.Contact + "\n")
	b.WriteString("Correo: " + f.Email + "\n")
	b.WriteString("Teléfono: " + f.Phone + "\n")
	b.WriteString("Número de parte / descripción: " + f.PartNumber + "\n")
	b.WriteString("Marca: " + f.Brand + "\n")
	b.WriteString("Cantidad: " + f.Quantity + "\n")
	b.WriteString("Dirección de entrega: " + f.DeliveryAddr)
	return b.String()
}

// SaveTo writes every field into the session's data map, overwriting any
// values from a previous form.
func (f QuoteForm) SaveTo(sess *session.Session) {
	sess.Set(keyCompany, f.Company)
	sess.Set(keyBusinessLine, f.BusinessLine)
	sess.Set(keyTaxID, f.TaxID)
	sess.Set(keyContact, f.Contact)
	sess.Set(keyEmail, f.Email)
	sess.Set(keyPhone, f.Phone)
	sess.Set(keyPartNumber, f.PartNumber)
	sess.Set(keyBrand, f.Brand)
	sess.Set(keyQuantity, f.Quantity)
	sess.Set(keyDeliveryAddr, f.DeliveryAddr)
}
