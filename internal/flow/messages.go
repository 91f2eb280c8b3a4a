package flow

// Visitor-facing copy. The wording is part of the product and is reviewed
// by the sales team; keep changes in sync with them.

// Menu option labels shown in the select picker.
const (
	OptionQuote    = "Solicitud Cotización"
	OptionPostSale = "Servicio PostVenta"
)

// Greeting sent on the trigger event.
const (
	msgWelcome    = "¡Bienvenido! Gracias por contactar con Selec."
	msgPickOption = "Por favor, seleccione una de las siguientes opciones para atender su solicitud."
)

// Quote flow.
const msgQuoteForm = "Perfecto, trabajaremos en su solicitud de cotización.\n" +
	"Por favor responda copiando y completando este formulario en un solo mensaje:\n\n" +
	"Nombre de la empresa:\n" +
	"Giro:\n" +
	"RUT:\n" +
	"Nombre de contacto:\n" +
	"Correo:\n" +
	"Teléfono:\n" +
	"Número de parte o descripción detallada:\n" +
	"Marca:\n" +
	"Cantidad:\n" +
	"Dirección de entrega:"

const (
	msgQuoteRegistered = "Gracias. Hemos registrado su solicitud con el siguiente detalle:"
	msgQuoteFollowUp   = "Un ejecutivo de Selec se pondrá en contacto con usted."
)

// Post-sale flow prompts, one per step.
const (
	msgPostSaleIntro      = "Perfecto, trabajaremos en su solicitud de postventa."
	msgPostSaleAskName    = "Por favor, indique su nombre:"
	msgPostSaleAskTaxID   = "Indique su RUT:"
	msgPostSaleAskInvoice = "Indique el número de factura (si lo tiene):"
	msgPostSaleAskDetail  = "Describa brevemente el problema o solicitud de postventa:"

	msgPostSaleRegistered = "Gracias. Hemos registrado su solicitud de postventa con el siguiente detalle:"
	msgPostSaleFollowUp   = "Un ejecutivo se pondrá en contacto con usted."
)

// Fallbacks.
const (
	msgMenuRetry1 = "No he podido identificar la opción."
	msgMenuRetry2 = "Seleccione una de las siguientes opciones:"

	msgNotUnderstood1 = "No he comprendido su mensaje."
	msgNotUnderstood2 = "Por favor, indique si desea 'Solicitud Cotización' o 'Servicio PostVenta'."

	msgConversationError1 = "Ha ocurrido un problema con la conversación."
	msgConversationError2 = "Volvamos al inicio. ¿Desea 'Solicitud Cotización' o 'Servicio PostVenta'?"

	msgAcknowledged = "He recibido su mensaje."
)
