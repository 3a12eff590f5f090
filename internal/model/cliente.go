package model

// Condiciones fiscales accepted by the Conta API.
const (
	CondicionMonotributista       = "Monotributista"
	CondicionResponsableInscripto = "Responsable Inscripto"
	CondicionFiscalPorDefecto     = CondicionResponsableInscripto
)

// CondicionesFiscales lists the options of the create form, in display order.
var CondicionesFiscales = []string{CondicionMonotributista, CondicionResponsableInscripto}

// Cliente mirrors the client record owned by the Conta API.
type Cliente struct {
	ID              int    `json:"id"`
	Nombre          string `json:"nombre"`
	CUIT            string `json:"cuit"`
	CondicionFiscal string `json:"condicion_fiscal"`
}

// NuevoCliente is the body of POST /clientes.
type NuevoCliente struct {
	Nombre          string `json:"nombre"`
	CUIT            string `json:"cuit"`
	CondicionFiscal string `json:"condicion_fiscal"`
}

// Documento is the upload acknowledgement returned by the API.
type Documento struct {
	ID          int    `json:"id"`
	ClienteID   int    `json:"cliente_id"`
	Tipo        string `json:"tipo"`
	RutaArchivo string `json:"ruta_archivo"`
}

// TipoDocumentoPorDefecto pre-fills the document type input.
const TipoDocumentoPorDefecto = "Factura"
