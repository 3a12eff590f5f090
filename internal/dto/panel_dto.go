package dto

// Tab is one entry of the navigation bar.
type Tab struct {
	Nombre string
	Href   string
	Activa bool
}

// Shell is the data every panel page shares: the tab bar plus an optional
// inline error or acknowledgement.
type Shell struct {
	Tabs    []Tab
	Error   string
	Mensaje string
}

// ClienteOption is one entry of a client dropdown.
type ClienteOption struct {
	ID       int
	Etiqueta string
	Selected bool
}

// Seleccionado returns the id of the selected option, or 0 when the
// requested client is not in the list.
func Seleccionado(opts []ClienteOption) int {
	for _, o := range opts {
		if o.Selected {
			return o.ID
		}
	}
	return 0
}

// ClientesPage renders the Clientes panel.
type ClientesPage struct {
	Shell
	Clientes    []ClienteRow
	Form        CrearClienteRequest
	Condiciones []string
}

// DocumentosPage renders the Documentos panel.
type DocumentosPage struct {
	Shell
	Clientes        []ClienteOption
	Tipo            string
	SubirHabilitado bool
}

// PreviewPage renders the Previsualización panel. Preview is nil until a
// processing call succeeded in this request.
type PreviewPage struct {
	Shell
	Clientes           []ClienteOption
	ClienteID          int
	ProcesarHabilitado bool
	Preview            *PreviewResponse
}

// ResultadosPage renders the Resultados panel.
type ResultadosPage struct {
	Shell
	Clientes  []ClienteOption
	ClienteID int
	Export    ExportPanel
}

// ConfiguracionPage renders the Configuración panel.
type ConfiguracionPage struct {
	Shell
	APIURL string
	EnvVar string
}
