package dto

// DescargaButton is one download action of the results panel. Href is empty
// and Disabled is set while no client is selected.
type DescargaButton struct {
	Tipo     string
	Etiqueta string
	Href     string
	Disabled bool
}

// ExportPanel groups the download actions for the selected client.
type ExportPanel struct {
	Reportes []DescargaButton
	AFIP     []DescargaButton
	Zip      DescargaButton
}
