package service

import (
	"github.com/selimb1/conta100/internal/dto"
	"github.com/selimb1/conta100/internal/model"
)

// ExportService builds the download actions of the Resultados panel. It never
// fetches report bodies; the browser follows the links to the API itself.
type ExportService interface {
	Panel(clienteID int) dto.ExportPanel
}

type exportService struct {
	api ContaAPI
}

func NewExportService(api ContaAPI) ExportService {
	return &exportService{api: api}
}

func (s *exportService) Panel(clienteID int) dto.ExportPanel {
	disabled := clienteID <= 0
	link := func(build func() string) string {
		if disabled {
			return ""
		}
		return build()
	}

	panel := dto.ExportPanel{
		Reportes: make([]dto.DescargaButton, 0, len(model.TiposReporte)),
		AFIP:     make([]dto.DescargaButton, 0, len(model.TiposAFIP)),
	}
	for _, tipo := range model.TiposReporte {
		panel.Reportes = append(panel.Reportes, dto.DescargaButton{
			Tipo:     tipo,
			Etiqueta: "Descargar " + tipo,
			Href:     link(func() string { return s.api.ExportarURL(tipo, clienteID) }),
			Disabled: disabled,
		})
	}
	for _, tipo := range model.TiposAFIP {
		panel.AFIP = append(panel.AFIP, dto.DescargaButton{
			Tipo:     tipo,
			Etiqueta: model.EtiquetaAFIP(tipo),
			Href:     link(func() string { return s.api.ExportarAFIPURL(tipo, clienteID) }),
			Disabled: disabled,
		})
	}
	panel.Zip = dto.DescargaButton{
		Tipo:     "zip",
		Etiqueta: "Descargar todo (.zip)",
		Href:     link(func() string { return s.api.ExportarZipURL(clienteID) }),
		Disabled: disabled,
	}
	return panel
}
