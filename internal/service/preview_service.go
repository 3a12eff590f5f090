package service

import (
	"context"
	"errors"
	"io"

	"github.com/selimb1/conta100/internal/dto"
	"github.com/selimb1/conta100/internal/infra"
	"github.com/selimb1/conta100/internal/model"
)

var (
	ErrClienteNoEncontrado = errors.New("cliente no encontrado")
	ErrSinResultados       = errors.New("el cliente no tiene resultados procesados")
)

// PreviewService runs the server-side processing and shapes its output for
// the read-only preview table.
type PreviewService interface {
	Procesar(ctx context.Context, clienteID int) (dto.PreviewResponse, error)
	// EscribirPDF renders the latest stored result of the client.
	EscribirPDF(ctx context.Context, clienteID int, w io.Writer) error
}

type previewService struct {
	api ContaAPI
}

func NewPreviewService(api ContaAPI) PreviewService {
	return &previewService{api: api}
}

func mapPreview(res model.Resultado) dto.PreviewResponse {
	p := res.ContenidoJSON
	rows := make([]dto.AsientoRow, 0, len(p.Asientos))
	for _, a := range p.Asientos {
		rows = append(rows, dto.AsientoRow{
			Fecha:   a.Fecha,
			Cuenta:  a.Cuenta,
			Debe:    a.Debe,
			Haber:   a.Haber,
			Detalle: a.Detalle,
		})
	}
	return dto.PreviewResponse{
		ResultadoID: res.ID,
		ClienteID:   res.ClienteID,
		Asientos:    rows,
		TotalDebe:   p.TotalDebe(),
		TotalHaber:  p.TotalHaber(),
		CuadreSumas: p.Validaciones.CuadreSumas,
	}
}

func (s *previewService) Procesar(ctx context.Context, clienteID int) (dto.PreviewResponse, error) {
	res, err := s.api.Procesar(ctx, clienteID)
	if err != nil {
		return dto.PreviewResponse{}, err
	}
	return mapPreview(*res), nil
}

func (s *previewService) EscribirPDF(ctx context.Context, clienteID int, w io.Writer) error {
	clientes, err := s.api.ListarClientes(ctx)
	if err != nil {
		return err
	}
	var cliente *model.Cliente
	for i := range clientes {
		if clientes[i].ID == clienteID {
			cliente = &clientes[i]
			break
		}
	}
	if cliente == nil {
		return ErrClienteNoEncontrado
	}

	resultados, err := s.api.ListarResultados(ctx, clienteID)
	if err != nil {
		return err
	}
	if len(resultados) == 0 {
		return ErrSinResultados
	}
	return infra.WritePreviewPDF(w, *cliente, resultados[len(resultados)-1])
}
