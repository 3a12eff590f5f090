package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/selimb1/conta100/internal/dto"
	"github.com/selimb1/conta100/internal/model"
)

// ClienteService defines the operations of the Clientes panel. There is no
// local cache: every read goes to the API, and mutations are followed by a
// fresh read from the caller.
type ClienteService interface {
	Listar(ctx context.Context) ([]dto.ClienteRow, error)
	Opciones(ctx context.Context, selected int, conCUIT bool) ([]dto.ClienteOption, error)
	Crear(ctx context.Context, req dto.CrearClienteRequest) (dto.ClienteRow, error)
	Eliminar(ctx context.Context, id int) error
}

type clienteService struct {
	api ContaAPI
}

func NewClienteService(api ContaAPI) ClienteService {
	return &clienteService{api: api}
}

// mapCliente converts an API record to a table row.
func mapCliente(c model.Cliente) dto.ClienteRow {
	return dto.ClienteRow{
		ID:              c.ID,
		Nombre:          c.Nombre,
		CUIT:            c.CUIT,
		CondicionFiscal: c.CondicionFiscal,
		CUITValido:      model.ValidarCUIT(c.CUIT),
	}
}

func (s *clienteService) Listar(ctx context.Context) ([]dto.ClienteRow, error) {
	list, err := s.api.ListarClientes(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ClienteRow, 0, len(list))
	for _, c := range list {
		result = append(result, mapCliente(c))
	}
	return result, nil
}

// Opciones builds a client dropdown. The Documentos panel labels entries with
// the CUIT too, the other panels only with the name.
func (s *clienteService) Opciones(ctx context.Context, selected int, conCUIT bool) ([]dto.ClienteOption, error) {
	list, err := s.api.ListarClientes(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ClienteOption, 0, len(list))
	for _, c := range list {
		etiqueta := c.Nombre
		if conCUIT {
			etiqueta = fmt.Sprintf("%s (%s)", c.Nombre, c.CUIT)
		}
		result = append(result, dto.ClienteOption{ID: c.ID, Etiqueta: etiqueta, Selected: c.ID == selected})
	}
	return result, nil
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (dto.ClienteRow, error) {
	c, err := s.api.CrearCliente(ctx, model.NuevoCliente{
		Nombre:          strings.TrimSpace(req.Nombre),
		CUIT:            strings.TrimSpace(req.CUIT),
		CondicionFiscal: req.CondicionFiscal,
	})
	if err != nil {
		return dto.ClienteRow{}, err
	}
	return mapCliente(*c), nil
}

func (s *clienteService) Eliminar(ctx context.Context, id int) error {
	return s.api.EliminarCliente(ctx, id)
}
