package service

import (
	"context"
	"io"

	"github.com/selimb1/conta100/internal/model"
)

// ContaAPI is the part of the Conta API client the panels depend on.
// *infra.ContaClient implements it.
type ContaAPI interface {
	ListarClientes(ctx context.Context) ([]model.Cliente, error)
	CrearCliente(ctx context.Context, in model.NuevoCliente) (*model.Cliente, error)
	EliminarCliente(ctx context.Context, id int) error
	SubirDocumento(ctx context.Context, clienteID int, tipo, filename string, file io.Reader) (*model.Documento, error)
	Procesar(ctx context.Context, clienteID int) (*model.Resultado, error)
	ListarResultados(ctx context.Context, clienteID int) ([]model.Resultado, error)
	ExportarURL(tipo string, clienteID int) string
	ExportarZipURL(clienteID int) string
	ExportarAFIPURL(tipo string, clienteID int) string
}
