package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/selimb1/conta100/internal/dto"
	"github.com/selimb1/conta100/internal/model"
)

// ErrUploadIncompleto is returned when the client or the file is missing.
var ErrUploadIncompleto = errors.New("seleccione un cliente y un archivo")

// DocumentoService uploads source documents. Uploaded documents are not
// tracked locally.
type DocumentoService interface {
	Subir(ctx context.Context, req dto.SubirDocumentoRequest, filename string, file io.Reader) (dto.DocumentoAck, error)
}

type documentoService struct {
	api ContaAPI
}

func NewDocumentoService(api ContaAPI) DocumentoService {
	return &documentoService{api: api}
}

func (s *documentoService) Subir(ctx context.Context, req dto.SubirDocumentoRequest, filename string, file io.Reader) (dto.DocumentoAck, error) {
	if !dto.UploadHabilitado(req.ClienteID, file != nil && filename != "") {
		return dto.DocumentoAck{}, ErrUploadIncompleto
	}
	tipo := strings.TrimSpace(req.Tipo)
	if tipo == "" {
		tipo = model.TipoDocumentoPorDefecto
	}

	doc, err := s.api.SubirDocumento(ctx, req.ClienteID, tipo, filename, file)
	if err != nil {
		return dto.DocumentoAck{}, err
	}
	return dto.DocumentoAck{ID: doc.ID, ClienteID: doc.ClienteID, Tipo: doc.Tipo}, nil
}
