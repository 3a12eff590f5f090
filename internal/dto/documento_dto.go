package dto

// SubirDocumentoRequest carries the text fields of the upload form, read from
// the multipart parts named by the form tags; the file part is streamed
// separately. Completeness is checked
// with UploadHabilitado rather than tags, so the panel and the handler share
// one rule.
type SubirDocumentoRequest struct {
	ClienteID int    `form:"cliente_id"`
	Tipo      string `form:"tipo"`
}

// DocumentoAck is the acknowledgement shown after an upload.
type DocumentoAck struct {
	ID        int
	ClienteID int
	Tipo      string
}

// UploadHabilitado is the enablement rule of the upload button: a client
// must be selected and a file chosen.
func UploadHabilitado(clienteID int, hayArchivo bool) bool {
	return clienteID > 0 && hayArchivo
}
