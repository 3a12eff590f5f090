package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/selimb1/conta100/internal/apierror"
	"github.com/selimb1/conta100/internal/dto"
	"github.com/selimb1/conta100/internal/infra"
	"github.com/selimb1/conta100/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	// Report form field names ("cliente_id") instead of Go field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
}

const msgAPINoDisponible = "API no disponible. Intente nuevamente en unos segundos."

// bindAndValidate binds the form body and runs go-playground/validator tags.
// Returns nil when the request is valid.
func bindAndValidate(c *gin.Context, req interface{}) *apierror.ValidationError {
	if err := c.ShouldBind(req); err != nil {
		return &apierror.ValidationError{Detail: "Formulario invalido: " + err.Error()}
	}
	if err := validate.Struct(req); err != nil {
		var ves validator.ValidationErrors
		if !errors.As(err, &ves) {
			return &apierror.ValidationError{Detail: err.Error()}
		}
		fields := make(map[string]string)
		for _, fe := range ves {
			fields[fe.Field()] = fe.Tag()
		}
		return apierror.NewValidation(fields)
	}
	return nil
}

// validationMessage flattens a validation error into one inline message.
func validationMessage(v *apierror.ValidationError) string {
	if len(v.Fields) == 0 {
		return v.Detail
	}
	names := make([]string, 0, len(v.Fields))
	for f := range v.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, f := range names {
		parts = append(parts, fmt.Sprintf("%s (%s)", f, v.Fields[f]))
	}
	return v.Detail + ": " + strings.Join(parts, ", ")
}

// errorStatus maps a service error to the status of the re-rendered panel.
func errorStatus(err error) int {
	var upErr *apierror.UpstreamError
	switch {
	case errors.As(err, &upErr):
		if upErr.Status >= http.StatusInternalServerError {
			return http.StatusBadGateway
		}
		return upErr.Status
	case errors.Is(err, infra.ErrCircuitOpen), errors.Is(err, infra.ErrUnreachable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage is the inline text shown for a failed API call.
func errorMessage(c *gin.Context, err error) string {
	var upErr *apierror.UpstreamError
	switch {
	case errors.As(err, &upErr):
		return upErr.Message()
	case errors.Is(err, infra.ErrCircuitOpen), errors.Is(err, infra.ErrUnreachable):
		return msgAPINoDisponible
	default:
		// Logged with the request ID by middleware.ErrorHandler.
		_ = c.Error(err)
		return "Error inesperado al contactar la API."
	}
}

// shell builds the tab bar for the panel at path.
func shell(path string) dto.Shell {
	return dto.Shell{Tabs: web.Tabs(path)}
}

// clienteIDQuery reads the selected client from ?cliente_id=. Anything that
// is not a positive integer means "no selection".
func clienteIDQuery(c *gin.Context) int {
	id, err := strconv.Atoi(c.Query("cliente_id"))
	if err != nil || id < 0 {
		return 0
	}
	return id
}
