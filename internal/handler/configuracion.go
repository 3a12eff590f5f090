package handler

import (
	"net/http"

	"github.com/selimb1/conta100/internal/dto"
	"github.com/selimb1/conta100/internal/web"

	"github.com/gin-gonic/gin"
)

const pathConfiguracion = "/configuracion"

// Configuracion GET /configuracion. The URL is fixed at startup.
func Configuracion(apiURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, web.PageConfiguracion, dto.ConfiguracionPage{
			Shell:  shell(pathConfiguracion),
			APIURL: apiURL,
			EnvVar: "API_URL",
		})
	}
}
