package router

import "github.com/gin-gonic/gin"

// Module is one feature area (accounts, appointments, files...) mounted under /api.
type Module interface {
	Name() string
	Register(rg *gin.RouterGroup)
}
