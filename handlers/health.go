package handlers

import (
	"net/http"

	"pitchside/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler returns the latest stored health snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
