// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The dashboard consumes these shapes verbatim: read endpoints return their
// payload bare (array or object, no envelope), mutations return
// {"success": true}, failures return {"error"}.

func SuccessResponse(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func CreatedResponse(c *gin.Context) {
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

func BulkSuccessResponse(c *gin.Context, count int) {
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count})
}

func DataResponse(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

func BadRequestResponse(c *gin.Context, message string) {
	if message == "" {
		message = "invalid request"
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func InternalErrorResponse(c *gin.Context, message string) {
	if message == "" {
		message = "internal server error"
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}
