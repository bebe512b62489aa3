package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"status": "success", "data": data})
}

func JSONError(c *gin.Context, code int, errCode string, message string) {
	c.JSON(code, gin.H{"error": gin.H{"code": errCode, "message": message}})
}
