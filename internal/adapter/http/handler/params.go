package handler

import (
	"strconv"

	"cash-register/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// denominationParam parses the :value path segment.
func denominationParam(c *gin.Context) (int64, error) {
	value, err := strconv.ParseInt(c.Param("value"), 10, 64)
	if err != nil || value <= 0 {
		return 0, apperror.Validation("currency_type must be a positive integer")
	}
	return value, nil
}
