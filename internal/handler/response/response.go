package response

import (
	"net/http"

	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/errno"

	"github.com/gin-gonic/gin"
)

// Response defines the standard JSON structure
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"msg"`
	Data    interface{} `json:"data"`
}

// Success returns a success response with data
func Success(c *gin.Context, data interface{}) {
	if data == nil {
		data = gin.H{} // Return empty object instead of null
	}
	c.JSON(http.StatusOK, Response{
		Code:    errno.OK.Code,
		Message: errno.OK.Message,
		Data:    data,
	})
}

// Error returns an error response. The HTTP status follows the error class:
// client mistakes map to 4xx, everything else stays 500 so that CI callers
// can distinguish "fix the request" from "try again later".
func Error(c *gin.Context, err error) {
	code, msg := errno.Decode(err)
	c.JSON(httpStatus(code), Response{
		Code:    code,
		Message: msg,
		Data:    gin.H{},
	})
}

func httpStatus(code int) int {
	switch code {
	case errno.ErrBind.Code, errno.ErrEncoding.Code, errno.ErrInvalidPrice.Code:
		return http.StatusBadRequest
	case errno.ErrDuplicateBatch.Code:
		return http.StatusConflict
	case errno.ErrLockHeld.Code:
		return http.StatusLocked
	default:
		return http.StatusInternalServerError
	}
}
