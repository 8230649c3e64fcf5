package response

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"admissions-srv/pkg/discord"
	pkgErrors "admissions-srv/pkg/errors"
)

// OK writes a 200 response with the standard envelope.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Resp{
		ErrorCode: 0,
		Message:   "Success",
		Data:      data,
	})
}

// Accepted writes a 202 response. Used for requests that enqueue async work.
func Accepted(c *gin.Context, data any) {
	c.JSON(http.StatusAccepted, Resp{
		ErrorCode: 0,
		Message:   "Accepted",
		Data:      data,
	})
}

// NoContent writes a 204 response with an empty body.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Unauthorized writes a 401 response.
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Resp{
		ErrorCode: http.StatusUnauthorized,
		Message:   "Unauthorized",
	})
}

// Error writes an error response. HTTPError values keep their status code and
// message; everything else becomes an opaque 500 and is reported to Discord so
// internal details never leak to the client.
func Error(c *gin.Context, err error, notifier discord.IDiscord) {
	if httpErr, ok := err.(*pkgErrors.HTTPError); ok {
		c.JSON(httpErr.StatusCode, Resp{
			ErrorCode: httpErr.StatusCode,
			Message:   httpErr.Message,
		})
		return
	}

	notifyInternal(c, err, notifier)
	c.JSON(http.StatusInternalServerError, Resp{
		ErrorCode: http.StatusInternalServerError,
		Message:   "Internal server error",
	})
}

// PanicError writes a 500 response for recovered panics and reports them.
func PanicError(c *gin.Context, recovered any, notifier discord.IDiscord) {
	notifyInternal(c, fmt.Errorf("panic: %v", recovered), notifier)
	c.JSON(http.StatusInternalServerError, Resp{
		ErrorCode: http.StatusInternalServerError,
		Message:   "Internal server error",
	})
}

func notifyInternal(c *gin.Context, err error, notifier discord.IDiscord) {
	if notifier == nil {
		return
	}
	// Best effort. A failing notifier must never affect the response.
	_ = notifier.SendError(context.WithoutCancel(c.Request.Context()),
		"Internal server error",
		fmt.Sprintf("%s %s", c.Request.Method, c.Request.URL.Path),
		err,
	)
}
