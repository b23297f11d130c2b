package middleware

import (
	"net/http"

	"github.com/SscSPs/banking_backoffice/internal/dto"
	"github.com/gin-gonic/gin"
)

// ProblemContentType is the media type of RFC 9457 problem responses.
const ProblemContentType = "application/problem+json"

type problemKind struct {
	typ   string
	title string
}

var problemKinds = map[int]problemKind{
	http.StatusBadRequest:          {"https://tools.ietf.org/html/rfc9110#section-15.5.1", "Domain Validation Failed"},
	http.StatusUnauthorized:        {"https://tools.ietf.org/html/rfc9110#section-15.5.2", "Unauthorized"},
	http.StatusForbidden:           {"https://tools.ietf.org/html/rfc9110#section-15.5.4", "Forbidden"},
	http.StatusNotFound:            {"https://tools.ietf.org/html/rfc9110#section-15.5.5", "Aggregate Not Found"},
	http.StatusConflict:            {"https://tools.ietf.org/html/rfc9110#section-15.5.10", "Aggregate Conflict"},
	http.StatusGone:                {"https://tools.ietf.org/html/rfc9110#section-15.5.11", "Aggregate Deleted"},
	http.StatusUnprocessableEntity: {"https://tools.ietf.org/html/rfc9110#section-15.5.21", "Invalid Aggregate Operation"},
	http.StatusTooManyRequests:     {"https://tools.ietf.org/html/rfc6585#section-4", "Too Many Requests"},
	http.StatusInternalServerError: {"https://tools.ietf.org/html/rfc9110#section-15.6.1", "Internal Server Error"},
	http.StatusServiceUnavailable:  {"https://tools.ietf.org/html/rfc9110#section-15.6.4", "Service Unavailable"},
}

// NewProblem builds the problem body for status. Unknown statuses fall back to
// about:blank with the standard reason phrase.
func NewProblem(c *gin.Context, status int, detail string) dto.ProblemDetails {
	kind, ok := problemKinds[status]
	if !ok {
		kind = problemKind{typ: "about:blank", title: http.StatusText(status)}
	}
	return dto.ProblemDetails{
		Type:      kind.typ,
		Title:     kind.title,
		Status:    status,
		Detail:    detail,
		Instance:  c.Request.Method + " " + c.Request.URL.Path,
		RequestID: GetRequestID(c),
	}
}

// AbortWithProblem writes a problem response and stops the handler chain.
func AbortWithProblem(c *gin.Context, status int, detail string) {
	c.Header("Content-Type", ProblemContentType)
	c.AbortWithStatusJSON(status, NewProblem(c, status, detail))
}
