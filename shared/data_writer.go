package shared

import (
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the error envelope returned by every failing endpoint.
type ErrorResponse struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retry_after,omitempty"`
}

var jsonAPI = sonic.Config{
	UseNumber:            true,
	EscapeHTML:           false,
	SortMapKeys:          false,
	CompactMarshaler:     true,
	NoQuoteTextMarshaler: true,
	NoNullSliceOrMap:     true,
}.Froze()

var (
	badRequestResponse    = mustMarshal(ErrorResponse{Error: "Bad Request"})
	unauthorizedResponse  = mustMarshal(ErrorResponse{Error: "Unauthorized"})
	forbiddenResponse     = mustMarshal(ErrorResponse{Error: "Forbidden"})
	notFoundResponse      = mustMarshal(ErrorResponse{Error: "Not Found"})
	internalErrorResponse = mustMarshal(ErrorResponse{Error: "Internal server error"})
)

func mustMarshal(v interface{}) []byte {
	b, _ := jsonAPI.Marshal(v)
	return b
}

// ResponseJSON writes payload through the frozen sonic config.
func ResponseJSON(c *fiber.Ctx, httpCode int, payload interface{}) error {
	b, err := jsonAPI.Marshal(payload)
	if err != nil {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.Status(fiber.StatusInternalServerError).Send(internalErrorResponse)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Status(httpCode).Send(b)
}

// ResponseError writes the error envelope, reusing the pre-marshalled bodies
// for the common cases.
func ResponseError(c *fiber.Ctx, httpCode int, message string) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)

	if message == "" {
		switch httpCode {
		case fiber.StatusBadRequest:
			return c.Status(httpCode).Send(badRequestResponse)
		case fiber.StatusUnauthorized:
			return c.Status(httpCode).Send(unauthorizedResponse)
		case fiber.StatusForbidden:
			return c.Status(httpCode).Send(forbiddenResponse)
		case fiber.StatusNotFound:
			return c.Status(httpCode).Send(notFoundResponse)
		default:
			return c.Status(httpCode).Send(internalErrorResponse)
		}
	}

	return ResponseJSON(c, httpCode, ErrorResponse{Error: message})
}

func ResponseBadRequest(c *fiber.Ctx, message string) error {
	return ResponseError(c, fiber.StatusBadRequest, message)
}

func ResponseUnauthorized(c *fiber.Ctx, message string) error {
	return ResponseError(c, fiber.StatusUnauthorized, message)
}

func ResponseForbidden(c *fiber.Ctx, message string) error {
	return ResponseError(c, fiber.StatusForbidden, message)
}

func ResponseInternalError(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Status(fiber.StatusInternalServerError).Send(internalErrorResponse)
}
