package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is one error inside the response envelope.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ResponseMeta carries per-request metadata.
type ResponseMeta struct {
	RequestID string `json:"requestID"`
}

// APIResponse is the JSON envelope all non-streaming endpoints return.
type APIResponse struct {
	Success  bool            `json:"success"`
	Response any             `json:"response,omitempty"`
	Meta     ResponseMeta    `json:"meta"`
	Errors   []ErrorResponse `json:"errors,omitempty"`
}

// ArtifactDescriptor describes one issued download link.
type ArtifactDescriptor struct {
	Token       string    `json:"token"`
	DownloadURL string    `json:"downloadUrl"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

func (s *Server) respond(c *gin.Context, status int, payload any) {
	c.JSON(status, APIResponse{
		Success:  true,
		Response: payload,
		Meta:     ResponseMeta{RequestID: requestIDFrom(c)},
	})
}

func (s *Server) respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, APIResponse{
		Success: false,
		Meta:    ResponseMeta{RequestID: requestIDFrom(c)},
		Errors:  []ErrorResponse{{Code: status, Message: message}},
	})
}

// statusText avoids leaking internal error strings for 5xx responses.
func statusText(status int) string {
	return http.StatusText(status)
}
