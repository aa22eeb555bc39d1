package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/paperdrop/paperdrop/pkg/artifact"
	"github.com/paperdrop/paperdrop/pkg/docgen"
	"github.com/paperdrop/paperdrop/pkg/imagegen"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"artifacts": s.store.Len(),
	})
}

func (s *Server) handleReimbursement(c *gin.Context) {
	var req docgen.ReimbursementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	data, err := docgen.RenderReimbursement(req)
	if err != nil {
		s.loggerFrom(c).Error("reimbursement render failed", "error", err)
		s.respondError(c, http.StatusInternalServerError, statusText(http.StatusInternalServerError))
		return
	}

	s.issueAndRespond(c, data, "application/pdf", "reimbursement_form.pdf", s.config.FormTTL)
}

func (s *Server) handleInvoice(c *gin.Context) {
	var req docgen.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	data, err := docgen.RenderInvoice(req)
	if err != nil {
		s.loggerFrom(c).Error("invoice render failed", "error", err)
		s.respondError(c, http.StatusInternalServerError, statusText(http.StatusInternalServerError))
		return
	}

	filename := fmt.Sprintf("invoice_%s.pdf", asciiFilename(req.InvoiceNumber))
	s.issueAndRespond(c, data, "application/pdf", filename, s.config.InvoiceTTL)
}

type imageRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	Size   string `json:"size"`
}

func (s *Server) handleImage(c *gin.Context) {
	if !s.images.Configured() {
		s.respondError(c, http.StatusServiceUnavailable, "image generation is not configured")
		return
	}

	var req imageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	img, err := s.images.Generate(c.Request.Context(), req.Prompt, req.Size)
	if errors.Is(err, imagegen.ErrNotConfigured) {
		s.respondError(c, http.StatusServiceUnavailable, "image generation is not configured")
		return
	}
	if err != nil {
		s.loggerFrom(c).Error("image generation failed", "error", err)
		s.respondError(c, http.StatusBadGateway, "image generation failed")
		return
	}

	filename := "generated_image" + extensionFor(img.ContentType)
	s.issueAndRespond(c, img.Data, img.ContentType, filename, s.config.ImageTTL)
}

// issueAndRespond parks the payload in the artifact store and returns the
// download descriptor.
func (s *Server) issueAndRespond(c *gin.Context, data []byte, contentType, filename string, ttl time.Duration) {
	entry, err := s.store.Issue(data, contentType, filename, ttl)
	if err != nil {
		s.loggerFrom(c).Error("artifact issue failed", "error", err)
		s.respondError(c, http.StatusInternalServerError, statusText(http.StatusInternalServerError))
		return
	}

	s.respond(c, http.StatusCreated, ArtifactDescriptor{
		Token:       entry.Token,
		DownloadURL: s.config.DownloadURL(entry.Token),
		Filename:    entry.Filename,
		ContentType: entry.Handle.ContentType,
		SizeBytes:   entry.Handle.Size,
		ExpiresAt:   entry.ExpiresAt,
	})
}

// handleDownload maps Resolve outcomes onto transport status: a live
// token streams the blob, an unknown token is 404, an expired one is 410.
func (s *Server) handleDownload(c *gin.Context) {
	token := c.Param("token")

	entry, err := s.store.Resolve(token)
	switch {
	case errors.Is(err, artifact.ErrNotFound):
		s.respondError(c, http.StatusNotFound, "download link not found")
		return
	case errors.Is(err, artifact.ErrExpired):
		s.respondError(c, http.StatusGone, "download link expired")
		return
	case err != nil:
		s.loggerFrom(c).Error("resolve failed", "error", err)
		s.respondError(c, http.StatusInternalServerError, statusText(http.StatusInternalServerError))
		return
	}

	f, err := s.store.Open(entry.Handle)
	if err != nil {
		s.loggerFrom(c).Error("blob open failed", "key", entry.Handle.Key, "error", err)
		s.respondError(c, http.StatusInternalServerError, statusText(http.StatusInternalServerError))
		return
	}
	defer f.Close()

	c.DataFromReader(http.StatusOK, entry.Handle.Size, entry.Handle.ContentType, f, map[string]string{
		"Content-Disposition": contentDisposition(entry.Filename),
	})
}

// extensionFor maps the content types the image API realistically returns.
func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ""
	}
}
