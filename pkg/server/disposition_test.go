package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsciiFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "invoice_2026-0117.pdf", "invoice_2026-0117.pdf"},
		{"diacritics stripped", "reçu_café.pdf", "recu_cafe.pdf"},
		{"non-latin replaced", "領収書.pdf", "___.pdf"},
		{"quote breaking", `a"b\c/d.pdf`, "a_b_c_d.pdf"},
		{"empty falls back", "", "download"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, asciiFilename(tt.in))
		})
	}
}

func TestContentDisposition(t *testing.T) {
	assert.Equal(t,
		`attachment; filename="form.pdf"`,
		contentDisposition("form.pdf"))

	got := contentDisposition("reçu.pdf")
	assert.Contains(t, got, `filename="recu.pdf"`)
	assert.Contains(t, got, "filename*=UTF-8''re%C3%A7u.pdf")
}
