package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperdrop/paperdrop/pkg/logging"
)

func TestNewRootCommand(t *testing.T) {
	rootCmd := NewRootCommand(afero.NewMemMapFs(), context.Background(), logging.NewTestLogger())

	assert.Equal(t, "paperdrop", rootCmd.Use)

	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "config")
}

func TestConfigCommandPrintsRedactedSettings(t *testing.T) {
	t.Setenv("PAPERDROP_IMAGE_API_URL", "https://img.example.com")
	t.Setenv("PAPERDROP_IMAGE_API_KEY", "super-secret")

	cmd := NewConfigCommand(afero.NewMemMapFs(), logging.NewTestLogger())
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "PAPERDROP_HOST=")
	assert.Contains(t, out.String(), "PAPERDROP_IMAGE_API_KEY=********")
	assert.NotContains(t, out.String(), "super-secret")
}
