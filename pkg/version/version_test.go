package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringDefaults(t *testing.T) {
	assert.Equal(t, "dev", String())
}

func TestStringWithCommit(t *testing.T) {
	origVer, origCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = origVer, origCommit })

	Version = "1.2.3"
	Commit = "abc123"
	assert.Equal(t, "1.2.3 (abc123)", String())
}
