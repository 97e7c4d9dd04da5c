package versioninfo

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGitProvider_NotARepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))

	_, err := GitProvider{Dir: dir}.Commit(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "git rev-parse HEAD")
}
