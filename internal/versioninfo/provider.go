// Package versioninfo generates version constants source files for packages,
// stamped with the package version and the current git branch and commit.
package versioninfo

//go:generate mockgen -destination=mocks/provider.go -package=mocks . Provider

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Provider answers version-control queries.
type Provider interface {
	Branch(ctx context.Context) (string, error)
	Commit(ctx context.Context) (string, error)
}

// GitProvider queries the git repository containing Dir.
// git must be on PATH.
type GitProvider struct {
	Dir string
}

var _ Provider = GitProvider{}

// Branch returns the current branch name.
func (g GitProvider) Branch(ctx context.Context) (string, error) {
	return g.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
}

// Commit returns the full hash of HEAD.
func (g GitProvider) Commit(ctx context.Context) (string, error) {
	return g.run(ctx, "rev-parse", "HEAD")
}

func (g GitProvider) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}
