// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container runs document conversion images under docker or podman.
// It backs the external text extractor used for formats scholarform cannot
// decode itself.
package container

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

// Supported runtime binaries, in detection order.
const (
	Docker = "docker"
	Podman = "podman"
)

// Runtime runs a conversion image with the document on stdin.
type Runtime interface {
	// Name returns the runtime binary name.
	Name() string

	// Available reports whether the binary is on PATH and its daemon answers.
	Available(ctx context.Context) bool

	// HasImage returns nil when image is present locally.
	HasImage(ctx context.Context, image string) error

	// Run starts a throwaway container from image, streaming stdin to it and
	// its output to stdout.
	Run(ctx context.Context, image string, stdin io.Reader, stdout io.Writer) error
}

// commander abstracts process execution so tests never shell out.
type commander interface {
	LookPath(file string) (string, error)
	Quiet(ctx context.Context, name string, args ...string) error
	Pipe(ctx context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error
}

type execCommander struct{}

func (execCommander) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (execCommander) Quiet(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

func (execCommander) Pipe(ctx context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	return cmd.Run()
}

// cli is a Runtime driven through a docker-compatible command line. Docker
// and podman differ only in how an image is inspected.
type cli struct {
	bin     string
	inspect []string
	cmd     commander
}

func (c *cli) Name() string { return c.bin }

func (c *cli) Available(ctx context.Context) bool {
	if _, err := c.cmd.LookPath(c.bin); err != nil {
		return false
	}
	return c.cmd.Quiet(ctx, c.bin, "info") == nil
}

func (c *cli) HasImage(ctx context.Context, image string) error {
	args := append(append([]string{}, c.inspect...), image)
	if err := c.cmd.Quiet(ctx, c.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, c.bin, err)
	}
	return nil
}

func (c *cli) Run(ctx context.Context, image string, stdin io.Reader, stdout io.Writer) error {
	args := []string{"run", "--rm", "-i", "--network", "none", image}
	if err := c.cmd.Pipe(ctx, c.bin, args, stdin, stdout); err != nil {
		return fmt.Errorf("running %s in %s: %w", image, c.bin, err)
	}
	return nil
}

func newCLI(bin string, cmd commander) *cli {
	inspect := []string{"image", "inspect"}
	if bin == Podman {
		inspect = []string{"image", "exists"}
	}
	return &cli{bin: bin, inspect: inspect, cmd: cmd}
}

// Detect returns the first available runtime, preferring docker.
func Detect(ctx context.Context) (Runtime, error) {
	return detect(ctx, execCommander{})
}

func detect(ctx context.Context, cmd commander) (Runtime, error) {
	for _, bin := range []string{Docker, Podman} {
		if rt := newCLI(bin, cmd); rt.Available(ctx) {
			return rt, nil
		}
	}
	return nil, fmt.Errorf("no container runtime: neither %s nor %s is operational", Docker, Podman)
}
