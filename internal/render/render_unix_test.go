//go:build !windows

package render

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"xlsd/internal/icons"
	"xlsd/internal/model"
)

func TestGridWithFifoDoesNotBlock(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, unix.Mkfifo(filepath.Join(dir, "pipe"), 0o644))

	f := plainFormatter()
	f.Icons = icons.DefaultRegistry(model.MIMESniffer{}, nil).
		Chain([]string{"extension", "content-sniff"}, icons.NewGlyphSet(icons.DefaultGlyphs()), nil)
	r := newRenderer(model.OSFileSystem{}, Options{Formatter: f})

	type result struct {
		out string
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := render(t, r, Request{Paths: []string{dir}})
		done <- result{out, err}
	}()

	select {
	case res := <-done:
		require.NoError(t, res.err)
		assert.Equal(t, "🚿 pipe\n", res.out)
	case <-time.After(3 * time.Second):
		t.Fatal("rendering a directory holding a fifo blocked")
	}
}
