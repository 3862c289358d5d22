package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "artlens "+Version+"\n", out)
}

func TestInfoReportsDifferences(t *testing.T) {
	dir := t.TempDir()
	ref := filepath.Join(dir, "ref.png")
	render := filepath.Join(dir, "render.png")
	writePNG(t, ref, 4, 4, color.RGBA{R: 200, A: 255})
	writePNG(t, render, 8, 4, color.RGBA{R: 200, A: 255})

	out, err := execute(t, "info", "--config", writeConfig(t, dir, ""), ref, render)
	require.NoError(t, err)
	assert.Contains(t, out, "- size: 4x4")
	assert.Contains(t, out, "+ size: 8x4")
	assert.Contains(t, out, "pixels: n/a (sizes differ)")
}

func TestInfoBrokenSource(t *testing.T) {
	dir := t.TempDir()
	ref := filepath.Join(dir, "ref.png")
	writePNG(t, ref, 4, 4, color.RGBA{G: 200, A: 255})

	out, err := execute(t, "info", "--config", writeConfig(t, dir, ""), ref, filepath.Join(dir, "missing.png"))
	require.NoError(t, err)
	assert.Contains(t, out, "status: broken")
	assert.Contains(t, out, "pixels: n/a (broken source)")
}

func TestInitWritesConfigOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	out, err := execute(t, "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "slider_position")

	_, err = execute(t, "init", "--config", path)
	assert.Error(t, err, "existing file is kept without --force")

	_, err = execute(t, "init", "--config", path, "--force")
	assert.NoError(t, err)
}

func TestDoctorReportsConfig(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "doctor", "--config", writeConfig(t, dir, "view:\n  default_mode: overlay\n"))
	require.NoError(t, err)
	assert.Contains(t, out, "Environment checks:")
	assert.Contains(t, out, "config: ")

	out, err = execute(t, "doctor", "--config", writeConfig(t, dir, "view:\n  default_mode: sideways\n"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "✗ config: view.default_mode"), out)
}

func TestViewRejectsBadConfig(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "view", "--config", writeConfig(t, dir, "view:\n  full_source: both\n"), "a.png", "b.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "view.full_source")
}

func TestRootNeedsTwoImages(t *testing.T) {
	_, err := execute(t, "only-one.png")
	assert.Error(t, err)
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}
