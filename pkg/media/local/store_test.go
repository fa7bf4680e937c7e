package local_test

import (
	"artisan/pkg/media"
	"artisan/pkg/media/local"
	"artisan/pkg/serrors"
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255}) //nolint: gosec
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))

	return buf.Bytes()
}

func TestFit(t *testing.T) {
	tests := []struct {
		name         string
		w, h, max    int
		wantW, wantH int
	}{
		{name: "inside box", w: 300, h: 200, max: 800, wantW: 300, wantH: 200},
		{name: "landscape", w: 1600, h: 800, max: 800, wantW: 800, wantH: 400},
		{name: "portrait", w: 1000, h: 2000, max: 800, wantW: 400, wantH: 800},
		{name: "square", w: 1200, h: 1200, max: 800, wantW: 800, wantH: 800},
		{name: "disabled", w: 1200, h: 1200, max: 0, wantW: 1200, wantH: 1200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := local.Fit(tt.w, tt.h, tt.max)
			require.Equal(t, tt.wantW, w)
			require.Equal(t, tt.wantH, h)
		})
	}
}

func TestStore_SaveResizesAndKeepsFormat(t *testing.T) {
	root := t.TempDir()
	s := local.New(root)

	rel, err := s.Save(context.Background(), "portfolio", media.Upload{Name: "a.png", Data: encodePNG(t, 1000, 500)},
		media.SaveOptions{Prefix: "portfolio_u1", MaxDimension: 800})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(rel, "portfolio/portfolio_u1_"))
	require.True(t, strings.HasSuffix(rel, ".png"))

	f, err := os.Open(filepath.Join(root, rel))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	cfg, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	require.Equal(t, "png", format)
	require.Equal(t, 800, cfg.Width)
	require.Equal(t, 400, cfg.Height)
}

func TestStore_SaveConvertsWebPToPNG(t *testing.T) {
	// 75x100 lossless webp
	data, err := os.ReadFile(filepath.Join("testdata", "gopher.webp"))
	require.NoError(t, err)

	root := t.TempDir()
	s := local.New(root)

	rel, err := s.Save(context.Background(), "portfolio", media.Upload{Name: "g.webp", Data: data},
		media.SaveOptions{MaxDimension: 50, Accept: []string{"image/webp"}})
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(rel, ".png"))

	f, err := os.Open(filepath.Join(root, rel))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	cfg, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	require.Equal(t, "png", format)
	require.Equal(t, 37, cfg.Width)
	require.Equal(t, 50, cfg.Height)
}

func TestStore_SaveJPEG(t *testing.T) {
	root := t.TempDir()
	s := local.New(root)

	rel, err := s.Save(context.Background(), "profiles", media.Upload{Name: "me.jpg", Data: encodeJPEG(t, 200, 100)},
		media.SaveOptions{MaxDimension: 800, JPEGQuality: 65})
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(rel, ".jpg"))

	_, err = os.Stat(filepath.Join(root, rel))
	require.NoError(t, err)
}

func TestStore_SaveRejectsInvalid(t *testing.T) {
	s := local.New(t.TempDir())
	ctx := context.Background()

	_, err := s.Save(ctx, "x", media.Upload{Name: "a.txt", Data: []byte("hello world")}, media.SaveOptions{})
	require.ErrorIs(t, err, serrors.ErrUnprocessable)

	_, err = s.Save(ctx, "x", media.Upload{Name: "a.png"}, media.SaveOptions{})
	require.ErrorIs(t, err, serrors.ErrUnprocessable)

	_, err = s.Save(ctx, "x", media.Upload{Name: "a.png", Data: encodePNG(t, 10, 10)}, media.SaveOptions{MaxBytes: 10})
	require.ErrorIs(t, err, serrors.ErrUnprocessable)
}

func TestStore_DeleteStaysInsideRoot(t *testing.T) {
	root := t.TempDir()
	s := local.New(root)
	ctx := context.Background()

	rel, err := s.Save(ctx, "portfolio", media.Upload{Name: "a.png", Data: encodePNG(t, 10, 10)}, media.SaveOptions{})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, rel))
	_, err = os.Stat(filepath.Join(root, rel))
	require.True(t, os.IsNotExist(err))

	// deleting again or deleting an empty path is a no-op
	require.NoError(t, s.Delete(ctx, rel))
	require.NoError(t, s.Delete(ctx, ""))
	require.NoError(t, s.Delete(ctx, "../../etc/passwd-does-not-exist"))
}

func TestStore_SaveHonoursAccept(t *testing.T) {
	s := local.New(t.TempDir())
	opts := media.SaveOptions{Accept: []string{"image/jpeg"}}

	_, err := s.Save(context.Background(), "profiles", media.Upload{Name: "a.png", Data: encodePNG(t, 10, 10)}, opts)
	require.ErrorIs(t, err, serrors.ErrUnprocessable)

	rel, err := s.Save(context.Background(), "profiles", media.Upload{Name: "a.jpg", Data: encodeJPEG(t, 10, 10)}, opts)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(rel, ".jpg"))
}
