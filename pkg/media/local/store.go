// Package local provides a media.Store that keeps images on the local
// filesystem, downscaling them before they are written.
package local

import (
	"artisan/pkg/media"
	"artisan/pkg/serrors"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register webp decoder
)

// supported maps accepted MIME types to the extension used on disk. WebP
// has no encoder and is stored as PNG.
var supported = map[string]string{ //nolint: gochecknoglobals
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".png",
}

// Store writes images below a root directory.
type Store struct {
	root string
}

// Ensure Store conforms to the media.Store interface at compile time.
var _ media.Store = (*Store)(nil)

// New returns a Store rooted at dir.
func New(dir string) *Store {
	return &Store{root: dir}
}

// Fit returns the size of a w×h image scaled down to fit in a max×max box.
// Images already inside the box keep their size.
func Fit(w, h, maxDim int) (int, int) {
	if maxDim <= 0 || w <= 0 || h <= 0 || (w <= maxDim && h <= maxDim) {
		return w, h
	}

	ratio := float64(w) / float64(h)
	if ratio < 1 {
		return max(1, int(float64(maxDim)*ratio)), maxDim
	}

	return maxDim, max(1, int(float64(maxDim)/ratio))
}

// Save implements media.Store. JPEG, PNG and GIF keep their format and WebP
// is converted to PNG. Every image is scaled to fit opts.MaxDimension.
func (s *Store) Save(ctx context.Context, dir string, upload media.Upload, opts media.SaveOptions) (string, error) {
	if len(upload.Data) == 0 {
		return "", serrors.With(serrors.ErrUnprocessable, "empty image")
	}
	if opts.MaxBytes > 0 && len(upload.Data) > opts.MaxBytes {
		return "", serrors.With(serrors.ErrUnprocessable, "image %q is larger than %d bytes", upload.Name, opts.MaxBytes)
	}

	mime := mimetype.Detect(upload.Data)
	ext, ok := supported[mime.String()]
	if !ok || (len(opts.Accept) > 0 && !slices.Contains(opts.Accept, mime.String())) {
		return "", serrors.With(serrors.ErrUnprocessable, "unsupported image type %s", mime.String())
	}

	out, err := resize(upload.Data, ext, opts)
	if err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	if opts.Prefix != "" {
		name = opts.Prefix + "_" + name
	}
	rel := path.Join(dir, name)

	full := s.abs(rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("could not create media directory: %w", err)
	}
	if err := os.WriteFile(full, out, 0o644); err != nil { //nolint: gosec
		return "", fmt.Errorf("could not write image: %w", err)
	}

	return rel, nil
}

// Delete implements media.Store.
func (s *Store) Delete(ctx context.Context, p string) error {
	if p == "" {
		return nil
	}
	if err := os.Remove(s.abs(p)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not delete image: %w", err)
	}

	return nil
}

// abs maps a relative media path to a filesystem path that cannot escape root.
func (s *Store) abs(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(path.Clean("/"+rel)))
}

func resize(data []byte, ext string, opts media.SaveOptions) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUnprocessable, err, "could not decode image")
	}

	b := src.Bounds()
	w, h := Fit(b.Dx(), b.Dy(), opts.MaxDimension)
	img := src
	if w != b.Dx() || h != b.Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
		img = dst
	}

	var buf bytes.Buffer
	switch ext {
	case ".jpg":
		quality := opts.JPEGQuality
		if quality <= 0 {
			quality = jpeg.DefaultQuality
		}
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	case ".png":
		err = png.Encode(&buf, img)
	case ".gif":
		err = gif.Encode(&buf, img, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("could not encode image: %w", err)
	}

	return buf.Bytes(), nil
}
