// Package media resolves stored media paths into public URLs and defines the
// contract for storing uploaded images.
package media

import (
	"context"
	"regexp"
	"strings"
)

// Upload is an uploaded file as received from a client.
type Upload struct {
	// Name is the client-side file name. Only its extension is informative.
	Name string
	// Data holds the raw file content.
	Data []byte
}

// SaveOptions controls how an image is processed before it is stored.
type SaveOptions struct {
	// Prefix is prepended to the generated file name, e.g. "portfolio_<user>".
	Prefix string
	// MaxDimension caps both width and height; the aspect ratio is preserved.
	// Images already inside the box are not upscaled. Zero disables resizing.
	MaxDimension int
	// JPEGQuality is used when the image is re-encoded as JPEG.
	JPEGQuality int
	// MaxBytes rejects uploads larger than this size. Zero disables the check.
	MaxBytes int
	// Accept lists the MIME types allowed for this upload. Empty accepts every
	// type the store supports.
	Accept []string
}

// Store persists images and returns storage-relative paths for them.
//
//go:generate mockgen -package mockmedia -source=media.go -destination=mock/mockmedia.go *
type Store interface {
	// Save validates, downscales and stores the upload under dir and returns the
	// relative path of the stored file.
	Save(ctx context.Context, dir string, upload Upload, opts SaveOptions) (string, error)
	// Delete removes a previously stored file. Missing files are not an error.
	Delete(ctx context.Context, path string) error
}

// storagePrefix matches the optional leading slash and "storage/" segment that
// legacy clients and older rows carry in relative paths.
var storagePrefix = regexp.MustCompile(`^/?(storage/)?`) //nolint: gochecknoglobals

// Resolver turns storage-relative paths into fully qualified URLs.
// The zero value resolves paths against an empty base.
type Resolver struct {
	baseURL string
}

// NewResolver returns a Resolver that prefixes relative paths with baseURL.
func NewResolver(baseURL string) Resolver {
	return Resolver{baseURL: strings.TrimRight(baseURL, "/")}
}

// URL returns the public URL of p. Absolute http(s) URLs are returned
// unchanged and an empty path resolves to an empty string.
func (r Resolver) URL(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	if strings.HasPrefix(p, "http") {
		return p
	}

	p = storagePrefix.ReplaceAllString(p, "")
	p = strings.TrimLeft(p, "/")

	return r.baseURL + "/" + p
}

// URLs resolves every non-empty entry of paths. Empty entries are dropped and
// the result is never nil.
func (r Resolver) URLs(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if u := r.URL(p); u != "" {
			out = append(out, u)
		}
	}

	return out
}
