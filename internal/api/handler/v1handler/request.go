package v1handler

import (
	"artisan/pkg/media"
	"artisan/pkg/serrors"
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

const (
	// MaxBodyBytes caps request bodies, uploads included.
	MaxBodyBytes = 16 << 20
	maxMemory    = 8 << 20
)

// form is the flattened set of request parameters. JSON bodies, urlencoded
// and multipart forms and the query string all end up here.
type form struct {
	values map[string]string
	files  map[string][]*multipart.FileHeader
}

func (f *form) Get(key string) string { return f.values[key] }

// Has reports whether key was sent at all.
func (f *form) Has(key string) bool {
	_, ok := f.values[key]

	return ok
}

func parseForm(w http.ResponseWriter, r *http.Request) (*form, error) {
	f := &form{values: map[string]string{}}
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			f.values[k] = v[0]
		}
	}
	if r.Body == nil || r.Body == http.NoBody {
		return f, nil
	}
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch contentType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return nil, serrors.Wrap(serrors.ErrBadRequest, err, "Malformed request body")
		}
		for k, v := range r.MultipartForm.Value {
			if len(v) > 0 {
				f.values[k] = v[0]
			}
		}
		f.files = r.MultipartForm.File
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, serrors.Wrap(serrors.ErrBadRequest, err, "Malformed request body")
		}
		for k, v := range r.PostForm {
			if len(v) > 0 {
				f.values[k] = v[0]
			}
		}
	default:
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, serrors.Wrap(serrors.ErrBadRequest, err, "Malformed request body")
		}
		if len(bytes.TrimSpace(body)) == 0 {
			return f, nil
		}
		if err := decodeJSON(body, f.values); err != nil {
			return nil, serrors.Wrap(serrors.ErrBadRequest, err, "Malformed request body")
		}
	}

	return f, nil
}

// decodeJSON flattens a JSON object into values. Scalars keep their textual
// form; arrays and objects are kept as raw JSON.
func decodeJSON(body []byte, values map[string]string) error {
	d := jx.DecodeBytes(body)

	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch d.Next() {
		case jx.String:
			s, err := d.Str()
			if err != nil {
				return errors.Wrap(err, key)
			}
			values[key] = s
		case jx.Number:
			n, err := d.Num()
			if err != nil {
				return errors.Wrap(err, key)
			}
			values[key] = n.String()
		case jx.Bool:
			b, err := d.Bool()
			if err != nil {
				return errors.Wrap(err, key)
			}
			values[key] = strconv.FormatBool(b)
		case jx.Null:
			if err := d.Null(); err != nil {
				return errors.Wrap(err, key)
			}
			values[key] = ""
		default:
			raw, err := d.Raw()
			if err != nil {
				return errors.Wrap(err, key)
			}
			values[key] = raw.String()
		}

		return nil
	}); err != nil {
		return errors.Wrap(err, "decode body")
	}

	return nil
}

// Uploads reads the files sent under key. Both "key" and "key[]" are
// accepted.
func (f *form) Uploads(key string) ([]media.Upload, error) {
	headers := slices.Concat(f.files[key], f.files[key+"[]"])

	uploads := make([]media.Upload, 0, len(headers))
	for _, fh := range headers {
		upload, err := readUpload(fh)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, upload)
	}

	return uploads, nil
}

func readUpload(fh *multipart.FileHeader) (media.Upload, error) {
	file, err := fh.Open()
	if err != nil {
		return media.Upload{}, errors.Wrap(err, "open upload")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return media.Upload{}, errors.Wrap(err, "read upload")
	}

	return media.Upload{Name: fh.Filename, Data: data}, nil
}

// StringList decodes a JSON array of strings. Missing or empty values give
// nil.
func (f *form) StringList(key string) ([]string, error) {
	raw := strings.TrimSpace(f.Get(key))
	if raw == "" {
		return nil, nil
	}

	out := []string{}
	if err := jx.DecodeStr(raw).Arr(func(d *jx.Decoder) error {
		s, err := d.Str()
		if err != nil {
			return err //nolint: wrapcheck
		}
		out = append(out, s)

		return nil
	}); err != nil {
		return nil, serrors.Wrap(serrors.ErrUnprocessable, err, "The %s field must be a valid JSON string.", strings.ReplaceAll(key, "_", " "))
	}

	return out, nil
}

// Uint parses key as a positive integer, returning def when absent or
// invalid.
func (f *form) Uint(key string, def uint) uint {
	n, err := strconv.ParseUint(f.Get(key), 10, 32)
	if err != nil || n == 0 {
		return def
	}

	return uint(n)
}
