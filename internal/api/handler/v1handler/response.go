package v1handler

import (
	"artisan/pkg/logger"
	"artisan/pkg/serrors"
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// field is one extra member of the success envelope, already encoded.
type field struct {
	name string
	raw  []byte
	err  error
}

// jsonField encodes v with its json tags.
func jsonField(name string, v any) field {
	raw, err := json.Marshal(v)

	return field{name: name, raw: raw, err: err}
}

func dataField(v any) field { return jsonField("data", v) }

func countField(n int) field { return field{name: "count", raw: []byte(strconv.Itoa(n))} }

func strField(name, v string) field {
	var e jx.Encoder
	e.Str(v)

	return field{name: name, raw: e.Bytes()}
}

// writeOK writes {success: true, message, ...fields}.
func writeOK(w http.ResponseWriter, r *http.Request, status int, message string, fields ...field) {
	for _, f := range fields {
		if f.err != nil {
			writeError(w, r, serrors.Wrap(serrors.ErrInternal, f.err, "could not encode %s", f.name))

			return
		}
	}

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("success", func(e *jx.Encoder) { e.Bool(true) })
		e.Field("message", func(e *jx.Encoder) { e.Str(message) })
		for _, f := range fields {
			e.Field(f.name, func(e *jx.Encoder) { e.Raw(f.raw) })
		}
	})

	write(w, r, status, e.Bytes())
}

type errorDetailKey struct{}

// WithErrorDetail makes error responses of next carry the underlying error
// text in the "error" member. Only debug deployments install it.
func WithErrorDetail(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), errorDetailKey{}, true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func errorDetail(ctx context.Context) bool {
	on, _ := ctx.Value(errorDetailKey{}).(bool)

	return on
}

// writeError logs err and writes {success: false, message, error?}. The
// underlying error text is only exposed under WithErrorDetail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	res := NewError(ctx, err)

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("success", func(e *jx.Encoder) { e.Bool(false) })
		e.Field("message", func(e *jx.Encoder) { e.Str(res.Response.Message) })
		if errorDetail(ctx) {
			e.Field("error", func(e *jx.Encoder) { e.Str(err.Error()) })
		}
	})

	write(w, r, res.StatusCode, e.Bytes())
}

func write(w http.ResponseWriter, r *http.Request, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logger.Warn(r.Context(), "could not write response", zap.Error(err))
	}
}

// NotFound answers unknown v1 routes with the error envelope.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, serrors.With(serrors.ErrNotFound, "Route not found"))
}
