package api

import (
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/bluebite-kiosk/internal/domain/session"
)

const maxRequestBody = 64 << 10

// fail maps a domain error to an error response. Anything unrecognised is
// logged and reported as 500.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := mapError(err)
	if code == http.StatusInternalServerError {
		zctx.From(r.Context()).Error("Request failed", zap.Error(err))
	}
	writeError(w, code, msg)
}

// mapError converts domain errors to an HTTP status and client message.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrClosed):
		return http.StatusNotFound, "session not found"
	case errors.Is(err, session.ErrItemNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, session.ErrUnknownCategory):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, session.ErrCheckoutInProgress):
		return http.StatusConflict, err.Error()
	case errors.Is(err, session.ErrTooManySessions):
		return http.StatusServiceUnavailable, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// isDomainError reports whether err is one of the session sentinels rather
// than a failure of a downstream service.
func isDomainError(err error) bool {
	code, _ := mapError(err)
	return code != http.StatusInternalServerError
}

// writeError writes {"code": ..., "message": ...}.
func writeError(w http.ResponseWriter, code int, msg string) {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	e.Obj(func(e *jx.Encoder) {
		e.Field("code", func(e *jx.Encoder) { e.Int(code) })
		e.Field("message", func(e *jx.Encoder) { e.Str(msg) })
	})
	writeJSON(w, code, e.Bytes())
}

func writeJSON(w http.ResponseWriter, code int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

// readStringField decodes a JSON object body and returns the string value of
// field. Other fields are ignored.
func readStringField(r *http.Request, field string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		return "", errors.Wrap(err, "read body")
	}

	var (
		value string
		found bool
	)
	d := jx.DecodeBytes(data)
	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		if string(key) != field {
			return d.Skip()
		}
		if d.Next() != jx.String {
			return errors.Errorf("%s: expected string", field)
		}
		v, err := d.Str()
		if err != nil {
			return err
		}
		value, found = v, true
		return nil
	}); err != nil {
		return "", errors.Wrap(err, "invalid JSON body")
	}
	if !found {
		return "", errors.Errorf("missing %q", field)
	}
	return value, nil
}
