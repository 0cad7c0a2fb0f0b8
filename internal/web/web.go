// Package web holds the JSON request/response helpers shared by the module
// handlers.
package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/georgemunganga/product-manager/internal/apierror"
)

var validate = validator.New()

func init() {
	// report json field names instead of Go field names
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Normalizer is implemented by request bodies that clean their input
// (e.g. trimming whitespace) before validation.
type Normalizer interface {
	Normalize()
}

// Checker is implemented by request bodies with rules struct tags cannot
// express. Check runs after tag validation.
type Checker interface {
	Check() error
}

// Respond writes body as JSON with the given status.
func Respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	json.NewEncoder(w).Encode(body)
}

// NoContent answers 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error maps err to its status and writes the error envelope. Server-side
// failures are logged with the request's logger.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fieldPath(fe)] = fe.Tag()
		}
		Respond(w, http.StatusUnprocessableEntity, apierror.NewValidationBody(fields))
		return
	}

	status := apierror.StatusCode(err)
	l := zerolog.Ctx(r.Context())
	if status >= http.StatusInternalServerError {
		l.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
	} else {
		l.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	Respond(w, status, apierror.New(apierror.Message(err)))
}

// fieldPath drops the top-level struct name from the validator namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// Decode reads a strict JSON body into dst, normalizes and validates it.
// Unknown fields and wrongly typed values are validation failures; a body
// that is not exactly one JSON value is a 400.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		var syntaxErr *json.SyntaxError
		switch {
		case errors.As(err, &typeErr):
			Respond(w, http.StatusUnprocessableEntity, apierror.NewValidationBody(map[string]string{
				typeErr.Field: "type:" + typeErr.Type.String(),
			}))
		case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			Respond(w, http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		default:
			Respond(w, http.StatusUnprocessableEntity, apierror.New(err.Error()))
		}
		return false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		Respond(w, http.StatusBadRequest, apierror.New("invalid JSON: unexpected data after the body"))
		return false
	}
	if n, ok := dst.(Normalizer); ok {
		n.Normalize()
	}
	if err := Validate(dst); err != nil {
		Error(w, r, err)
		return false
	}
	if c, ok := dst.(Checker); ok {
		if err := c.Check(); err != nil {
			Error(w, r, err)
			return false
		}
	}
	return true
}

// Validate runs the struct's validate tags.
func Validate(v any) error {
	return validate.Struct(v)
}

// IDParam parses a positive integer URL parameter.
func IDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apierror.NewValidation("%s must be a positive integer", name)
	}
	return id, nil
}

// Int64Query parses an optional integer query parameter; nil when absent.
func Int64Query(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apierror.NewValidation("%s must be an integer", name)
	}
	return &v, nil
}

// Trim trims every string in s and drops the ones left empty.
func Trim(s []string) []string {
	out := s[:0]
	for _, v := range s {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// TrimPtr trims *s in place.
func TrimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
