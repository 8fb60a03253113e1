// Package validation decodes request input into schema structs, checks it
// against their validate tags and hands the result to the next handler.
package validation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/redmonkez12/fintrack-api/internal/apperror"
	"github.com/redmonkez12/fintrack-api/internal/httputil"
)

// maxBodyBytes caps request bodies read by Body.
const maxBodyBytes = 1 << 20

const msgInvalidBody = "Invalid request body"

type source int

const (
	sourceBody source = iota
	sourceParams
	sourceQuery
)

type payloadKey[T any] struct{}

// fieldIssue is a decoding problem attributable to a single field.
type fieldIssue struct {
	field string
	rule  string
	kind  reflect.Kind
}

var errInvalidBody = errors.New("invalid request body")

// Body validates the JSON request body against T. Unknown fields are rejected.
func Body[T any]() func(http.Handler) http.Handler {
	return middleware[T](sourceBody)
}

// Params validates chi URL parameters against T.
func Params[T any]() func(http.Handler) http.Handler {
	return middleware[T](sourceParams)
}

// Query validates the query string against T. Repeated keys keep the first value.
func Query[T any]() func(http.Handler) http.Handler {
	return middleware[T](sourceQuery)
}

// Payload returns the validated value of T attached by Body, Params or Query.
func Payload[T any](r *http.Request) (T, bool) {
	v, ok := r.Context().Value(payloadKey[T]{}).(T)
	return v, ok
}

// WithPayload attaches a validated value to ctx.
func WithPayload[T any](ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, payloadKey[T]{}, v)
}

func middleware[T any](src source) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var payload T

			issue, err := decode(w, r, src, &payload)
			if err != nil {
				httputil.RespondError(w, r, apperror.Validation(msgInvalidBody))
				return
			}

			if n, ok := any(&payload).(Normalizer); ok {
				n.Normalize()
			}

			var messages map[string]string
			if m, ok := any(&payload).(Messager); ok {
				messages = m.Messages()
			}

			var violations []string
			skip := map[string]bool{}
			if issue != nil {
				violations = append(violations, issue.message(messages))
				skip[issue.field] = true
			}
			violations = append(violations, Check(&payload, messages, skip)...)

			if len(violations) > 0 {
				httputil.RespondError(w, r, apperror.Validation(strings.Join(violations, ", ")))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPayload(r.Context(), payload)))
		})
	}
}

func decode(w http.ResponseWriter, r *http.Request, src source, dst any) (*fieldIssue, error) {
	switch src {
	case sourceBody:
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			return nil, errInvalidBody
		}
		if len(bytes.TrimSpace(body)) == 0 {
			return nil, nil
		}
		return decodeJSON(body, dst, true)
	case sourceParams:
		values := map[string]string{}
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			for i, key := range rctx.URLParams.Keys {
				if key == "*" || i >= len(rctx.URLParams.Values) {
					continue
				}
				values[key] = rctx.URLParams.Values[i]
			}
		}
		return decodeStrings(values, dst)
	case sourceQuery:
		values := map[string]string{}
		for key, vals := range r.URL.Query() {
			if len(vals) > 0 {
				values[key] = vals[0]
			}
		}
		return decodeStrings(values, dst)
	default:
		return nil, fmt.Errorf("unknown source %d", src)
	}
}

func decodeStrings(values map[string]string, dst any) (*fieldIssue, error) {
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return decodeJSON(raw, dst, false)
}

func decodeJSON(raw []byte, dst any, strict bool) (*fieldIssue, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if strict {
		dec.DisallowUnknownFields()
	}

	err := dec.Decode(dst)
	if err == nil {
		if dec.More() {
			return nil, errInvalidBody
		}
		return nil, nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &fieldIssue{field: typeErr.Field, rule: "type", kind: typeErr.Type.Kind()}, nil
	}

	if name, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		return &fieldIssue{field: strings.Trim(name, `"`), rule: "unknown"}, nil
	}

	return nil, errInvalidBody
}

func (i *fieldIssue) message(messages map[string]string) string {
	if msg, ok := messages[i.field+"."+i.rule]; ok {
		return msg
	}

	if i.rule == "unknown" {
		return i.field + " is not allowed"
	}

	switch i.kind {
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int32, reflect.Int64:
		return i.field + " must be a number"
	case reflect.Bool:
		return i.field + " must be a boolean"
	case reflect.String:
		return i.field + " must be a string"
	default:
		return i.field + " has an invalid type"
	}
}
