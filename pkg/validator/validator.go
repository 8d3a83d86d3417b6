package validator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ghuser/ecoleta/pkg/httpx"
)

// maxFormMemory is the in-memory budget for multipart parsing when no upstream
// middleware parsed the form already.
const maxFormMemory = 32 << 20

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(fieldName)
	if err := validate.RegisterValidation("float", isFloat); err != nil {
		panic(err)
	}
}

// isFloat backs the "float" tag: the string parses with strconv.ParseFloat,
// exponent form included, and is finite.
func isFloat(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	f, err := strconv.ParseFloat(fl.Field().String(), 64)
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}

func fieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]

	// ignore unexported or explicitly ignored
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

// Validate runs struct-level validation using go-playground/validator tags.
func Validate(s any) error {
	return validate.Struct(s)
}

// FormatValidationErrors converts validator.ValidationErrors into a map of
// field name → human-readable message.
func FormatValidationErrors(err error) map[string]string {
	errs := make(map[string]string)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return errs
	}
	for _, e := range ve {
		errs[e.Field()] = formatFieldError(e)
	}
	return errs
}

// Messages flattens a field map into sorted "field: message" lines.
func Messages(fields map[string]string) []string {
	out := make([]string, 0, len(fields))
	for f, m := range fields {
		out = append(out, f+": "+m)
	}
	sort.Strings(out)
	return out
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return fmt.Sprintf("Minimum length is %s", e.Param())
	case "max":
		return fmt.Sprintf("Maximum length is %s", e.Param())
	case "len":
		return fmt.Sprintf("Length must be exactly %s", e.Param())
	case "email":
		return "Must be a valid email address"
	case "numeric", "number", "float":
		return "Must be a numeric value"
	case "alpha":
		return "Must contain only letters"
	case "alphanum":
		return "Must contain only letters and numbers"
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", e.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", e.Param())
	case "latitude":
		return "Must be a valid latitude"
	case "longitude":
		return "Must be a valid longitude"
	default:
		return fmt.Sprintf("Validation failed on '%s'", e.Tag())
	}
}

// ValidationErrorResponse is the 400 body written when a payload fails validation.
type ValidationErrorResponse struct {
	Error    string            `json:"error" example:"Validation failed"`
	Fields   map[string]string `json:"fields"`
	Messages []string          `json:"messages"`
}

// ValidateRequest binds the request body into T, validates it, and writes an
// error response if either step fails. Form and multipart bodies are read
// from r.PostForm; JSON bodies are flattened to the same string form first,
// so T only declares string fields and states number rules as tags.
// Returns (parsedStruct, true) on success or (nil, false) on failure.
func ValidateRequest[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	var req T
	if err := Bind(r, &req); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			httpx.JSONError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return nil, false
		}
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if err := Validate(&req); err != nil {
		fields := FormatValidationErrors(err)
		httpx.JSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:    "Validation failed",
			Fields:   fields,
			Messages: Messages(fields),
		})
		return nil, false
	}
	return &req, true
}

type ctxKey struct{}

// Middleware validates the body as T before the next handler runs and stores
// the parsed value for FromContext. Invalid requests never reach next.
func Middleware[T any]() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req, ok := ValidateRequest[T](w, r)
			if !ok {
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, req)))
		})
	}
}

// FromContext returns the value stored by Middleware[T].
func FromContext[T any](ctx context.Context) (*T, bool) {
	v, ok := ctx.Value(ctxKey{}).(*T)
	return v, ok
}

// Bind copies request values into the string fields of dst, matched by json tag.
func Bind(r *http.Request, dst any) error {
	values, err := requestValues(r)
	if err != nil {
		return err
	}

	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("validator: bind target must be a struct pointer, got %T", dst)
	}
	rv = rv.Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		fld := rt.Field(i)
		if !fld.IsExported() || fld.Type.Kind() != reflect.String {
			continue
		}
		if v := values.Get(fieldName(fld)); v != "" {
			rv.Field(i).SetString(strings.TrimSpace(v))
		}
	}
	return nil
}

func requestValues(r *http.Request) (url.Values, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		return jsonValues(r)
	case "multipart/form-data":
		if r.MultipartForm == nil {
			if err := r.ParseMultipartForm(maxFormMemory); err != nil {
				return nil, err
			}
		}
	default:
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
	}
	return r.PostForm, nil
}

func jsonValues(r *http.Request) (url.Values, error) {
	var body map[string]any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return nil, err
	}
	values := url.Values{}
	for k, v := range body {
		if s, ok := stringify(v); ok {
			values.Set(k, s)
		}
	}
	return values, nil
}

// stringify renders a decoded JSON value in its form-field representation.
// Arrays become comma-separated lists; objects and nulls are dropped.
func stringify(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := stringify(e); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ","), true
	default:
		return "", false
	}
}
