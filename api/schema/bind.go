package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field a request failed on.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator is implemented by requests with checks that struct tags cannot
// express.
type Validator interface {
	Validate() []FieldError
}

var registerOnce sync.Once

// registerJSONNames makes validator report fields by their json name.
func registerJSONNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonName)
	})
}

// Bind decodes the JSON body into req and validates it. Any failure is a
// *ValidationError carrying every failing field: fields that fail to decode
// are reported alongside the validation errors of the ones that did.
func Bind(c *gin.Context, req any) error {
	registerJSONNames()

	fields, err := decodeBody(c, req)
	if err != nil {
		return err
	}
	if err := binding.Validator.ValidateStruct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		var tagged []FieldError
		for _, fe := range verrs {
			tagged = append(tagged, FieldError{Field: fe.Field(), Message: message(fe)})
		}
		fields = mergeFieldErrors(fields, tagged)
	}
	if v, ok := req.(Validator); ok {
		fields = mergeFieldErrors(fields, v.Validate())
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// decodeBody fills the json-tagged fields of the struct req points to one
// key at a time. A body that is not a JSON object fails as a whole.
func decodeBody(c *gin.Context, req any) ([]FieldError, error) {
	if c.Request == nil || c.Request.Body == nil {
		return nil, bodyError("request body is empty")
	}
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, bodyError("request body is empty")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, bodyError("must be a JSON object")
		}
		return nil, bodyError("malformed JSON")
	}

	rv := reflect.ValueOf(req).Elem()
	rt := rv.Type()
	var fields []FieldError
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		name := jsonName(sf)
		if name == "" {
			continue
		}
		value, ok := raw[name]
		if !ok {
			continue
		}
		target := reflect.New(sf.Type)
		if err := json.Unmarshal(value, target.Interface()); err != nil {
			fields = append(fields, FieldError{Field: name, Message: decodeMessage(err, sf.Type)})
			continue
		}
		rv.Field(i).Set(target.Elem())
	}
	return fields, nil
}

func bodyError(msg string) error {
	return &ValidationError{Fields: []FieldError{{Field: "body", Message: msg}}}
}

func jsonName(sf reflect.StructField) string {
	if !sf.IsExported() {
		return ""
	}
	name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return sf.Name
	}
	return name
}

var timeType = reflect.TypeOf(time.Time{})

func decodeMessage(err error, t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, errInvalidDate), errors.Is(err, errInvalidTaskRef):
		return err.Error()
	case t == timeType:
		return "must be an RFC 3339 timestamp"
	case errors.As(err, &typeErr):
		return "must be " + kindName(typeErr.Type)
	default:
		return "has an invalid value"
	}
}

func kindName(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "an integer"
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "a non-negative integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Slice, reflect.Array:
		return "a list"
	default:
		return "an object"
	}
}

// mergeFieldErrors appends extra, skipping fields already reported.
func mergeFieldErrors(fields, extra []FieldError) []FieldError {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		seen[f.Field] = true
	}
	for _, f := range extra {
		if !seen[f.Field] {
			fields = append(fields, f)
		}
	}
	return fields
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min", "max":
		bound := "at least"
		if fe.Tag() == "max" {
			bound = "at most"
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be %s %s characters", bound, fe.Param())
		}
		return fmt.Sprintf("must be %s %s", bound, fe.Param())
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
