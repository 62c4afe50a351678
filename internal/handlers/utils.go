package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/yogesh1825/CareerConnect-Job-Portal/internal/storage"
	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
)

type contextKey string

const contextSubjectKey contextKey = "sub"

const (
	maxMultipartMemory = 32 << 20
	maxJSONBodyBytes   = 1 << 20
	formFieldFile      = "file"
	msgSomethingMissed = "Something is missing."
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return field.Name
	})
	return v
}

// Response is the envelope every endpoint responds with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func userIDFromContext(ctx context.Context) (types.ID, error) {
	subject, ok := ctx.Value(contextSubjectKey).(string)
	if !ok {
		return "", errors.New("missing subject")
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", errors.New("invalid subject")
	}
	return types.ID(subject), nil
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Success: false, Message: message})
}

// writeInternalError logs err with the request id and responds with a
// generic 500.
func writeInternalError(w http.ResponseWriter, r *http.Request, message string, err error) {
	logInternal(r, message, err)
	writeError(w, http.StatusInternalServerError, message)
}

func logInternal(r *http.Request, message string, err error) {
	slog.ErrorContext(r.Context(), message,
		"request_id", middleware.GetReqID(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxJSONBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		return errors.New("invalid request")
	}
	return nil
}

// validationMessage maps a validator error to a client message. Missing
// required fields collapse into missing; other failures name the field.
func validationMessage(err error, missing string) string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return "invalid request"
	}
	for _, fe := range fieldErrors {
		if fe.Tag() == "required" {
			return missing
		}
	}
	return fmt.Sprintf("Invalid %s", fieldErrors[0].Field())
}

func pathID(r *http.Request, name string) types.ID {
	return types.ID(strings.TrimSpace(chi.URLParam(r, name)))
}

// parseForm accepts multipart and urlencoded bodies.
func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(maxMultipartMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		return errors.New("invalid form data")
	}
	return nil
}

func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// formFile reads the optional upload field. It returns nil when no file was
// sent.
func formFile(r *http.Request) (*storage.File, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, header, err := r.FormFile(formFieldFile)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.New("failed to read upload")
	}
	defer file.Close()

	data, err := readFileLimited(file, storage.MaxUploadBytes)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	return &storage.File{Name: header.Filename, Data: data}, nil
}

func readFileLimited(reader io.Reader, limit int64) ([]byte, error) {
	limited := io.LimitReader(reader, limit+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, errors.New("failed to read upload")
	}
	if int64(len(data)) > limit {
		return nil, errors.New("uploaded file too large")
	}
	return data, nil
}

// flexNumber accepts a JSON number or a numeric string and keeps its text.
type flexNumber string

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*n = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = flexNumber(strings.TrimSpace(s))
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}
	*n = flexNumber(number.String())
	return nil
}

func (n flexNumber) Float() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

func (n flexNumber) Int() (int, error) {
	value, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return 0, err
	}
	if value != float64(int(value)) {
		return 0, errors.New("not an integer")
	}
	return int(value), nil
}

func trimFields(fields ...*string) {
	for _, field := range fields {
		*field = strings.TrimSpace(*field)
	}
}
