// Package response writes the JSON bodies of the students API.
//
// Success bodies are whatever the handler returns (a student, a list, an
// id). Failures share one envelope:
//
//	{ "status": "error", "error": "field Name is required", "fields": ["Name"] }
//
// fields is only present for validation failures.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response is the error envelope.
type Response struct {
	Status string   `json:"status"`
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes data as the body with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps err in the envelope.
func GeneralError(err error) Response {
	return Response{Status: StatusError, Error: err.Error()}
}

// ValidationError reports every failing field of a request body, in struct
// order, the same way the editor names the empty input fields. A failed
// required rule reads "field X is required"; any other rule "field X is
// invalid".
func ValidationError(errs validator.ValidationErrors) Response {
	resp := Response{Status: StatusError}
	msgs := make([]string, 0, len(errs))

	for _, fe := range errs {
		resp.Fields = append(resp.Fields, fe.Field())

		problem := "is invalid"
		if fe.ActualTag() == "required" {
			problem = "is required"
		}
		msgs = append(msgs, fmt.Sprintf("field %s %s", fe.Field(), problem))
	}

	resp.Error = strings.Join(msgs, ", ")
	return resp
}
