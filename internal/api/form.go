package api

import (
	"errors"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/phrazzld/task-tracker/internal/api/shared"
	"github.com/phrazzld/task-tracker/internal/domain"
)

// Form field names accepted by the create endpoint.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldDueDate     = "dueDate"
)

// maxFormBytes caps the request body read by ParseTaskForm.
const maxFormBytes = 1 << 20

// FormField is the result of looking up one named field in a request.
type FormField struct {
	Value   string
	Present bool
}

// OrEmpty applies the default-to-empty policy: an absent field yields "".
func (f FormField) OrEmpty() string {
	if !f.Present {
		return ""
	}
	return f.Value
}

// TaskForm holds the three task fields as submitted.
type TaskForm struct {
	Name        FormField
	Description FormField
	DueDate     FormField
}

// Task builds the domain task. Absent fields become empty strings; no
// field is ever rejected.
func (f TaskForm) Task() domain.Task {
	return domain.NewTask(f.Name.OrEmpty(), f.Description.OrEmpty(), f.DueDate.OrEmpty())
}

// Missing lists the names of fields that were not submitted.
func (f TaskForm) Missing() []string {
	var missing []string
	if !f.Name.Present {
		missing = append(missing, FieldName)
	}
	if !f.Description.Present {
		missing = append(missing, FieldDescription)
	}
	if !f.DueDate.Present {
		missing = append(missing, FieldDueDate)
	}
	return missing
}

// createTaskRequest is the JSON form of a create-request. Pointers
// distinguish absent fields from empty ones.
type createTaskRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
}

// ParseTaskForm extracts the task fields from r.
//
// URL-encoded and multipart bodies are read together with the query string,
// so a field may come from either. JSON bodies are accepted too. A badly
// escaped pair is dropped while the other fields are kept. A body that
// cannot be read or decoded at all yields a form with no fields present.
// In both cases the parse error is returned; callers may log it but the
// form is still usable.
func ParseTaskForm(w http.ResponseWriter, r *http.Request) (TaskForm, error) {
	if r.Body != nil {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	}

	if isJSON(r) {
		return parseJSONForm(r)
	}

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxFormBytes); err != nil {
			return TaskForm{}, err
		}
		return formFromValues(r.Form), nil
	}

	// ParseForm skips badly escaped pairs and keeps the rest, so the
	// decoded fields are still usable. Only a truncated body is discarded.
	err := r.ParseForm()
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return TaskForm{}, err
	}
	return formFromValues(r.Form), err
}

func formFromValues(values url.Values) TaskForm {
	return TaskForm{
		Name:        lookupField(values, FieldName),
		Description: lookupField(values, FieldDescription),
		DueDate:     lookupField(values, FieldDueDate),
	}
}

func parseJSONForm(r *http.Request) (TaskForm, error) {
	if r.Body == nil {
		return TaskForm{}, errors.New("missing request body")
	}

	var req createTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		return TaskForm{}, err
	}

	return TaskForm{
		Name:        pointerField(req.Name),
		Description: pointerField(req.Description),
		DueDate:     pointerField(req.DueDate),
	}, nil
}

func lookupField(values url.Values, name string) FormField {
	vs, ok := values[name]
	if !ok || len(vs) == 0 {
		return FormField{}
	}
	return FormField{Value: vs[0], Present: true}
}

func pointerField(v *string) FormField {
	if v == nil {
		return FormField{}
	}
	return FormField{Value: *v, Present: true}
}

func mediaType(r *http.Request) string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}

func isJSON(r *http.Request) bool {
	return mediaType(r) == "application/json"
}

func isMultipart(r *http.Request) bool {
	return mediaType(r) == "multipart/form-data"
}

// wantsJSON reports whether the Accept header prefers JSON over HTML.
// The first recognised media type wins; HTML is the default.
func wantsJSON(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mt, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		switch mt {
		case "application/json":
			return true
		case "text/html", "application/xhtml+xml":
			return false
		}
	}
	return false
}
