package domain

// Task is a single to-do entry submitted through the task form.
//
// All fields are free text. DueDate is kept exactly as submitted; it is
// neither parsed nor validated.
type Task struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
}

// NewTask creates a Task from raw field values.
// Empty values are accepted as-is.
func NewTask(name, description, dueDate string) Task {
	return Task{
		Name:        name,
		Description: description,
		DueDate:     dueDate,
	}
}

// IsBlank reports whether every field of the task is empty.
func (t Task) IsBlank() bool {
	return t.Name == "" && t.Description == "" && t.DueDate == ""
}
