package dto

import (
	"encoding/json"
	"time"
)

// NullableString distinguishes three JSON states for a patch field:
// key absent (Set=false), explicit null (Set=true, Value=nil) and a string
// value (Set=true, Value!=nil). UnmarshalJSON only runs when the key is
// present, which is what makes the absent case detectable.
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

func (n NullableString) MarshalJSON() ([]byte, error) {
	if !n.Set || n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

type CreateTodoRequest struct {
	Title       string  `json:"title" binding:"required,max=500"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
}

// UpdateTodoRequest is a partial update: nil pointer / unset field = leave
// the stored value alone. Description supports an explicit null to clear it.
type UpdateTodoRequest struct {
	Title       *string        `json:"title" binding:"omitempty,max=500"`
	Description NullableString `json:"description" binding:"-"`
	Completed   *bool          `json:"completed"`
}

type TodoResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ListTodosResponse struct {
	Items []TodoResponse `json:"items"`
}

// DeleteTodoResponse reports whether a row was actually removed. A miss is a
// normal outcome, not an error.
type DeleteTodoResponse struct {
	Deleted bool `json:"deleted"`
}
