package dto

import (
	"database/sql"
	"todoapp/internal/domains/todo/model"
	"todoapp/shared/constant"
	"todoapp/shared/patch"
	"todoapp/shared/timezone"
	"todoapp/shared/validator"
)

type CreateTodoRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

// ToModel builds the row to insert. Both timestamps come from a single clock
// read so created_at equals updated_at on creation. An absent or empty
// description is stored as NULL.
func (c *CreateTodoRequest) ToModel() model.Todo {
	now := timezone.Now()

	var description sql.NullString
	if c.Description != nil && *c.Description != "" {
		description = sql.NullString{String: *c.Description, Valid: true}
	}

	return model.Todo{
		Title:       c.Title,
		Description: description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UpdateTodoRequest is a patch: every field is independently one of
// {omitted, null, value}. Only description accepts an explicit null.
type UpdateTodoRequest struct {
	Title       patch.Field[string] `json:"title,omitzero"`
	Description patch.Field[string] `json:"description,omitzero"`
	Completed   patch.Field[bool]   `json:"completed,omitzero"`
}

func (u *UpdateTodoRequest) Validate() error {
	if u.Title.Present() && !u.Title.Null() {
		if err := validator.ValidateVar(u.Title.Value(), "required,max=255"); err != nil {
			return err
		}
	}

	if u.Description.Present() && !u.Description.Null() {
		if err := validator.ValidateVar(u.Description.Value(), "max=255"); err != nil {
			return err
		}
	}

	return nil
}

// Fields converts the patch into the column map to apply. Omitted fields do
// not appear; an explicit null description maps to a NULL write; updated_at
// is always bumped, even when the patch is otherwise empty. Null on the
// non-nullable fields is treated as omitted.
func (u *UpdateTodoRequest) Fields() map[string]any {
	fields := map[string]any{
		constant.FieldUpdatedAt: timezone.Now(),
	}

	if u.Title.Present() && !u.Title.Null() {
		fields[model.FieldTitle] = u.Title.Value()
	}

	if u.Description.Present() {
		if u.Description.Null() {
			fields[model.FieldDescription] = nil
		} else {
			fields[model.FieldDescription] = u.Description.Value()
		}
	}

	if u.Completed.Present() && !u.Completed.Null() {
		fields[model.FieldCompleted] = u.Completed.Value()
	}

	return fields
}

type TodoResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func (r *TodoResponse) FromModel(mod model.Todo) {
	r.ID = mod.ID
	r.Title = mod.Title
	r.Completed = mod.Completed
	r.CreatedAt = timezone.Format(mod.CreatedAt, constant.DateFormat)
	r.UpdatedAt = timezone.Format(mod.UpdatedAt, constant.DateFormat)

	r.Description = nil
	if mod.Description.Valid {
		description := mod.Description.String
		r.Description = &description
	}
}

type DeleteTodoResponse struct {
	Success bool `json:"success"`
}
