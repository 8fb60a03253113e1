package record

import "strings"

// CreateRecordRequest represents the create record request body
type CreateRecordRequest struct {
	Amount      *float64 `json:"amount" validate:"required,gt=0,lt=10000000000,decimals=2"`
	Description string   `json:"description" validate:"required,min=1,max=255"`
	Type        string   `json:"type" validate:"required,oneof=income expense"`
}

func (r *CreateRecordRequest) Normalize() {
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
}

func (CreateRecordRequest) Messages() map[string]string {
	m := amountMessages()
	m["amount.required"] = "Amount is required"
	m["description.required"] = "Description is required"
	m["type.required"] = "Type is required"
	return m
}

// UpdateRecordRequest represents a partial record update. At least one field is required.
type UpdateRecordRequest struct {
	Amount      *float64 `json:"amount" validate:"required_without_all=Description Type,omitnil,gt=0,lt=10000000000,decimals=2"`
	Description *string  `json:"description" validate:"omitnil,min=1,max=255"`
	Type        *string  `json:"type" validate:"omitnil,oneof=income expense"`
}

func (r *UpdateRecordRequest) Normalize() {
	if r.Type != nil {
		t := strings.ToLower(strings.TrimSpace(*r.Type))
		r.Type = &t
	}
}

func (UpdateRecordRequest) Messages() map[string]string {
	m := amountMessages()
	m["amount.required_without_all"] = "At least one field (amount or description) is required for update"
	return m
}

// Fields converts the request into repository update fields
func (r UpdateRecordRequest) Fields() UpdateFields {
	return UpdateFields{
		Amount:      r.Amount,
		Description: r.Description,
		Type:        r.Type,
	}
}

// RecordIDParams holds the record id URL parameter
type RecordIDParams struct {
	ID string `json:"id" validate:"required,uuid"`
}

func (RecordIDParams) Messages() map[string]string {
	return map[string]string{
		"id.required": "ID is required",
		"id.uuid":     "ID must be a valid UUID",
		"id.type":     "ID must be a string",
	}
}

func amountMessages() map[string]string {
	return map[string]string{
		"amount.type":      "Amount must be a number",
		"amount.gt":        "Amount must be a positive number",
		"amount.lt":        "Amount must be less than 10000000000",
		"amount.decimals":  "Amount can have at most 2 decimal places",
		"description.min":  "Description cannot be empty",
		"description.max":  "Description must not exceed 255 characters",
		"description.type": "Description must be a string",
		"type.oneof":       "Type must be either 'income' or 'expense'",
		"type.type":        "Type must be a string",
	}
}
