package entities

import (
	"fmt"

	"magnumdrive/internal/db"
)

// Setting is one keyed configuration record (contact numbers, map link,
// terms text, invoice boilerplate). Mutated only by administrators.
type Setting struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

// SettingFromRow maps a database row onto the API shape.
func SettingFromRow(row db.Setting) Setting {
	return Setting{
		Key:         row.Key,
		Value:       row.Value,
		Description: row.Description,
		Category:    row.Category,
	}
}

// UpdateSettingRequest upserts one setting by key.
type UpdateSettingRequest struct {
	Value       string `json:"value"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Validate restricts the category enumeration.
func (r *UpdateSettingRequest) Validate() error {
	switch r.Category {
	case "", "general", "whatsapp", "invoice", "legal":
		return nil
	}
	return fmt.Errorf("invalid setting category %q", r.Category)
}

// City is a pickup location served by the fleet.
type City struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Cities is the static list of locations the platform operates in.
var Cities = []City{
	{ID: "tirunelveli", Name: "Tirunelveli (Head Office)"},
	{ID: "tenkasi", Name: "Tenkasi"},
	{ID: "tuticorin", Name: "Tuticorin"},
	{ID: "kanyakumari", Name: "Kanyakumari"},
}
