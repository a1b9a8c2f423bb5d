// Package domain holds template application types
package domain

import (
	"context"

	"servicegeek/internal/core/templatepack"
	"servicegeek/internal/platform/result"
)

// Registry is the read only template catalog
type Registry interface {
	Lookup(code string) (templatepack.Template, bool)
	All() []templatepack.Template
}

// Detection is a template sourced line item in a room
type Detection struct {
	PublicID           string `json:"publicId"`
	Category           string `json:"category"`
	Selection          string `json:"selection"`
	Description        string `json:"description"`
	SourceTemplateCode string `json:"sourceTemplateCode"`
}

// Key matches templatepack.Item.Key
func (d Detection) Key() string { return d.Category + "/" + d.Selection }

// Applied is the outcome of applying a template to a room
type Applied struct {
	InferenceID string      `json:"inferenceId"`
	Detections  []Detection `json:"detections"`
	Inserted    int         `json:"inserted"`
}

// Listed is one catalog entry as seen from a room
type Listed struct {
	Code  string              `json:"id"`
	Name  string              `json:"name"`
	Trade string              `json:"trade,omitempty"`
	Items []templatepack.Item `json:"items"`
	Used  bool                `json:"used"`
}

// ApplyInput is the apply template body
type ApplyInput struct {
	RoomID        string   `json:"roomId" validate:"required,notblank"`
	TemplateCode  string   `json:"templateCode" validate:"required,notblank"`
	ExcludedItems []string `json:"excludedItems" validate:"omitempty,max=500"`
}

// ListQuery narrows the catalog listing
type ListQuery struct {
	RoomID   string
	FetchAll bool
	// Q filters by case folded template name
	Q string
}

// ServicePort is the template application engine
type ServicePort interface {
	// ApplyTemplate reconciles a room with a template; exclusions never delete existing rows
	ApplyTemplate(ctx context.Context, userID, projectPublicID, roomPublicID, code string, excluded []string) (result.Result[Applied], error)

	// ListTemplates returns the catalog filtered for a room
	ListTemplates(ctx context.Context, userID, projectPublicID string, q ListQuery) (result.Result[[]Listed], error)
}
