// Package domain holds inference and detection records
package domain

import "time"

// Image is an uploaded photo inside a project
type Image struct {
	ID        int64
	PublicID  string
	Key       string
	ProjectID int64
	RoomID    int64
}

// Inference ties one image (or one applied template) to a room
type Inference struct {
	ID                 int64     `json:"id"`
	PublicID           string    `json:"publicId"`
	ImageKey           string    `json:"imageKey,omitempty"`
	ProjectID          int64     `json:"-"`
	// RoomID is 0 until the inference is assigned a room
	RoomID             int64     `json:"-"`
	SourceTemplateCode string    `json:"sourceTemplateCode,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// Detection is one classified line item in a room
type Detection struct {
	ID                 int64   `json:"-"`
	PublicID           string  `json:"publicId"`
	InferenceID        int64   `json:"-"`
	ProjectID          int64   `json:"-"`
	RoomID             int64   `json:"-"`
	Category           string  `json:"category"`
	Code               string  `json:"code"`
	Item               string  `json:"item"`
	Quality            string  `json:"quality"`
	Confidence         float64 `json:"confidence"`
	SourceTemplateCode string  `json:"sourceTemplateCode,omitempty"`
}

// Reassigned reports a moved image
type Reassigned struct {
	InferenceID     string `json:"inferenceId"`
	ImageKey        string `json:"imageKey"`
	RoomID          string `json:"roomId"`
	MovedDetections int64  `json:"movedDetections"`
}

// Linked reports the inference behind an uploaded image
type Linked struct {
	InferenceID   string    `json:"inferenceId"`
	ImageKey      string    `json:"imageKey"`
	ImagePublicID string    `json:"imagePublicId"`
	RoomID        string    `json:"roomId"`
	RoomName      string    `json:"roomName"`
	CreatedAt     time.Time `json:"createdAt"`
	SignedURL     string    `json:"signedUrl,omitempty"`

	// Existing is true when the image already had an active inference
	Existing bool `json:"existing"`
	// Queued is true when the classification job was handed to the broker
	Queued bool `json:"queued"`
}

// Recorded reports detections written by the classifier callback
type Recorded struct {
	InferenceID string `json:"inferenceId"`
	Inserted    int64  `json:"inserted"`
}

// Requeued reports a retried inference
type Requeued struct {
	InferenceID string `json:"inferenceId"`
}

// RoomDeleted reports a soft deleted room and its cascade
type RoomDeleted struct {
	RoomID     string `json:"roomId"`
	Images     int64  `json:"images"`
	Inferences int64  `json:"inferences"`
	Detections int64  `json:"detections"`
}
