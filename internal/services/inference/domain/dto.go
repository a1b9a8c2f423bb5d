package domain

// LinkImageInput picks the room an uploaded image belongs to
type LinkImageInput struct {
	RoomID string `json:"roomId" validate:"required,notblank"`
}

// ReassignInput moves an image to another room
type ReassignInput struct {
	ImageKey string `json:"imageKey" validate:"required,notblank"`
	RoomID   string `json:"roomId" validate:"required,notblank"`
}

// DetectionInput is one classifier finding
type DetectionInput struct {
	Category   string  `json:"category" validate:"required"`
	Code       string  `json:"code" validate:"required"`
	Item       string  `json:"item"`
	Quality    string  `json:"quality"`
	Confidence float64 `json:"confidence" validate:"gte=0,lte=1"`
}

// RecordDetectionsInput is the classifier callback body
type RecordDetectionsInput struct {
	Detections []DetectionInput `json:"detections" validate:"required,min=1,max=1000,dive"`
}
