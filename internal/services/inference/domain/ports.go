package domain

import (
	"context"

	"servicegeek/internal/platform/result"
)

// ServicePort is the inference record store
type ServicePort interface {
	// CreateInference returns nil, nil when the image public id does not resolve
	CreateInference(ctx context.Context, imagePublicID string, roomID int64) (*Inference, error)

	// ReassignRoom moves an image's inference and its detections to another room
	ReassignRoom(ctx context.Context, imageKey, newRoomPublicID, actingUserID string) (result.Result[Reassigned], error)

	// ReassignInProject is ReassignRoom for an image that must belong to the named project
	ReassignInProject(ctx context.Context, userID, projectPublicID, imageKey, roomPublicID string) (result.Result[Reassigned], error)

	// LinkImage creates the inference for an uploaded image and schedules classification
	LinkImage(ctx context.Context, userID, projectPublicID, imagePublicID, roomPublicID string) (result.Result[Linked], error)

	// RecordDetections stores classifier output for an inference
	RecordDetections(ctx context.Context, inferenceID int64, in []DetectionInput) (result.Result[Recorded], error)

	// Retry republishes an inference with the flat retry delay
	Retry(ctx context.Context, inferenceID int64) (result.Result[Requeued], error)

	// DeleteRoom soft deletes a room with its images, inferences and detections
	DeleteRoom(ctx context.Context, userID, projectPublicID, roomPublicID string) (result.Result[RoomDeleted], error)
}
