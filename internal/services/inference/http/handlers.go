// Package http provides http transport for inference records
package http

import (
	stdhttp "net/http"
	"strconv"

	"servicegeek/internal/modkit/httpkit"
	"servicegeek/internal/platform/result"
	"servicegeek/internal/services/inference/domain"
	svc "servicegeek/internal/services/inference/service"
)

// Register mounts the user facing endpoints
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.LinkImageInput](r, "/project/{projectId}/image/{imageId}/inference", h.linkImage)
	httpkit.PostJSON[domain.ReassignInput](r, "/project/{projectId}/image/room", h.reassign)
	httpkit.Delete(r, "/project/{projectId}/room/{roomId}", h.deleteRoom)
}

// RegisterWorker mounts the classifier callback endpoints
func RegisterWorker(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.RecordDetectionsInput](r, "/inference/{inferenceId}/detections", h.recordDetections)
	httpkit.Post(r, "/inference/{inferenceId}/retry", h.retry)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /project/{projectId}/image/{imageId}/inference Inference linkImage
// @Summary Link an uploaded image to a room and queue classification
// @Tags inference
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project public id"
// @Param imageId path string true "Image public id"
// @Param payload body domain.LinkImageInput true "Room"
// @Success 200 {object} domain.Linked "ok"
// @Router /project/{projectId}/image/{imageId}/inference [post]
func (h *handlers) linkImage(r *stdhttp.Request, in domain.LinkImageInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	res, err := h.svc.LinkImage(r.Context(), uid, httpkit.Param(r, "projectId"), httpkit.Param(r, "imageId"), in.RoomID)
	return httpkit.From(res, err, stdhttp.StatusOK), nil
}

// swagger:route POST /project/{projectId}/image/room Inference reassignRoom
// @Summary Move an image and its detections to another room
// @Tags inference
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project public id"
// @Param payload body domain.ReassignInput true "Image key and target room"
// @Success 200 {object} domain.Reassigned "ok"
// @Router /project/{projectId}/image/room [post]
func (h *handlers) reassign(r *stdhttp.Request, in domain.ReassignInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	res, err := h.svc.ReassignInProject(r.Context(), uid, httpkit.Param(r, "projectId"), in.ImageKey, in.RoomID)
	return httpkit.From(res, err, stdhttp.StatusOK), nil
}

// swagger:route DELETE /project/{projectId}/room/{roomId} Inference deleteRoom
// @Summary Soft delete a room with its images, inferences and detections
// @Tags inference
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project public id"
// @Param roomId path string true "Room public id"
// @Success 200 {object} domain.RoomDeleted "ok"
// @Router /project/{projectId}/room/{roomId} [delete]
func (h *handlers) deleteRoom(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	res, err := h.svc.DeleteRoom(r.Context(), uid, httpkit.Param(r, "projectId"), httpkit.Param(r, "roomId"))
	return httpkit.From(res, err, stdhttp.StatusOK), nil
}

// swagger:route POST /inference/{inferenceId}/detections Inference recordDetections
// @Summary Store classifier detections
// @Tags inference
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param inferenceId path int true "Inference id"
// @Param payload body domain.RecordDetectionsInput true "Detections"
// @Success 200 {object} domain.Recorded "ok"
// @Router /inference/{inferenceId}/detections [post]
func (h *handlers) recordDetections(r *stdhttp.Request, in domain.RecordDetectionsInput) (any, error) {
	id, ok := inferenceID(r)
	if !ok {
		return httpkit.Failed(result.InvalidInput), nil
	}
	res, err := h.svc.RecordDetections(r.Context(), id, in.Detections)
	return httpkit.From(res, err, stdhttp.StatusOK), nil
}

// swagger:route POST /inference/{inferenceId}/retry Inference retryInference
// @Summary Requeue an inference for classification
// @Tags inference
// @Produce json
// @Security BearerAuth
// @Param inferenceId path int true "Inference id"
// @Success 200 {object} domain.Requeued "ok"
// @Router /inference/{inferenceId}/retry [post]
func (h *handlers) retry(r *stdhttp.Request) (any, error) {
	id, ok := inferenceID(r)
	if !ok {
		return httpkit.Failed(result.InvalidInput), nil
	}
	res, err := h.svc.Retry(r.Context(), id)
	return httpkit.From(res, err, stdhttp.StatusOK), nil
}

func inferenceID(r *stdhttp.Request) (int64, bool) {
	id, err := strconv.ParseInt(httpkit.Param(r, "inferenceId"), 10, 64)
	return id, err == nil && id > 0
}
