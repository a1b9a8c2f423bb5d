// Package http provides http transport for media
package http

import (
	stdhttp "net/http"

	"servicegeek/internal/modkit/httpkit"
	"servicegeek/internal/services/media/domain"
	svc "servicegeek/internal/services/media/service"
)

// Register mounts media endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.SignURLsInput](r, "/signed-urls", h.signedURLs)
	httpkit.PostJSON[domain.AvatarInput](r, "/avatar-url", h.avatarURL)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /media/signed-urls Media signedUrls
// @Summary Presign storage keys
// @Tags media
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body domain.SignURLsInput true "Keys"
// @Success 200 {object} domain.SignURLsOutput "ok"
// @Router /media/signed-urls [post]
func (h *handlers) signedURLs(r *stdhttp.Request, in domain.SignURLsInput) (any, error) {
	urls, err := h.svc.Resolve(r.Context(), in.Keys)
	if err != nil {
		return nil, err
	}
	return domain.SignURLsOutput{URLs: urls}, nil
}

// swagger:route POST /media/avatar-url Media avatarUrl
// @Summary Presign a profile picture
// @Tags media
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body domain.AvatarInput true "Key"
// @Success 200 {object} domain.AvatarOutput "ok"
// @Router /media/avatar-url [post]
func (h *handlers) avatarURL(r *stdhttp.Request, in domain.AvatarInput) (any, error) {
	u, err := h.svc.ResolveAvatar(r.Context(), in.Key)
	if err != nil {
		return nil, err
	}
	return domain.AvatarOutput{URL: u}, nil
}
