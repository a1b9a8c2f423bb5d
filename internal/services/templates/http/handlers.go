// Package http provides http transport for templates
package http

import (
	stdhttp "net/http"
	"strconv"

	"servicegeek/internal/modkit/httpkit"
	"servicegeek/internal/services/templates/domain"
	svc "servicegeek/internal/services/templates/service"
)

// Register mounts template endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.ApplyInput](r, "/project/{projectId}/template", h.apply)
	httpkit.Get(r, "/project/{projectId}/templates", h.list)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /project/{projectId}/template Templates applyTemplate
// @Summary Apply a template to a room
// @Description Inserts the template items the room is missing. Excluded items are skipped and never deleted.
// @Tags templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project public id"
// @Param payload body domain.ApplyInput true "Room, template and exclusions"
// @Success 200 {object} domain.Applied "ok; fields sit next to status"
// @Router /project/{projectId}/template [post]
func (h *handlers) apply(r *stdhttp.Request, in domain.ApplyInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	res, err := h.svc.ApplyTemplate(r.Context(), uid, httpkit.Param(r, "projectId"), in.RoomID, in.TemplateCode, in.ExcludedItems)
	return httpkit.FromInline(res, err, stdhttp.StatusOK), nil
}

// swagger:route GET /project/{projectId}/templates Templates listTemplates
// @Summary List templates for a project or room
// @Tags templates
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project public id"
// @Param roomId query string false "Room public id"
// @Param fetchAll query bool false "Skip the room category filter"
// @Param q query string false "Name search"
// @Success 200 {array} domain.Listed "ok"
// @Router /project/{projectId}/templates [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	qs := r.URL.Query()
	all, _ := strconv.ParseBool(qs.Get("fetchAll"))
	res, err := h.svc.ListTemplates(r.Context(), uid, httpkit.Param(r, "projectId"), domain.ListQuery{
		RoomID:   qs.Get("roomId"),
		FetchAll: all,
		Q:        qs.Get("q"),
	})
	return httpkit.From(res, err, stdhttp.StatusOK), nil
}
