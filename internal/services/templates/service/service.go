// Package service applies catalog templates to rooms
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"servicegeek/internal/core/templatepack"
	"servicegeek/internal/modkit/repokit"
	"servicegeek/internal/platform/logger"
	"servicegeek/internal/platform/metrics"
	"servicegeek/internal/platform/result"
	access "servicegeek/internal/services/access/domain"
	"servicegeek/internal/services/templates/domain"
	"servicegeek/internal/services/templates/repo"
)

// Service is the public service port
type Service interface{ domain.ServicePort }

// Options holds collaborators
type Options struct {
	Access   access.ResolverPort
	Registry domain.Registry
	Metrics  *metrics.Templates

	// NewID mints public ids, uuid.NewString when nil
	NewID func() string
}

// Svc implements the template application engine
type Svc struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Repo]
	opt    Options
	log    logger.Logger
}

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opt Options) *Svc {
	if db == nil {
		panic("templates.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("templates.Service requires a non nil Repo binder")
	}
	if opt.Access == nil {
		panic("templates.Service requires an access resolver")
	}
	if opt.Registry == nil {
		panic("templates.Service requires a template registry")
	}
	if opt.NewID == nil {
		opt.NewID = uuid.NewString
	}
	return &Svc{DB: db, Binder: binder, opt: opt, log: *logger.Named("templates")}
}

func (s *Svc) scope(ctx context.Context, userID, projectPublicID, roomPublicID string) (result.Result[access.Room], access.Scope, error) {
	sc, err := s.opt.Access.ResolveProject(ctx, userID, projectPublicID)
	if err != nil {
		return result.Result[access.Room]{}, access.Scope{}, err
	}
	if sc.Failed() {
		return result.Recast[access.Room](sc), access.Scope{}, nil
	}
	room, err := s.opt.Access.ResolveRoom(ctx, sc.Value, roomPublicID)
	return room, sc.Value, err
}

// ApplyTemplate inserts the template items a room is missing and returns the template's full detection list
func (s *Svc) ApplyTemplate(ctx context.Context, userID, projectPublicID, roomPublicID, code string, excluded []string) (result.Result[domain.Applied], error) {
	res, err := s.apply(ctx, userID, projectPublicID, roomPublicID, code, excluded)
	switch {
	case err != nil:
		s.opt.Metrics.Apply("error", 0)
	case res.Failed():
		s.opt.Metrics.Apply(string(res.Reason), 0)
	default:
		s.opt.Metrics.Apply("ok", res.Value.Inserted)
	}
	return res, err
}

func (s *Svc) apply(ctx context.Context, userID, projectPublicID, roomPublicID, code string, excluded []string) (result.Result[domain.Applied], error) {
	type R = result.Result[domain.Applied]

	room, scope, err := s.scope(ctx, userID, projectPublicID, roomPublicID)
	if err != nil {
		return R{}, err
	}
	if room.Failed() {
		return result.Recast[domain.Applied](room), nil
	}

	code = strings.TrimSpace(code)
	tpl, ok := s.opt.Registry.Lookup(code)
	if !ok {
		return result.Fail[domain.Applied](result.NoTemplate), nil
	}
	target := Target(tpl, excluded)

	var out domain.Applied
	err = s.DB.Tx(ctx, func(q repokit.Queryer) error {
		r := s.Binder.Bind(q)
		inf, err := r.EnsureInference(ctx, scope.ProjectID, room.Value.ID, tpl.Code, s.opt.NewID())
		if err != nil {
			return err
		}
		existing, err := r.Detections(ctx, room.Value.ID, tpl.Code)
		if err != nil {
			return err
		}

		missing := Missing(target, existing)
		rows := make([]repo.NewDetection, 0, len(missing))
		for _, it := range missing {
			rows = append(rows, repo.NewDetection{
				PublicID:    s.opt.NewID(),
				Category:    it.Category,
				Selection:   it.Selection,
				Description: it.Description,
			})
		}
		n, err := r.InsertDetections(ctx, inf, scope.ProjectID, room.Value.ID, tpl.Code, rows)
		if err != nil {
			return err
		}
		if err := r.MarkUsed(ctx, room.Value.ID, tpl.Code); err != nil {
			return err
		}

		all := existing
		if n > 0 {
			if all, err = r.Detections(ctx, room.Value.ID, tpl.Code); err != nil {
				return err
			}
		}
		out = domain.Applied{InferenceID: inf.PublicID, Detections: all, Inserted: int(n)}
		return nil
	})
	if err != nil {
		return R{}, err
	}
	if out.Detections == nil {
		out.Detections = []domain.Detection{}
	}

	s.log.Info().
		Str("template", tpl.Code).
		Int64("room_id", room.Value.ID).
		Int("excluded", len(tpl.Items)-len(target)).
		Int("inserted", out.Inserted).
		Msg("template applied")
	return result.OK(out), nil
}

// Target drops the excluded item keys from the template
func Target(t templatepack.Template, excluded []string) []templatepack.Item {
	skip := make(map[string]struct{}, len(excluded))
	for _, k := range excluded {
		skip[strings.TrimSpace(k)] = struct{}{}
	}
	out := make([]templatepack.Item, 0, len(t.Items))
	for _, it := range t.Items {
		if _, ok := skip[it.Key()]; ok {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Missing is target minus the items already present
func Missing(target []templatepack.Item, existing []domain.Detection) []templatepack.Item {
	have := make(map[string]struct{}, len(existing))
	for _, d := range existing {
		have[d.Key()] = struct{}{}
	}
	var out []templatepack.Item
	for _, it := range target {
		if _, ok := have[it.Key()]; !ok {
			out = append(out, it)
		}
	}
	return out
}

// ListTemplates returns catalog entries relevant to a room, flagged when already applied there
func (s *Svc) ListTemplates(ctx context.Context, userID, projectPublicID string, q domain.ListQuery) (result.Result[[]domain.Listed], error) {
	type R = result.Result[[]domain.Listed]

	all := s.opt.Registry.All()
	var used map[string]bool

	if roomID := strings.TrimSpace(q.RoomID); roomID == "" {
		sc, err := s.opt.Access.ResolveProject(ctx, userID, projectPublicID)
		if err != nil {
			return R{}, err
		}
		if sc.Failed() {
			return result.Recast[[]domain.Listed](sc), nil
		}
	} else {
		room, _, err := s.scope(ctx, userID, projectPublicID, roomID)
		if err != nil {
			return R{}, err
		}
		if room.Failed() {
			return result.Recast[[]domain.Listed](room), nil
		}
		r := s.Binder.Bind(s.DB)
		if used, err = r.UsedCodes(ctx, room.Value.ID); err != nil {
			return R{}, err
		}
		if !q.FetchAll {
			cats, err := r.RoomCategories(ctx, room.Value.ID)
			if err != nil {
				return R{}, err
			}
			all = Related(all, cats)
		}
	}

	out := make([]domain.Listed, 0, len(all))
	for _, t := range filterName(all, q.Q) {
		out = append(out, domain.Listed{Code: t.Code, Name: t.Name, Trade: t.Trade, Items: t.Items, Used: used[t.Code]})
	}
	return result.OK(out), nil
}

// Related keeps templates sharing a category with cats; no categories keeps everything
func Related(all []templatepack.Template, cats []string) []templatepack.Template {
	if len(cats) == 0 {
		return all
	}
	in := make(map[string]struct{}, len(cats))
	for _, c := range cats {
		in[c] = struct{}{}
	}
	var out []templatepack.Template
	for _, t := range all {
		for _, c := range t.Categories() {
			if _, ok := in[c]; ok {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

func filterName(all []templatepack.Template, q string) []templatepack.Template {
	q = strings.TrimSpace(q)
	if q == "" {
		return all
	}
	fold := cases.Fold()
	needle := fold.String(q)
	var out []templatepack.Template
	for _, t := range all {
		if strings.Contains(fold.String(t.Name), needle) {
			out = append(out, t)
		}
	}
	return out
}
