package store

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rosterly/shiftroster/pkg/db"
	"github.com/rosterly/shiftroster/pkg/snapshot"
)

// Registry bundles the per-domain stores behind one construction and
// initialisation point.
type Registry struct {
	People    *PersonStore
	Roles     *RoleStore
	Groups    *GroupStore
	Leaves    *LeaveStore
	Templates *TemplateStore
	Rosters   *RosterStore
	Shifts    *ShiftStore
}

// NewRegistry creates all stores over one database connection; cache may
// be nil to disable snapshot persistence.
func NewRegistry(database db.Database, cache *snapshot.Cache, logger *zap.Logger) *Registry {
	return &Registry{
		People:    NewPersonStore(database, logger),
		Roles:     NewRoleStore(database, logger),
		Groups:    NewGroupStore(database, logger),
		Leaves:    NewLeaveStore(database, logger),
		Templates: NewTemplateStore(database, cache, logger),
		Rosters:   NewRosterStore(database, cache, logger),
		Shifts:    NewShiftStore(database, logger),
	}
}

// LoadPersisted publishes locally persisted snapshots before the first
// remote fetch, so callers see templates and rosters immediately after a
// restart.
func (r *Registry) LoadPersisted() {
	r.Templates.LoadPersisted()
	r.Rosters.LoadPersisted()
}

// Init performs the first fetch of every domain. Roles load first and
// then people, since people reference roles by id; the remaining
// domains only reference the first two and load concurrently.
func (r *Registry) Init(ctx context.Context) error {
	if err := r.Roles.Fetch(ctx); err != nil {
		return err
	}
	if err := r.People.Fetch(ctx); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return r.Groups.Fetch(ctx) })
	g.Go(func() error { return r.Leaves.Fetch(ctx) })
	g.Go(func() error { return r.Templates.Fetch(ctx) })
	g.Go(func() error { return r.Rosters.Fetch(ctx) })
	g.Go(func() error { return r.Shifts.Fetch(ctx) })
	return g.Wait()
}
