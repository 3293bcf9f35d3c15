package layout

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/huynhanx03/go-hybridrow/pkg/schema"
)

// Resolver maps schema ids to compiled layouts.
type Resolver interface {
	Resolve(id schema.SchemaID) (*Layout, error)
}

// NamespaceResolver compiles the schemas of a namespace on first use and caches the
// layouts. Each schema is compiled at most once, even under concurrent first use;
// failures are not cached.
type NamespaceResolver struct {
	ns             *schema.Namespace
	parent         Resolver
	cache          *layoutCache
	group          singleflight.Group
	logger         *zap.Logger
	maxConcurrency int
}

// Option configures a NamespaceResolver.
type Option func(*NamespaceResolver)

// WithParent resolves ids missing from the namespace through parent.
func WithParent(parent Resolver) Option {
	return func(r *NamespaceResolver) { r.parent = parent }
}

func WithLogger(logger *zap.Logger) Option {
	return func(r *NamespaceResolver) { r.logger = logger }
}

// WithShards sets the number of cache shards.
func WithShards(n int) Option {
	return func(r *NamespaceResolver) { r.cache = newLayoutCache(n) }
}

// WithMaxConcurrency bounds the compilations ResolveAll runs at once.
func WithMaxConcurrency(n int) Option {
	return func(r *NamespaceResolver) { r.maxConcurrency = n }
}

// NewNamespaceResolver creates a resolver over ns.
func NewNamespaceResolver(ns *schema.Namespace, opts ...Option) *NamespaceResolver {
	r := &NamespaceResolver{
		ns:             ns,
		logger:         zap.NewNop(),
		maxConcurrency: 4,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.cache == nil {
		r.cache = newLayoutCache(defaultCacheShards)
	}
	return r
}

func (r *NamespaceResolver) Namespace() *schema.Namespace { return r.ns }

// Resolve returns the layout of the schema id, compiling it on first use.
func (r *NamespaceResolver) Resolve(id schema.SchemaID) (*Layout, error) {
	if l, ok := r.cache.Get(id); ok {
		return l, nil
	}

	v, err, _ := r.group.Do(strconv.Itoa(int(id)), func() (any, error) {
		if l, ok := r.cache.Get(id); ok {
			return l, nil
		}

		s, ok := r.ns.FindByID(id)
		if !ok {
			if r.parent != nil {
				return r.parent.Resolve(id)
			}
			return nil, errors.Wrapf(ErrSchemaNotFound, "resolve schema %d", id)
		}

		l, err := Compile(r.ns, s)
		if err != nil {
			return nil, errors.Wrapf(err, "resolve schema %d", id)
		}
		r.cache.Set(id, l)
		r.logger.Debug("schema compiled",
			zap.String("schema", s.Name),
			zap.Int32("id", int32(id)),
			zap.Int("columns", len(l.AllColumns())),
			zap.Int("size", l.Size()),
		)
		return l, nil
	})
	if err != nil {
		r.logger.Warn("resolve failed", zap.Int32("id", int32(id)), zap.Error(err))
		return nil, err
	}
	return v.(*Layout), nil
}

// ResolveAll compiles every schema of the namespace, at most maxConcurrency at a time.
// It returns the first failure.
func (r *NamespaceResolver) ResolveAll(ctx context.Context) error {
	p := pool.New().
		WithMaxGoroutines(max(1, r.maxConcurrency)).
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()

	for _, s := range r.ns.Schemas {
		id := s.SchemaID
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := r.Resolve(id)
			return err
		})
	}
	return p.Wait()
}

// Cached returns the number of compiled layouts held.
func (r *NamespaceResolver) Cached() int {
	return r.cache.Len()
}

// StaticResolver serves a fixed set of prebuilt layouts.
type StaticResolver struct {
	layouts map[schema.SchemaID]*Layout
}

// NewStaticResolver indexes layouts by schema id.
func NewStaticResolver(layouts ...*Layout) *StaticResolver {
	m := make(map[schema.SchemaID]*Layout, len(layouts))
	for _, l := range layouts {
		m[l.SchemaID()] = l
	}
	return &StaticResolver{layouts: m}
}

func (r *StaticResolver) Resolve(id schema.SchemaID) (*Layout, error) {
	l, ok := r.layouts[id]
	if !ok {
		return nil, errors.Wrapf(ErrSchemaNotFound, "resolve schema %d", id)
	}
	return l, nil
}
