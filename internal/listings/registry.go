package listings

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/listings-labs/listings/internal/ancestor"
	"github.com/listings-labs/listings/internal/cache"
	"github.com/listings-labs/listings/internal/hierarchy"
)

// ValidateHook runs after the built-in checks of Registry.Validate pass.
// Returning an error rejects the candidate set.
type ValidateHook func(kind Kind, classes []string) error

// Option configures a Registry.
type Option func(*Registry)

// WithCommonAncestor replaces the common-ancestor resolver. The default walks
// the registry's hierarchy.
func WithCommonAncestor(fn ancestor.Func) Option {
	return func(r *Registry) { r.common = fn }
}

// WithValidateHook appends a hook consulted by Validate.
func WithValidateHook(fn ValidateHook) Option {
	return func(r *Registry) { r.hooks = append(r.hooks, fn) }
}

// WithLogger sets the logger used for cache and flush diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithBaseType sets the type every member must descend from. It defaults to
// the hierarchy root.
func WithBaseType(name string) Option {
	return func(r *Registry) { r.base = name }
}

// WithListedPages links a roots or indexes registry to the listed-page
// registry that ClassesForPage validates page types against.
func WithListedPages(listed *Registry) Option {
	return func(r *Registry) { r.listed = listed }
}

// Registry is the cache-backed set of page types carrying one capability.
// Operations on one Registry are serialized; returned sets are copies.
type Registry struct {
	kind   Kind
	h      hierarchy.Hierarchy
	store  cache.Store
	common ancestor.Func
	hooks  []ValidateHook
	logger *slog.Logger
	base   string
	listed *Registry

	mu sync.Mutex
}

// New creates a registry of kind over h, memoizing into store.
func New(kind Kind, h hierarchy.Hierarchy, store cache.Store, opts ...Option) *Registry {
	r := &Registry{
		kind:   kind,
		h:      h,
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.common == nil {
		r.common = ancestor.Closest(h)
	}
	r.logger = r.logger.With("registry", kind.String())
	return r
}

// Kind reports which capability the registry tracks.
func (r *Registry) Kind() Kind { return r.kind }

// Classes returns the registry's member types. The base set holds the types
// that declare the capability themselves; with includeSubclasses it is
// followed by every live transitive subclass of those types.
func (r *Registry) Classes(includeSubclasses bool) (TypeSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.classes(includeSubclasses)
}

func (r *Registry) classes(includeSubclasses bool) (TypeSet, error) {
	names, ok := r.store.Get(r.cacheKey("Classes"))
	if !ok {
		r.logger.Debug("class cache miss, rebuilding")
		var err error
		if names, err = r.build(); err != nil {
			return TypeSet{}, err
		}
	}

	classes := NewTypeSet(names...)
	if !includeSubclasses {
		return classes, nil
	}
	return r.addSubclasses(classes)
}

// Flush discards this registry's cache entries and eagerly rebuilds them.
func (r *Registry) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Clear(r.kind.CachePrefix() + "-"); err != nil {
		return fmt.Errorf("flushing %s: %w", r.kind, err)
	}
	names, err := r.build()
	if err != nil {
		return fmt.Errorf("flushing %s: %w", r.kind, err)
	}
	r.logger.Info("flushed class cache", "classes", len(names))
	return nil
}

// build scans the base type's subtree for types declaring the capability,
// validates each, and stores the base set and its subclass expansion.
func (r *Registry) build() ([]string, error) {
	base := r.baseType()
	scan := append([]string{base}, r.h.SubclassesOf(base)...)

	names := []string{}
	for _, name := range scan {
		t, ok := r.h.Lookup(name)
		if !ok || !t.Declares(r.kind.Capability()) {
			continue
		}
		if err := r.Validate([]string{name}); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	if err := r.store.Set(r.cacheKey("Classes"), names); err != nil {
		return nil, fmt.Errorf("caching %s classes: %w", r.kind, err)
	}
	if _, err := r.addSubclasses(NewTypeSet(names...)); err != nil {
		return nil, err
	}
	return names, nil
}

func (r *Registry) addSubclasses(classes TypeSet) (TypeSet, error) {
	key := r.cacheKey("IncludeSubclasses", classes.Names()...)
	if names, ok := r.store.Get(key); ok {
		return NewTypeSet(names...), nil
	}

	expanded := classes.Clone()
	for _, name := range classes.Names() {
		for _, sub := range r.h.SubclassesOf(name) {
			expanded.Add(sub)
		}
	}
	if err := r.store.Set(key, expanded.Names()); err != nil {
		return TypeSet{}, fmt.Errorf("caching %s subclasses: %w", r.kind, err)
	}
	return expanded, nil
}

// cacheKey builds "<prefix>-<suffix>", appending a digest of classes when
// given so expansions of different sets never share a key.
func (r *Registry) cacheKey(suffix string, classes ...string) string {
	key := r.kind.CachePrefix() + "-" + suffix
	if len(classes) > 0 {
		key += "-" + cache.SumNames(classes)
	}
	return key
}

func (r *Registry) baseType() string {
	if r.base != "" {
		return r.base
	}
	return r.h.Root()
}

// ValidateClass validates a single candidate.
func (r *Registry) ValidateClass(name string) error {
	return r.Validate([]string{name})
}

// Validate checks that classes is a non-empty set of existing types that
// carry the registry's capability and descend from the base type, then runs
// the registered hooks.
func (r *Registry) Validate(classes []string) error {
	if len(classes) == 0 {
		return &ClassError{Kind: r.kind, Reason: "must be passed at least one page type", Err: ErrInvalidArgument}
	}
	seen := make(map[string]struct{}, len(classes))
	for _, name := range classes {
		if _, dup := seen[name]; dup {
			return &ClassError{Kind: r.kind, Type: name, Reason: "appears more than once", Err: ErrInvalidArgument}
		}
		seen[name] = struct{}{}
	}

	base := r.baseType()
	for _, name := range classes {
		if !r.h.Exists(name) {
			return &ClassError{Kind: r.kind, Type: name, Reason: "does not exist", Err: ErrUnexpectedValue}
		}
		if !r.h.HasCapability(name, r.kind.Capability()) {
			return &ClassError{Kind: r.kind, Type: name,
				Reason: "does not carry the " + r.kind.Capability().String() + " capability", Err: ErrUnexpectedValue}
		}
		if !slices.Contains(r.h.Ancestry(name), base) {
			return &ClassError{Kind: r.kind, Type: name, Reason: "is not a descendant of " + base, Err: ErrUnexpectedValue}
		}
	}

	for _, hook := range r.hooks {
		if err := hook(r.kind, slices.Clone(classes)); err != nil {
			return fmt.Errorf("validating %s classes: %w", r.kind, err)
		}
	}
	return nil
}

// CommonClass returns the nearest type shared by classes. An empty candidate
// list defaults to the registry's base set. A single candidate is returned as
// is without consulting the common-ancestor resolver.
func (r *Registry) CommonClass(classes []string) (string, error) {
	if len(classes) == 0 {
		defaults, err := r.Classes(false)
		if err != nil {
			return "", err
		}
		classes = defaults.Names()
	}
	if err := r.Validate(classes); err != nil {
		return "", err
	}
	if len(classes) == 1 {
		return classes[0], nil
	}

	common, err := r.common(classes)
	if err != nil {
		return "", fmt.Errorf("finding common class of %v: %w", classes, err)
	}
	return common, nil
}

// CommonSingularName returns the singular title of CommonClass(classes).
func (r *Registry) CommonSingularName(classes []string) (string, error) {
	t, err := r.commonType(classes)
	if err != nil {
		return "", err
	}
	return t.SingularName(), nil
}

// CommonPluralName returns the plural title of CommonClass(classes).
func (r *Registry) CommonPluralName(classes []string) (string, error) {
	t, err := r.commonType(classes)
	if err != nil {
		return "", err
	}
	return t.PluralName(), nil
}

func (r *Registry) commonType(classes []string) (hierarchy.Type, error) {
	name, err := r.CommonClass(classes)
	if err != nil {
		return hierarchy.Type{}, err
	}
	t, ok := r.h.Lookup(name)
	if !ok {
		return hierarchy.Type{}, fmt.Errorf("common class %s: %w", name, hierarchy.ErrUnknownType)
	}
	return t, nil
}

// ClassesForPage returns the roots or indexes managing pageType: those whose
// declared listed-page classes include pageType or one of its ancestors.
// The result is computed on every call.
func (r *Registry) ClassesForPage(pageType string) (TypeSet, error) {
	if r.kind == ListedPages || r.listed == nil {
		return TypeSet{}, &ClassError{Kind: r.kind, Type: pageType,
			Reason: "cannot be matched: registry has no listed-page associations", Err: ErrInvalidArgument}
	}
	if err := r.listed.ValidateClass(pageType); err != nil {
		return TypeSet{}, err
	}

	ancestry := NewTypeSet(r.h.Ancestry(pageType)...)
	owners, err := r.Classes(true)
	if err != nil {
		return TypeSet{}, err
	}

	var matched TypeSet
	for _, owner := range owners.Names() {
		for _, managed := range hierarchy.EffectiveListings(r.h, owner).Classes {
			if ancestry.Contains(managed) {
				matched.Add(owner)
				break
			}
		}
	}
	return matched, nil
}

// Associations returns the listed-page association data of owner, merged
// with what its ancestors declare. See hierarchy.EffectiveListings.
func (r *Registry) Associations(owner string) (hierarchy.Listings, error) {
	if r.kind == ListedPages {
		return hierarchy.Listings{}, &ClassError{Kind: r.kind, Type: owner,
			Reason: "cannot declare listed-page associations", Err: ErrInvalidArgument}
	}
	if err := r.ValidateClass(owner); err != nil {
		return hierarchy.Listings{}, err
	}
	return hierarchy.EffectiveListings(r.h, owner), nil
}

// Choice is one entry of a type picker.
type Choice struct {
	Type  string `json:"type"`
	Title string `json:"title"`
}

// Choices lists the registry's classes with their plural titles, or singular
// titles when singular is set.
func (r *Registry) Choices(includeSubclasses, singular bool) ([]Choice, error) {
	classes, err := r.Classes(includeSubclasses)
	if err != nil {
		return nil, err
	}
	choices := make([]Choice, 0, classes.Len())
	for _, name := range classes.Names() {
		t, ok := r.h.Lookup(name)
		if !ok {
			continue
		}
		title := t.PluralName()
		if singular {
			title = t.SingularName()
		}
		choices = append(choices, Choice{Type: name, Title: title})
	}
	return choices, nil
}

// IndexClasses returns the classes, subclasses included, configured with
// can_be_root.
func (r *Registry) IndexClasses() (TypeSet, error) {
	classes, err := r.Classes(true)
	if err != nil {
		return TypeSet{}, err
	}
	var out TypeSet
	for _, name := range classes.Names() {
		if t, ok := r.h.Lookup(name); ok && t.CanBeRoot {
			out.Add(name)
		}
	}
	return out, nil
}
