package keepalive

import (
	"context"
	"fmt"

	"github.com/jonwraymond/keepalive/cache"
	"github.com/jonwraymond/keepalive/observe"
	"github.com/jonwraymond/keepalive/pattern"
)

// pendingFill is a cache write staged on a miss and committed once the
// reconciler has materialized the node.
type pendingFill struct {
	key  cache.Key
	node *Node
}

// Controller is the keep-alive behavior for one wrapped child subtree.
type Controller struct {
	name    string
	include pattern.Pattern
	exclude pattern.Pattern
	max     int
	keyer   cache.Keyer
	dispose Disposer
	rec     *observe.Recorder

	store   *cache.Store[Instance]
	pending *pendingFill

	// rendered is the node returned by the latest Render; active is the
	// node committed by the latest Mounted or Updated, i.e. on screen.
	rendered  *Node
	active    *Node
	destroyed bool
}

// New creates a Controller. dispose is called with every instance the
// Controller drops from its cache, except the one currently displayed; a
// nil dispose never frees anything.
func New(dispose Disposer, opts ...Option) *Controller {
	c := &Controller{
		keyer:   cache.NewDefaultKeyer(),
		dispose: dispose,
		rec:     observe.NopRecorder(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.store = cache.NewStore[Instance](c.max)
	return c
}

// Render resolves the child subtree to render for this pass.
//
// The first component child is looked up in the cache. Non-component
// children, and components kept out by include/exclude, are returned
// untouched, as are components whose derived key fails cache.ValidateKey.
// On a hit the node's Instance is replaced with the cached one; on a miss
// the node is staged for the next Mounted or Updated. Either way the
// returned node has KeepAlive set.
func (c *Controller) Render(ctx context.Context, children []*Node) *Node {
	if c.pending != nil {
		panic(fmt.Errorf("%w: key %q", ErrPendingFillOutstanding, c.pending.key))
	}

	pass := c.rec.StartPass(ctx, c.name)

	node := FirstComponentChild(children)
	if node == nil || c.destroyed {
		if node == nil && len(children) > 0 {
			node = children[0]
		}
		c.rendered = node
		pass.End(observe.SubtreeMeta{}, observe.OutcomePassthrough)
		return node
	}

	c.rendered = node
	name := ComponentName(node.Component)
	meta := observe.SubtreeMeta{Controller: c.name, Name: name, Tag: node.Tag}

	if !c.admits(name) {
		pass.End(meta, observe.OutcomeBypass)
		return node
	}

	key := c.KeyOf(node)
	if err := cache.ValidateKey(key); err != nil {
		c.rec.Logger().WithSubtree(meta).Warn(ctx, "keepalive caching skipped: unusable key",
			observe.Field{Key: "error", Value: err.Error()},
		)
		pass.End(meta, observe.OutcomeBypass)
		return node
	}
	meta.Key = key

	outcome := observe.OutcomeMiss
	if entry, ok := c.store.Get(key); ok {
		node.Instance = entry.Instance
		c.store.Promote(key)
		outcome = observe.OutcomeHit
	} else {
		c.pending = &pendingFill{key: key, node: node}
	}

	node.KeepAlive = true
	pass.End(meta, outcome)
	return node
}

// admits applies include/exclude to name. Unnamed subtrees are admitted
// only when no include pattern is set, and are never excluded.
func (c *Controller) admits(name string) bool {
	if c.include.IsSet() && (name == "" || !c.include.Admits(name)) {
		return false
	}
	if c.exclude.IsSet() && name != "" && c.exclude.Admits(name) {
		return false
	}
	return true
}

// Mounted is the fill callback after the first render pass was committed.
func (c *Controller) Mounted(ctx context.Context) {
	c.commit(ctx)
}

// Updated is the fill callback after a later render pass was committed.
func (c *Controller) Updated(ctx context.Context) {
	c.commit(ctx)
}

func (c *Controller) commit(ctx context.Context) {
	if c.destroyed {
		return
	}
	c.active = c.rendered

	p := c.pending
	if p == nil {
		return
	}
	if p.key == "" || p.node == nil {
		panic(fmt.Errorf("%w: key %q", ErrCorruptPendingFill, p.key))
	}
	c.pending = nil

	name := ComponentName(p.node.Component)
	meta := observe.SubtreeMeta{Controller: c.name, Key: p.key, Name: name, Tag: p.node.Tag}

	if p.node.Instance == nil {
		c.rec.Logger().WithSubtree(meta).Warn(ctx, "keepalive fill skipped: node was not materialized")
		return
	}

	_, existed := c.store.Get(p.key)
	removed := c.store.Insert(p.key, cache.Entry[Instance]{
		Name:     name,
		Tag:      p.node.Tag,
		Instance: p.node.Instance,
	}, c.disposer(), c.activeTag())

	c.rec.Filled(ctx, meta, !existed)
	c.report(ctx, removed, observe.ReasonCapacity)
}

// SetInclude replaces the include pattern and prunes cached subtrees it no
// longer admits. Unchanged patterns prune nothing.
func (c *Controller) SetInclude(ctx context.Context, p pattern.Pattern) {
	if c.include.Equal(p) {
		return
	}
	c.include = p
	if c.destroyed {
		return
	}

	keep := func(name string) bool { return !p.IsSet() || p.Admits(name) }
	c.report(ctx, c.store.PruneWhere(keep, c.disposer(), c.activeTag()), observe.ReasonPrune)
}

// SetExclude replaces the exclude pattern and prunes cached subtrees it now
// excludes. Unchanged patterns prune nothing.
func (c *Controller) SetExclude(ctx context.Context, p pattern.Pattern) {
	if c.exclude.Equal(p) {
		return
	}
	c.exclude = p
	if c.destroyed {
		return
	}

	keep := func(name string) bool { return !p.Admits(name) }
	c.report(ctx, c.store.PruneWhere(keep, c.disposer(), c.activeTag()), observe.ReasonPrune)
}

// SetMax re-parses the bound and evicts least recently used subtrees until
// the cache fits.
func (c *Controller) SetMax(ctx context.Context, v any) {
	c.max, _ = cache.ParseMax(v)
	if c.destroyed {
		return
	}
	c.report(ctx, c.store.SetMax(c.max, c.disposer(), c.activeTag()), observe.ReasonCapacity)
}

// Destroy disposes every cached instance, including the displayed one, and
// makes the Controller inert. Calling Destroy again is a no-op.
func (c *Controller) Destroy(ctx context.Context) {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.pending = nil

	c.report(ctx, c.store.Clear(c.disposer()), observe.ReasonTeardown)
	c.rendered = nil
	c.active = nil
}

func (c *Controller) disposer() cache.Disposer[Instance] {
	if c.dispose == nil {
		return nil
	}
	return cache.Disposer[Instance](c.dispose)
}

func (c *Controller) activeTag() string {
	if c.active == nil {
		return ""
	}
	return c.active.Tag
}

func (c *Controller) report(ctx context.Context, removed []cache.Removal[Instance], reason observe.Reason) {
	for _, r := range removed {
		c.rec.Removed(ctx, observe.SubtreeMeta{
			Controller: c.name,
			Key:        r.Key,
			Name:       r.Entry.Name,
			Tag:        r.Entry.Tag,
		}, reason, r.Disposed)
	}
}

// KeyOf returns the cache key the Controller derives for a component node.
func (c *Controller) KeyOf(node *Node) cache.Key {
	return c.keyer.Key(node.Key, node.Component.Ctor.ID, node.Component.Tag)
}

// Cached reports whether key currently holds an instance.
func (c *Controller) Cached(key cache.Key) bool {
	_, ok := c.store.Get(key)
	return ok
}

// Instance returns the cached instance for key without refreshing recency.
func (c *Controller) Instance(key cache.Key) (Instance, bool) {
	entry, ok := c.store.Get(key)
	if !ok {
		return nil, false
	}
	return entry.Instance, true
}

// Keys returns cached keys from least to most recently used.
func (c *Controller) Keys() []cache.Key {
	return c.store.Keys()
}

// Len returns the number of cached subtrees.
func (c *Controller) Len() int {
	return c.store.Len()
}

// Max returns the bound, or zero when unbounded.
func (c *Controller) Max() int {
	return c.store.Max()
}

// Verify checks the cache's structural invariants.
func (c *Controller) Verify() error {
	return c.store.Verify()
}

// Active returns the node committed by the latest Mounted or Updated.
func (c *Controller) Active() *Node {
	return c.active
}

// Name returns the controller's telemetry name.
func (c *Controller) Name() string {
	return c.name
}

// Include returns the current include pattern.
func (c *Controller) Include() pattern.Pattern {
	return c.include
}

// Exclude returns the current exclude pattern.
func (c *Controller) Exclude() pattern.Pattern {
	return c.exclude
}
