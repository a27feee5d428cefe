package observe

// SubtreeMeta describes a subtree handled by a keep-alive controller.
type SubtreeMeta struct {
	Controller string // Controller name (may be empty)
	Key        string // Cache key; empty when the subtree was not admitted
	Name       string // Declared component name used for pattern matching
	Tag        string // Reconciler tag of the rendered node
}

// SpanName returns the deterministic span name for a render pass.
// Format: keepalive.render.<controller> or keepalive.render
func (m SubtreeMeta) SpanName() string {
	if m.Controller != "" {
		return "keepalive.render." + m.Controller
	}
	return "keepalive.render"
}

// ID returns the controller-qualified cache key.
func (m SubtreeMeta) ID() string {
	if m.Controller != "" {
		return m.Controller + "/" + m.Key
	}
	return m.Key
}

// Outcome classifies a render pass.
type Outcome string

const (
	// OutcomeHit means the subtree was served from the cache.
	OutcomeHit Outcome = "hit"
	// OutcomeMiss means the subtree will be materialized and then cached.
	OutcomeMiss Outcome = "miss"
	// OutcomeBypass means include/exclude kept the subtree out of the cache.
	OutcomeBypass Outcome = "bypass"
	// OutcomePassthrough means there was no component child to cache.
	OutcomePassthrough Outcome = "passthrough"
)

// Reason classifies why an entry left the cache.
type Reason string

const (
	// ReasonCapacity is an LRU eviction after an insertion or a smaller max.
	ReasonCapacity Reason = "capacity"
	// ReasonPrune is removal after an include/exclude change.
	ReasonPrune Reason = "prune"
	// ReasonTeardown is removal while the controller is destroyed.
	ReasonTeardown Reason = "teardown"
)
