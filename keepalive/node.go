package keepalive

// Instance is a materialized component instance. It is owned by the
// reconciler's instance graph; the Controller only holds references.
type Instance any

// Disposer frees a materialized instance.
type Disposer func(instance Instance)

// Constructor identifies a component implementation.
type Constructor struct {
	// ID is unique per constructor.
	ID string
	// Name is the component's declared name, if any.
	Name string
}

// Component is the declared component metadata of a node.
type Component struct {
	Ctor *Constructor
	// Tag is the name the component was registered under locally.
	Tag string
}

// Node is the lightweight description of a subtree produced by one render
// pass.
type Node struct {
	// Key is the explicit identity key supplied by the render producer.
	Key string
	// Tag is the reconciler's node tag.
	Tag string
	// Component is nil for nodes that are not components.
	Component *Component
	// Instance is set by the reconciler after materialization, or by the
	// Controller on a cache hit.
	Instance Instance
	// KeepAlive marks the node as cache-managed.
	KeepAlive bool
}

// NewComponentNode builds a component node for ctor registered as tag. The
// node tag is component-<id>[-<name>], where name is the constructor name
// or, failing that, the registration tag.
func NewComponentNode(ctor *Constructor, tag string) *Node {
	c := &Component{Ctor: ctor, Tag: tag}
	nodeTag := "component-" + ctor.ID
	if name := ComponentName(c); name != "" {
		nodeTag += "-" + name
	}
	return &Node{Tag: nodeTag, Component: c}
}

// IsComponent reports whether n can be materialized as a component.
func (n *Node) IsComponent() bool {
	return n != nil && n.Component != nil && n.Component.Ctor != nil
}

// ComponentName returns the declared constructor name, falling back to the
// registration tag. It returns "" when neither is known.
func ComponentName(c *Component) string {
	if c == nil {
		return ""
	}
	if c.Ctor != nil && c.Ctor.Name != "" {
		return c.Ctor.Name
	}
	return c.Tag
}

// FirstComponentChild returns the first component node in children.
func FirstComponentChild(children []*Node) *Node {
	for _, child := range children {
		if child.IsComponent() {
			return child
		}
	}
	return nil
}
