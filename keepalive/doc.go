// Package keepalive keeps expensive child subtrees alive across structural
// changes of a retained-mode UI tree.
//
// A Controller wraps exactly one child subtree. On each render pass the host
// reconciler hands it the children it would render; the Controller picks the
// first component child, decides through include/exclude patterns whether
// it participates in caching, and either rewrites the node onto a cached
// instance (hit) or stages the node so it is cached once the reconciler has
// materialized it (miss). The reconciler reports that moment by calling
// Mounted or Updated.
//
// Nodes returned with KeepAlive set are owned by the Controller: the
// reconciler must not run its ordinary create/destroy sequence for them.
//
// # Lifecycle
//
//	ctrl := keepalive.New(dispose,
//	    keepalive.WithInclude(pattern.List("Inbox,Settings")),
//	    keepalive.WithMax(5),
//	)
//	node := ctrl.Render(ctx, children) // once per pass
//	// ... reconciler mounts or patches node ...
//	ctrl.Updated(ctx)                  // Mounted(ctx) after the first pass
//	// ...
//	ctrl.Destroy(ctx)                  // disposes every cached instance
//
// A Controller is not safe for concurrent use; the host drives it from a
// single logical thread.
package keepalive
