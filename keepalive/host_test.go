package keepalive

import (
	"context"
	"strconv"
	"testing"
)

// instance is a stand-in for a materialized component.
type instance struct {
	id string
}

// host drives a Controller the way a reconciler would: render, materialize
// on miss, then commit.
type host struct {
	t        *testing.T
	ctrl     *Controller
	mounted  bool
	created  map[string]int
	disposed []string
}

func newHost(t *testing.T, opts ...Option) *host {
	t.Helper()
	h := &host{t: t, created: make(map[string]int)}
	h.ctrl = New(h.dispose, opts...)
	return h
}

func (h *host) dispose(i Instance) {
	h.disposed = append(h.disposed, i.(*instance).id)
}

// show renders node as the sole child and commits the pass. It returns the
// instance that ended up on screen.
func (h *host) show(node *Node) *instance {
	h.t.Helper()
	ctx := context.Background()

	out := h.ctrl.Render(ctx, []*Node{node})
	if out.Instance == nil {
		h.created[out.Tag]++
		out.Instance = &instance{id: out.Tag + "#" + strconv.Itoa(h.created[out.Tag])}
	}

	if h.mounted {
		h.ctrl.Updated(ctx)
	} else {
		h.ctrl.Mounted(ctx)
		h.mounted = true
	}

	if err := h.ctrl.Verify(); err != nil {
		h.t.Fatalf("Verify() after show: %v", err)
	}
	return out.Instance.(*instance)
}

var (
	ctorA = &Constructor{ID: "1", Name: "A"}
	ctorB = &Constructor{ID: "2", Name: "B"}
	ctorC = &Constructor{ID: "3", Name: "C"}
)
