package tabs

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jonwraymond/keepalive/keepalive"
)

// Page is one tab.
type Page struct {
	// Title is shown in the tab bar and doubles as the registration tag.
	Title string
	// Ctor identifies the page's model type. Pages sharing a Ctor are told
	// apart by Title or Key. A nil Ctor gets a per-page identity.
	Ctor *keepalive.Constructor
	// Key overrides the derived cache key when set.
	Key string
	// New builds a fresh model for the page.
	New func() tea.Model
}

// Disposable is implemented by models that hold resources.
type Disposable interface {
	Dispose()
}

// ActivatedMsg is sent to a cache-managed page model each time it is shown,
// including the first time.
type ActivatedMsg struct{}

// DeactivatedMsg is sent to a page model that stays cached while another
// page is shown.
type DeactivatedMsg struct{}

// slot is the cached instance. Bubble Tea models are values, so the
// container stores a pointer and swaps the model in place on every Update.
type slot struct {
	model    tea.Model
	disposed bool
}

// dispose frees a slot once; later calls are no-ops. Both the controller
// and the container may let go of the same slot.
func dispose(i keepalive.Instance) {
	s, ok := i.(*slot)
	if !ok || s == nil || s.disposed {
		return
	}
	s.disposed = true
	if d, ok := s.model.(Disposable); ok {
		d.Dispose()
	}
}

func (s *slot) send(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.model, cmd = s.model.Update(msg)
	return cmd
}

// Model is the tab container. It implements tea.Model.
type Model struct {
	ctx   context.Context
	pages []Page
	ctrl  *keepalive.Controller

	active  int
	current *slot
	mounted bool
	closed  bool

	initCmd tea.Cmd
	width   int
}

// New creates a tab container showing the first page. opts configure the
// underlying keepalive.Controller; its disposer is supplied by the container.
func New(pages []Page, opts ...keepalive.Option) Model {
	return NewWithContext(context.Background(), pages, opts...)
}

// NewWithContext is New with a context for controller telemetry.
func NewWithContext(ctx context.Context, pages []Page, opts ...keepalive.Option) Model {
	pages = slices.Clone(pages)
	for i := range pages {
		if pages[i].Ctor == nil {
			pages[i].Ctor = &keepalive.Constructor{ID: "page-" + strconv.Itoa(i)}
		}
	}

	m := Model{
		ctx:   ctx,
		pages: pages,
		ctrl:  keepalive.New(dispose, opts...),
	}
	if len(pages) > 0 {
		m, m.initCmd = m.show(0)
	}
	return m
}

// Init returns the first page's init command.
func (m Model) Init() tea.Cmd {
	return m.initCmd
}

// Update handles tab navigation and forwards everything else to the active
// page.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.closed {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.close()
			return m, tea.Quit
		case "tab", "right", "l":
			return m.switchTo(m.active + 1)
		case "shift+tab", "left", "h":
			return m.switchTo(m.active - 1)
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}

	if m.current == nil {
		return m, nil
	}
	return m, m.current.send(msg)
}

func (m Model) switchTo(i int) (tea.Model, tea.Cmd) {
	if len(m.pages) == 0 {
		return m, nil
	}
	i = (i%len(m.pages) + len(m.pages)) % len(m.pages)
	if i == m.active {
		return m, nil
	}
	return m.show(i)
}

// show runs one render pass for page i.
func (m Model) show(i int) (Model, tea.Cmd) {
	prev, prevPage := m.current, m.pages[m.active]

	page := m.pages[i]
	out := m.ctrl.Render(m.ctx, []*keepalive.Node{pageNode(page)})

	var cmds []tea.Cmd
	if out.Instance == nil {
		model := page.New()
		out.Instance = &slot{model: model}
		cmds = append(cmds, model.Init())
	}

	if m.mounted {
		m.ctrl.Updated(m.ctx)
	} else {
		m.ctrl.Mounted(m.ctx)
		m.mounted = true
	}

	m.active = i
	m.current = out.Instance.(*slot)

	if prev != nil && prev != m.current {
		if m.owns(prevPage, prev) {
			cmds = append(cmds, prev.send(DeactivatedMsg{}))
		} else {
			dispose(prev)
		}
	}
	if out.KeepAlive {
		cmds = append(cmds, m.current.send(ActivatedMsg{}))
	}
	return m, tea.Batch(cmds...)
}

// owns reports whether the controller still holds s for page. A displayed
// entry that was pruned or evicted is dropped without disposal, so the
// container has to check before it lets go of a slot.
func (m Model) owns(page Page, s *slot) bool {
	inst, ok := m.ctrl.Instance(m.ctrl.KeyOf(pageNode(page)))
	return ok && inst == keepalive.Instance(s)
}

// close tears the container down: every cached model and the current model
// are disposed.
func (m *Model) close() {
	m.ctrl.Destroy(m.ctx)
	if m.current != nil {
		dispose(m.current)
	}
	m.current = nil
	m.closed = true
}

// View renders the tab bar, the active page and a cache status line.
func (m Model) View() string {
	if m.closed || len(m.pages) == 0 {
		return ""
	}

	tabs := make([]string, 0, len(m.pages))
	for i, page := range m.pages {
		title := page.Title
		if m.isKept(page) {
			title += keptStyle.Render(" •")
		}
		if i == m.active {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, tabStyle.Render(title))
		}
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...))
	b.WriteString("\n")
	if m.current != nil {
		b.WriteString(m.current.model.View())
	}
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status()))
	return b.String()
}

func (m Model) isKept(page Page) bool {
	return m.ctrl.Cached(m.ctrl.KeyOf(pageNode(page)))
}

func pageNode(page Page) *keepalive.Node {
	node := keepalive.NewComponentNode(page.Ctor, page.Title)
	node.Key = page.Key
	return node
}

func (m Model) status() string {
	if max := m.ctrl.Max(); max > 0 {
		return fmt.Sprintf("kept %d/%d", m.ctrl.Len(), max)
	}
	return fmt.Sprintf("kept %d", m.ctrl.Len())
}

// Active returns the index of the displayed page.
func (m Model) Active() int {
	return m.active
}

// Current returns the displayed page's model.
func (m Model) Current() tea.Model {
	if m.current == nil {
		return nil
	}
	return m.current.model
}

// Controller returns the underlying controller, e.g. for health checks.
func (m Model) Controller() *keepalive.Controller {
	return m.ctrl
}

// Ensure Model implements tea.Model
var _ tea.Model = Model{}
