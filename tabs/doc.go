// Package tabs is a Bubble Tea tab container that keeps inactive tab models
// alive through a keepalive.Controller.
//
// Every tab switch is one render pass: the container asks the Controller for
// the page's node, builds a fresh model with Page.New on a miss, and commits
// the pass. Switching back to a cached page reuses its model with all of its
// state. Pages kept out by include/exclude are rebuilt on every visit.
//
//	m := tabs.New([]tabs.Page{
//	    {Title: "Inbox", Ctor: inbox, New: newInbox},
//	    {Title: "Compose", Ctor: compose, New: newCompose},
//	}, keepalive.WithExclude(pattern.List("Compose")), keepalive.WithMax(4))
//
//	if _, err := tea.NewProgram(m).Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// Models implementing Disposable are told when the container lets go of them.
package tabs
