// Package menu implements a hierarchical, collapsible navigation menu: a
// tree of items where exactly the path from the root to the active item is
// open and sibling branches collapse when a new branch opens.
//
// The package owns the open/close state machine, the staggered reveal
// timing and the one-time href lookup. Everything visual is delegated to
// collaborators: a Document answers structural queries and shows or hides
// elements, an Animator runs expand/collapse effects, and a clock.Clock
// supplies the timers that defer those effects.
//
// A Tree is confined to one goroutine. Timer and effect callbacks are
// handed to the Dispatcher configured with WithDispatcher, which must run
// them on the goroutine that owns the tree (the terminal host posts them
// into its event loop). Without one, callbacks run inline; Build accepts
// that only for an unanimated tree or a synchronous clock such as
// clock.FakeClock, and returns ErrNoDispatcher otherwise.
package menu
