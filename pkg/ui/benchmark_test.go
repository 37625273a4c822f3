package ui

import (
	"fmt"
	"testing"
	"time"

	"github.com/vanderheijden86/openmenu/pkg/menu"
	"github.com/vanderheijden86/openmenu/pkg/testutil"
)

func BenchmarkRowsAndRender(b *testing.B) {
	for _, shape := range []struct{ depth, breadth int }{{2, 10}, {3, 8}, {4, 6}} {
		fixture := testutil.NewDefault().Tree(shape.depth, shape.breadth)
		b.Run(fmt.Sprintf("items=%d", fixture.Items()), func(b *testing.B) {
			opts := menu.DefaultOptions()
			opts.Animate = false
			opts.SingleMode = false
			tree, view := buildGenerated(b, fixture.HTML, opts)
			for _, id := range tree.Descendants(menu.RootID) {
				tree.Open(id, true, false)
			}
			now := time.Now()

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				view.Render(view.Rows(now))
			}
		})
	}
}

func BenchmarkToggle(b *testing.B) {
	fixture := testutil.NewDefault().Tree(4, 6)
	opts := menu.DefaultOptions()
	opts.Animate = false
	tree, view := buildGenerated(b, fixture.HTML, opts)
	first := tree.Children(menu.RootID)[0]

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		view.Activate(first)
	}
}
