package widget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInitBuildsTree(t *testing.T) {
	f := newFixture(1000, nil, false, scenarioOptions()...)

	require.Equal(t, []*fakeElement{f.root}, f.container.children)
	require.Same(t, f.container, f.root.parent)
	require.NotNil(t, f.handle())
	require.Equal(t, map[string]int{
		StyleLeft: 10, StyleTop: 10, StyleWidth: 100, StyleHeight: 100,
	}, f.root.style)
	require.Equal(t, []string{"inited", "resize"}, f.hooks.calls)
	require.Same(t, f.root, f.w.Root().(*fakeElement))
}

func TestInitResolvesRightAnchorAgainstViewport(t *testing.T) {
	f := newFixture(640, nil, false, WithRight(20), WithSize(100, 50))
	require.Equal(t, 520, f.root.style[StyleLeft])
}

func TestReflowFollowsViewport(t *testing.T) {
	f := newFixture(1000, nil, false, WithRight(20), WithSize(100, 50))
	require.Equal(t, 880, f.root.style[StyleLeft])

	f.host.width = 800
	f.w.Reflow()
	require.Equal(t, 680, f.root.style[StyleLeft])

	// A drag in progress keeps its viewport snapshot.
	f.host.down(f.root, 0, 0)
	f.host.width = 1200
	f.w.Reflow()
	require.Equal(t, 680, f.root.style[StyleLeft])
	f.host.up(0, 0)
}

func TestDestroyMidDragLeavesNothingScheduled(t *testing.T) {
	h, hooks, w, root := newRenderFixture(scenarioOptions()...)
	var handle *fakeElement
	for _, c := range root.children {
		if c.kind == KindHandle {
			handle = c
		}
	}

	h.fire(root, PointerEnter)
	h.down(handle, 0, 0)
	h.move(20, 20)
	require.True(t, w.resizeTimer.pending())

	renders := len(hooks.renders)
	resizes := hooks.count("resize")

	w.Destroy()

	require.Empty(t, h.timers)
	require.Empty(t, h.frames)
	require.Empty(t, h.subs)
	require.Nil(t, w.Root())
	require.Nil(t, w.Context())
	require.False(t, w.Manipulating())

	for i := 0; i < 100; i++ {
		h.Frame(100 * time.Millisecond)
	}
	h.move(80, 80)
	h.up(80, 80)
	h.Advance(time.Minute)

	require.Len(t, hooks.renders, renders)
	require.Equal(t, resizes, hooks.count("resize"))
	require.False(t, w.EnvelopeShown())
}

func TestDestroyCancelsPendingSave(t *testing.T) {
	f := newFixture(1000, nil, false, scenarioOptions()...)
	f.host.down(f.root, 0, 0)
	f.host.move(5, 5)
	f.host.up(5, 5)
	f.host.fire(f.root, PointerLeave)
	require.Len(t, f.host.timers, 2)

	f.w.Destroy()
	require.Empty(t, f.host.timers)
	f.host.Advance(time.Minute)
	require.Empty(t, f.settings.sets)
}

func TestSettleWritesPendingSaveOnce(t *testing.T) {
	f := newFixture(1000, nil, false, scenarioOptions()...)
	f.w.Settle()
	require.Empty(t, f.settings.sets)

	f.host.down(f.root, 0, 0)
	f.host.move(5, 5)
	f.host.up(5, 5)
	require.Empty(t, f.settings.sets)

	f.w.Settle()
	require.Len(t, f.settings.sets, 1)
	require.Equal(t, 15, f.settings.sets[0]["left"])
	require.Equal(t, 15, f.settings.sets[0]["top"])

	f.w.Destroy()
	f.host.Advance(time.Minute)
	require.Len(t, f.settings.sets, 1)
}

func TestDestroyTwice(t *testing.T) {
	f := newFixture(1000, nil, false)
	f.w.Destroy()
	require.NotPanics(t, f.w.Destroy)
	require.True(t, f.w.Destroyed())
}

func TestReflowAfterDestroyIsNoop(t *testing.T) {
	f := newFixture(1000, nil, false)
	f.w.Destroy()
	require.NotPanics(t, f.w.Reflow)
}

func TestResizingOnlyForHandleDrags(t *testing.T) {
	f := newFixture(1000, nil, false)

	f.host.down(f.handle(), 0, 0)
	require.True(t, f.w.Resizing())
	f.host.up(0, 0)
	require.False(t, f.w.Resizing())

	f.host.down(f.root, 0, 0)
	require.True(t, f.w.Manipulating())
	require.False(t, f.w.Resizing())
	f.host.up(0, 0)
}
