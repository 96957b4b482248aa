package widget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEnvelopeShowsAfterHover(t *testing.T) {
	f := newFixture(1000, nil, false)

	f.host.fire(f.root, PointerEnter)
	f.host.Advance(2999 * time.Millisecond)
	require.False(t, f.w.EnvelopeShown())

	f.host.Advance(time.Millisecond)
	require.True(t, f.w.EnvelopeShown())
	require.True(t, f.root.classes[ClassEnvelope])
}

func TestEnvelopeLeaveCancelsPendingShow(t *testing.T) {
	f := newFixture(1000, nil, false)

	f.host.fire(f.root, PointerEnter)
	f.host.Advance(2 * time.Second)
	f.host.fire(f.root, PointerLeave)
	f.host.Advance(10 * time.Second)
	require.False(t, f.w.EnvelopeShown())
}

func TestEnvelopeHidesAfterLeave(t *testing.T) {
	f := newFixture(1000, nil, false)

	f.host.fire(f.root, Click)
	require.True(t, f.w.EnvelopeShown())

	f.host.fire(f.root, PointerLeave)
	f.host.Advance(999 * time.Millisecond)
	require.True(t, f.w.EnvelopeShown())
	f.host.Advance(time.Millisecond)
	require.False(t, f.w.EnvelopeShown())
	require.False(t, f.root.classes[ClassEnvelope])
}

func TestEnvelopeReenterCancelsHide(t *testing.T) {
	f := newFixture(1000, nil, false)

	f.host.fire(f.root, Click)
	f.host.fire(f.root, PointerLeave)
	f.host.Advance(500 * time.Millisecond)
	f.host.fire(f.root, Click)
	f.host.Advance(5 * time.Second)
	require.True(t, f.w.EnvelopeShown())
}

func TestEnvelopeHideSuppressedWhileDragging(t *testing.T) {
	f := newFixture(1000, nil, false)

	f.host.fire(f.root, Click)
	f.host.down(f.root, 0, 0)
	f.host.fire(f.root, PointerLeave)
	f.host.Advance(5 * time.Second)
	require.True(t, f.w.EnvelopeShown())
	require.False(t, f.w.envelopeTimer.pending())

	// Releasing hides it right away.
	f.host.up(0, 0)
	require.False(t, f.w.EnvelopeShown())
}

func TestPointerDownCancelsPendingShow(t *testing.T) {
	f := newFixture(1000, nil, false)

	f.host.fire(f.root, PointerEnter)
	f.host.down(f.root, 0, 0)
	require.False(t, f.w.envelopeTimer.pending())
	f.host.Advance(5 * time.Second)
	require.False(t, f.w.EnvelopeShown())
	f.host.up(0, 0)
}
