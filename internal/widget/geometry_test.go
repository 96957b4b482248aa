package widget

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClampIdempotentAndBounded(t *testing.T) {
	bounds := []struct{ lo, hi int }{
		{32, 500},
		{0, 0},
		{10, 11},
		{-50, 50},
	}
	for _, b := range bounds {
		for v := -1000; v <= 1000; v += 7 {
			once := clamp(v, b.lo, b.hi)
			require.Equal(t, once, clamp(once, b.lo, b.hi), "v=%d lo=%d hi=%d", v, b.lo, b.hi)
			require.GreaterOrEqual(t, once, b.lo)
			require.LessOrEqual(t, once, b.hi)
		}
	}
}

func TestClampInvertedBoundsPicksLower(t *testing.T) {
	// minWidth > maxWidth: the lower bound wins for every input.
	for _, v := range []int{-10, 0, 40, 60, 1000} {
		got := clamp(v, 50, 20)
		require.Equal(t, 50, got)
		require.Equal(t, got, clamp(got, 50, 20))
	}
}

func TestGeometryAnchorAccessors(t *testing.T) {
	g := Geometry{Width: 100, Height: 80, Anchor: Anchor{Edge: EdgeLeft, Offset: 15}, Top: 5}
	left, okLeft := g.Left()
	_, okRight := g.Right()
	require.True(t, okLeft)
	require.False(t, okRight)
	require.Equal(t, 15, left)

	g.Anchor = Anchor{Edge: EdgeRight, Offset: 0}
	_, okLeft = g.Left()
	right, okRight := g.Right()
	require.False(t, okLeft)
	require.True(t, okRight)
	require.Equal(t, 0, right)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		g      Geometry
		window int
		x, y   int
	}{
		{"left", Geometry{Width: 100, Anchor: Anchor{EdgeLeft, 10}, Top: 20}, 1000, 10, 20},
		{"right", Geometry{Width: 100, Anchor: Anchor{EdgeRight, 30}, Top: 20}, 1000, 870, 20},
		{"flush right", Geometry{Width: 100, Anchor: Anchor{EdgeRight, 0}, Top: 0}, 640, 540, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.g.Resolve(tt.window)
			require.Equal(t, tt.x, x)
			require.Equal(t, tt.y, y)
		})
	}
}

func TestResolveRightAnchoredIgnoresTop(t *testing.T) {
	g := Geometry{Width: 120, Anchor: Anchor{EdgeRight, 40}, Top: 0}
	x0, _ := g.Resolve(800)
	for top := -100; top <= 100; top += 25 {
		g.Top = top
		x, y := g.Resolve(800)
		require.Equal(t, x0, x)
		require.Equal(t, top, y)
	}

	g.Width = 200
	x, _ := g.Resolve(800)
	require.Equal(t, 560, x)
	x, _ = g.Resolve(900)
	require.Equal(t, 660, x)
}

func TestPatchNullsInactiveEdge(t *testing.T) {
	g := Geometry{Width: 90, Height: 70, Anchor: Anchor{EdgeRight, 12}, Top: 4}
	p := g.patch()
	require.Equal(t, map[string]any{
		"top": 4, "width": 90, "height": 70, "left": nil, "right": 12,
	}, p)

	g.Anchor = Anchor{EdgeLeft, 3}
	p = g.patch()
	require.Equal(t, 3, p["left"])
	require.Nil(t, p["right"])
}
