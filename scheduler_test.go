package main

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestLoopTimerDeliveredAsMessage(t *testing.T) {
	l := newLoop(30)
	msgs := make(chan tea.Msg, 1)
	l.send = func(msg tea.Msg) { msgs <- msg }

	ran := false
	l.After(time.Millisecond, func() { ran = true })

	var msg tea.Msg
	select {
	case msg = <-msgs:
	case <-time.After(5 * time.Second):
		t.Fatal("timer message not sent")
	}
	require.False(t, ran)

	tm, ok := msg.(timerMsg)
	require.True(t, ok)
	l.fire(tm.id)
	require.True(t, ran)

	// A second delivery of the same id is ignored.
	ran = false
	l.fire(tm.id)
	require.False(t, ran)
}

func TestLoopCancelledTimerNeverRuns(t *testing.T) {
	l := newLoop(30)
	ran := false
	cancel := l.After(time.Hour, func() { ran = true })
	id := l.nextID

	cancel()
	cancel()
	l.fire(id)
	require.False(t, ran)

	timers, _ := l.pending()
	require.Zero(t, timers)
}

func TestLoopFrames(t *testing.T) {
	l := newLoop(30)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var order []string
	var cancelB func()
	l.RequestFrame(func(at time.Time) {
		require.Equal(t, now, at)
		order = append(order, "a")
		cancelB()
		l.RequestFrame(func(time.Time) { order = append(order, "next") })
	})
	cancelB = l.RequestFrame(func(time.Time) { order = append(order, "b") })

	l.runFrames(now)
	require.Equal(t, []string{"a"}, order)

	_, frames := l.pending()
	require.Equal(t, 1, frames)

	l.runFrames(now)
	require.Equal(t, []string{"a", "next"}, order)
}

func TestLoopTickProducesFrameMsg(t *testing.T) {
	l := newLoop(1000)
	msg := l.tick()()
	_, ok := msg.(frameMsg)
	require.True(t, ok)
}
