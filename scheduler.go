package main

import (
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"desklet/internal/widget"
)

type timerMsg struct {
	id uint64
}

type frameMsg time.Time

// loop schedules widget callbacks onto the bubbletea event loop. Timers fire
// through timerMsg and frames through a steady tea.Tick, so every callback
// runs inside Update.
type loop struct {
	send      func(tea.Msg)
	now       func() time.Time
	frameRate int
	nextID    uint64
	timers    map[uint64]func()
	frames    map[uint64]func(time.Time)
}

func newLoop(frameRate int) *loop {
	if frameRate <= 0 {
		frameRate = defaultFrameRate
	}
	return &loop{
		send:      func(tea.Msg) {},
		now:       time.Now,
		frameRate: frameRate,
		timers:    make(map[uint64]func()),
		frames:    make(map[uint64]func(time.Time)),
	}
}

func (l *loop) id() uint64 {
	l.nextID++
	return l.nextID
}

func (l *loop) Now() time.Time { return l.now() }

func (l *loop) After(d time.Duration, fn func()) widget.Cancel {
	id := l.id()
	l.timers[id] = fn
	send := l.send
	t := time.AfterFunc(d, func() { send(timerMsg{id: id}) })
	return func() {
		t.Stop()
		delete(l.timers, id)
	}
}

func (l *loop) RequestFrame(fn func(time.Time)) widget.Cancel {
	id := l.id()
	l.frames[id] = fn
	return func() { delete(l.frames, id) }
}

// fire runs the timer id unless it was cancelled after its message was sent.
func (l *loop) fire(id uint64) {
	fn, ok := l.timers[id]
	if !ok {
		return
	}
	delete(l.timers, id)
	fn()
}

// runFrames runs the frame callbacks requested before now. Callbacks
// requested while running wait for the next frame.
func (l *loop) runFrames(now time.Time) {
	ids := make([]uint64, 0, len(l.frames))
	for id := range l.frames {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		fn, ok := l.frames[id]
		if !ok {
			continue
		}
		delete(l.frames, id)
		fn(now)
	}
}

func (l *loop) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(l.frameRate), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (l *loop) pending() (timers, frames int) {
	return len(l.timers), len(l.frames)
}
