package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	terms []string
	fired chan struct{}
}

func newRecorder() *recorder {
	return &recorder{fired: make(chan struct{}, 16)}
}

func (r *recorder) fire(term string) {
	r.mu.Lock()
	r.terms = append(r.terms, term)
	r.mu.Unlock()
	r.fired <- struct{}{}
}

func (r *recorder) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.terms...)
}

func TestBurstFiresOnceWithLastTerm(t *testing.T) {
	rec := newRecorder()
	g := New(50*time.Millisecond, rec.fire)

	for _, term := range []string{"w", "wi", "wil", "will", "willo"} {
		g.Schedule(term)
	}
	assert.True(t, g.Pending())

	select {
	case <-rec.fired:
	case <-time.After(time.Second):
		t.Fatal("debounced call never fired")
	}

	// nothing else may arrive after the window
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, []string{"willo"}, rec.calls())
	assert.False(t, g.Pending())
}

func TestDoesNotFireBeforeQuietWindow(t *testing.T) {
	rec := newRecorder()
	g := New(200*time.Millisecond, rec.fire)

	g.Schedule("mint")
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, rec.calls())

	require.Eventually(t, func() bool { return len(rec.calls()) == 1 }, time.Second, 10*time.Millisecond)
}

func TestSeparateWindowsFireSeparately(t *testing.T) {
	rec := newRecorder()
	g := New(20*time.Millisecond, rec.fire)

	g.Schedule("sage")
	require.Eventually(t, func() bool { return len(rec.calls()) == 1 }, time.Second, 5*time.Millisecond)

	g.Schedule("mint")
	require.Eventually(t, func() bool { return len(rec.calls()) == 2 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"sage", "mint"}, rec.calls())
}

func TestRescheduleDuringWindowPostponesFire(t *testing.T) {
	rec := newRecorder()
	g := New(80*time.Millisecond, rec.fire)

	g.Schedule("wi")
	time.Sleep(40 * time.Millisecond)
	g.Schedule("wil")
	time.Sleep(50 * time.Millisecond)
	// 90ms after the first call, but only 50ms after the second
	assert.Empty(t, rec.calls())

	require.Eventually(t, func() bool { return len(rec.calls()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"wil"}, rec.calls())
}

func TestStopCancelsPending(t *testing.T) {
	rec := newRecorder()
	g := New(30*time.Millisecond, rec.fire)

	g.Schedule("ab")
	assert.True(t, g.Stop())
	assert.False(t, g.Stop())

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, rec.calls())
}

func TestDefaultInterval(t *testing.T) {
	g := New(0, func(string) {})
	assert.Equal(t, 300*time.Millisecond, g.Interval())
}
