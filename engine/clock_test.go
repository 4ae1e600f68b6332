package engine

import (
	"sync"
	"testing"
	"time"
)

func TestManualClockOrder(t *testing.T) {
	c := NewManualClock(epoch)
	var got []string
	c.AfterFunc(30*time.Millisecond, func() { got = append(got, "c") })
	c.AfterFunc(10*time.Millisecond, func() { got = append(got, "a") })
	c.AfterFunc(10*time.Millisecond, func() { got = append(got, "b") })

	c.Advance(20 * time.Millisecond)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("fired = %v, want [a b]", got)
	}
	if !c.Now().Equal(epoch.Add(20 * time.Millisecond)) {
		t.Errorf("Now = %v, want epoch+20ms", c.Now())
	}

	c.Advance(10 * time.Millisecond)
	if len(got) != 3 || got[2] != "c" {
		t.Errorf("fired = %v, want [a b c]", got)
	}
}

func TestManualClockStop(t *testing.T) {
	c := NewManualClock(epoch)
	fired := false
	tm := c.AfterFunc(time.Millisecond, func() { fired = true })

	if !tm.Stop() {
		t.Error("Stop on pending timer = false")
	}
	if tm.Stop() {
		t.Error("second Stop = true")
	}
	c.Advance(time.Second)
	if fired || c.Pending() != 0 {
		t.Errorf("fired = %v pending = %d after Stop", fired, c.Pending())
	}
}

func TestManualClockNowInsideCallback(t *testing.T) {
	c := NewManualClock(epoch)
	var at time.Time
	c.AfterFunc(15*time.Millisecond, func() { at = c.Now() })
	c.Advance(time.Second)
	if !at.Equal(epoch.Add(15 * time.Millisecond)) {
		t.Errorf("Now in callback = %v, want deadline", at)
	}
}

func TestManualClockChainedTimers(t *testing.T) {
	c := NewManualClock(epoch)
	count := 0
	var again func()
	again = func() {
		count++
		if count < 3 {
			c.AfterFunc(10*time.Millisecond, again)
		}
	}
	c.AfterFunc(10*time.Millisecond, again)

	c.Advance(25 * time.Millisecond)
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestWallClockAfterFunc(t *testing.T) {
	c := NewWallClock()
	done := make(chan struct{})
	c.AfterFunc(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WallClock timer did not fire")
	}
}

func TestCommandQueueFIFO(t *testing.T) {
	q := NewCommandQueue()
	if q.Consume() != nil {
		t.Error("empty queue returned commands")
	}

	q.Push(Command{Kind: CmdHitStop, Duration: time.Millisecond})
	q.Push(Command{Kind: CmdReset})
	if q.Len() != 2 {
		t.Errorf("Len = %d, want 2", q.Len())
	}

	got := q.Consume()
	if len(got) != 2 || got[0].Kind != CmdHitStop || got[1].Kind != CmdReset {
		t.Errorf("Consume = %v", got)
	}
	if q.Len() != 0 {
		t.Errorf("Len after Consume = %d", q.Len())
	}
}

func TestCommandQueueOverflow(t *testing.T) {
	q := NewCommandQueue()
	for i := 0; i < commandQueueSize+10; i++ {
		q.Push(Command{Kind: CmdLand, Duration: time.Duration(i)})
	}
	got := q.Consume()
	if len(got) != commandQueueSize {
		t.Fatalf("len = %d, want %d", len(got), commandQueueSize)
	}
	if got[0].Duration != 10 {
		t.Errorf("oldest kept = %d, want 10", got[0].Duration)
	}
}

func TestCommandQueueConcurrentProducers(t *testing.T) {
	q := NewCommandQueue()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 8; j++ {
				q.Push(Command{Kind: CmdStartup})
			}
		}()
	}
	wg.Wait()

	if got := q.Consume(); len(got) != 32 {
		t.Errorf("consumed %d, want 32", len(got))
	}
}

func TestCommandKindString(t *testing.T) {
	if CmdHitStop.String() != "hit-stop" || CommandKind(200).String() != "unknown" {
		t.Error("CommandKind names wrong")
	}
}
