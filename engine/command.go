package engine

import (
	"sync/atomic"
	"time"
)

// CommandKind names a combat hook requested from outside the frame loop
type CommandKind uint8

const (
	CmdNone CommandKind = iota
	CmdHitStop
	CmdStartup
	CmdEnterCancel
	CmdExitCancel
	CmdExitActive
	CmdThrowConnect
	CmdThrowRelease
	CmdLand
	CmdReset
)

var commandNames = [...]string{
	CmdNone:         "none",
	CmdHitStop:      "hit-stop",
	CmdStartup:      "startup",
	CmdEnterCancel:  "enter-cancel",
	CmdExitCancel:   "exit-cancel",
	CmdExitActive:   "exit-active",
	CmdThrowConnect: "throw-connect",
	CmdThrowRelease: "throw-release",
	CmdLand:         "land",
	CmdReset:        "reset",
}

func (k CommandKind) String() string {
	if int(k) < len(commandNames) {
		return commandNames[k]
	}
	return "unknown"
}

// Command is one queued hook
// Duration is the hit-stop length for CmdHitStop; zero uses the current attack's table value
type Command struct {
	Kind     CommandKind
	Duration time.Duration
}

const (
	commandQueueSize = 64
	commandQueueMask = commandQueueSize - 1
)

// CommandQueue is a lock-free MPSC ring of commands
// Thread-Safety:
//   - Push: lock-free CAS, multiple producers OK
//   - Consume: single consumer (frame loop)
//   - Published flags prevent reading partial writes
//
// Overflow: oldest commands are overwritten when full
type CommandQueue struct {
	cmds      [commandQueueSize]Command
	published [commandQueueSize]atomic.Bool
	head      atomic.Uint64 // Read index
	tail      atomic.Uint64 // Write index
}

func NewCommandQueue() *CommandQueue {
	return &CommandQueue{}
}

// Push appends cmd, safe for concurrent producers
func (q *CommandQueue) Push(cmd Command) {
	for {
		tail := q.tail.Load()
		next := tail + 1
		if q.tail.CompareAndSwap(tail, next) {
			idx := tail & commandQueueMask
			q.cmds[idx] = cmd
			q.published[idx].Store(true) // After the write

			head := q.head.Load()
			if next-head > commandQueueSize {
				q.head.CompareAndSwap(head, next-commandQueueSize)
			}
			return
		}
	}
}

// Consume returns every published command in FIFO order
func (q *CommandQueue) Consume() []Command {
	for {
		head := q.head.Load()
		tail := q.tail.Load()
		if tail == head {
			return nil
		}

		avail := tail - head
		if avail > commandQueueSize {
			avail = commandQueueSize
			head = tail - commandQueueSize
		}

		out := make([]Command, 0, avail)
		for i := uint64(0); i < avail; i++ {
			idx := (head + i) & commandQueueMask
			if !q.published[idx].Load() {
				break // Writer incomplete
			}
			out = append(out, q.cmds[idx])
			q.published[idx].Store(false)
		}

		if q.head.CompareAndSwap(head, head+uint64(len(out))) {
			if len(out) == 0 {
				return nil
			}
			return out
		}
	}
}

// Len returns the approximate pending count
func (q *CommandQueue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	if d := int(tail - head); d < commandQueueSize {
		return d
	}
	return commandQueueSize
}
