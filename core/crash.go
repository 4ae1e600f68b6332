// Package core holds process-wide crash handling for background goroutines
package core

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"sync/atomic"
)

// Finalizer restores the terminal before the process dies
// tcell.Screen satisfies it
type Finalizer interface {
	Fini()
}

var crashScreen atomic.Pointer[Finalizer]

// SetCrashScreen registers the screen HandleCrash must restore, nil clears it
func SetCrashScreen(s Finalizer) {
	if s == nil {
		crashScreen.Store(nil)
		return
	}
	crashScreen.Store(&s)
}

// exit is replaced in tests
var exit = os.Exit

// HandleCrash restores the terminal, prints the panic with its stack trace and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if s := crashScreen.Load(); s != nil {
		(*s).Fini()
	}

	stack := debug.Stack()
	log.Printf("crash: %v\n%s", r, stack)
	fmt.Fprintf(os.Stderr, "\n\x1b[31mCRASH DETECTED: %v\x1b[0m\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", stack)

	exit(1)
}

// Go runs fn on a new goroutine with panic recovery
// Use it instead of the go keyword so a crash never leaves the terminal raw
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
