package core

import (
	"testing"
	"time"
)

func TestGoRoutesPanicToHandler(t *testing.T) {
	got := make(chan any, 1)
	SetCrashHandler(func(r any) { got <- r })
	defer SetCrashHandler(nil)

	Go(func() { panic("boom") })

	select {
	case r := <-got:
		if r != "boom" {
			t.Errorf("handler received %v, want boom", r)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("crash handler was not called")
	}
}

func TestGoRunsWithoutPanic(t *testing.T) {
	done := make(chan struct{})
	SetCrashHandler(func(r any) { t.Errorf("unexpected crash: %v", r) })
	defer SetCrashHandler(nil)

	Go(func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("goroutine did not run")
	}
}

func TestHandleCrashNil(t *testing.T) {
	called := false
	SetCrashHandler(func(any) { called = true })
	defer SetCrashHandler(nil)

	HandleCrash(nil)
	if called {
		t.Error("Expected nil panic value to be ignored")
	}
}
