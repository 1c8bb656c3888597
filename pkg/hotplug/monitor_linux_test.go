//go:build linux

package hotplug

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMonitor_Matches(t *testing.T) {
	m := &Monitor{subsystems: map[string]bool{SubsystemTTY: true}}
	if !m.matches(Event{Subsystem: SubsystemTTY}) {
		t.Error("tty event filtered out")
	}
	if m.matches(Event{Subsystem: "usb"}) {
		t.Error("usb event passed a tty filter")
	}
	if !(&Monitor{subsystems: map[string]bool{}}).matches(Event{Subsystem: "usb"}) {
		t.Error("monitor without filters dropped an event")
	}
}

func TestMonitor_RunStopsOnCancel(t *testing.T) {
	m, err := NewMonitor(SubsystemTTY)
	if err != nil {
		t.Skipf("netlink unavailable: %v", err)
	}
	defer m.Close()

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan Event)
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx, events) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run = %v, want context.Canceled", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}

	if _, open := <-events; open {
		t.Error("events channel left open")
	}
}
