package main

import (
	"net/http"
	"os"
	osSignal "os/signal"
	"syscall"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestShutdownSignals(t *testing.T) {
	t.Cleanup(func() {
		signalNotify = osSignal.Notify
	})

	signalNotify = func(ch chan<- os.Signal, sig ...os.Signal) {
		go func() {
			ch <- syscall.SIGTERM
		}()
	}

	server := &http.Server{}
	called := make(chan struct{}, 1)
	server.RegisterOnShutdown(func() {
		called <- struct{}{}
	})

	core, logs := observer.New(zap.InfoLevel)
	shutdown(server, time.Millisecond, zap.New(core))

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatalf("expected server shutdown callback to execute")
	}

	entries := logs.FilterMessage("shutting down server").All()
	if len(entries) != 1 {
		t.Fatalf("expected one shutdown log entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["signal"]; got != syscall.SIGTERM.String() {
		t.Fatalf("expected signal field %q, got %v", syscall.SIGTERM.String(), got)
	}
}
