// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"trigger/cli/internal/backend"
)

// With opens a session, runs fn and closes the session on every return path,
// including a panic in fn.
func With(ctx context.Context, src CredentialSource, api backend.API, fn func(*Manager) error, opts ...Option) error {
	m, err := New(ctx, src, api, opts...)
	if err != nil {
		return err
	}
	defer m.Close()
	return fn(m)
}

// CloseOnSignal closes m when the process receives SIGINT or SIGTERM, then calls
// exit with 128+signal. The returned func stops watching; call it once the
// session has been closed normally.
func CloseOnSignal(m *Manager, exit func(code int)) (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	stopWatch := closeOn(m, ch, exit)
	return func() {
		signal.Stop(ch)
		stopWatch()
	}
}

func closeOn(m *Manager, ch <-chan os.Signal, exit func(code int)) func() {
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		select {
		case sig := <-ch:
			m.Close()
			if exit != nil {
				exit(exitCode(sig))
			}
		case <-done:
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			<-finished
		})
	}
}

func exitCode(sig os.Signal) int {
	if s, ok := sig.(syscall.Signal); ok {
		return 128 + int(s)
	}
	return 1
}
