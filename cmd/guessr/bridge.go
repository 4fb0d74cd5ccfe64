package main

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/germanamz/guessr/pkg/engine"
)

// startBridge launches the event watcher goroutine. It only calls p.Send() and
// never touches model state directly. The returned cancel function stops the
// watcher and waits for it to exit, so no stale messages arrive after return.
func startBridge(ctx context.Context, p *tea.Program, events *engine.EventBus) context.CancelFunc {
	bridgeCtx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	sub := events.Subscribe(64, engine.EventGameStart, engine.EventGameEnd)

	wg.Go(func() {
		defer events.Unsubscribe(sub)
		for {
			select {
			case <-bridgeCtx.Done():
				return
			case ev, ok := <-sub.C:
				if !ok {
					return
				}
				p.Send(gameEventMsg{event: ev})
			}
		}
	})

	return func() {
		cancel()
		wg.Wait()
	}
}
