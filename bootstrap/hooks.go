package bootstrap

import (
	"context"
	"fmt"
)

// Hook is a lifecycle callback run by the app around injector start and stop.
type Hook func(ctx context.Context) error

type phase string

const (
	phaseStart phase = "onStart"
	phaseReady phase = "onReady"
	phaseStop  phase = "onStop"
)

// OnStart adds hooks run once every registered injector has started and its
// eager keys are resolved.
func (a *App) OnStart(hooks ...Hook) { a.hooks[phaseStart] = append(a.hooks[phaseStart], hooks...) }

// OnReady adds hooks run after the ready check.
func (a *App) OnReady(hooks ...Hook) { a.hooks[phaseReady] = append(a.hooks[phaseReady], hooks...) }

// OnStop adds hooks run before any injector is disposed.
func (a *App) OnStop(hooks ...Hook) { a.hooks[phaseStop] = append(a.hooks[phaseStop], hooks...) }

// runHooks runs the hooks of p in registration order and stops at the
// first failure.
func (a *App) runHooks(ctx context.Context, p phase) error {
	for i, h := range a.hooks[p] {
		if err := h(ctx); err != nil {
			return fmt.Errorf("%s hook failed: hook %d: %w", p, i, err)
		}
	}
	return nil
}
