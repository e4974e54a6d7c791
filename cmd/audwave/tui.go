// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

// runTUI shows model until the user quits or ctx ends. attach receives the
// program's Send so device goroutines can feed it.
func runTUI(ctx context.Context, model tea.Model, attach func(send func(tea.Msg))) error {
	p := tea.NewProgram(model, tea.WithAltScreen())
	attach(p.Send)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		p.Quit()
		return nil
	})

	return g.Wait()
}
