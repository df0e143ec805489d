package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/tpforum/internal/client/shell"
)

// Show renders the landing page.
func (a *App) Show(ctx context.Context) error {
	if err := a.shell.Render(a.out); err != nil {
		a.log.Error(ctx, "render failed", "error", err)
		return err
	}
	return nil
}

func (a *App) SetTab(ctx context.Context, name string) error {
	if err := a.shell.SetTab(name); err != nil {
		if errors.Is(err, shell.ErrUnknownTab) {
			names := make([]string, 0, len(shell.Tabs))
			for _, t := range shell.Tabs {
				names = append(names, t.Name+" ("+t.Alias+")")
			}
			printlnFn("Unknown tab. Available:", strings.Join(names, ", "))
		}
		return err
	}
	return a.Show(ctx)
}

func (a *App) Search(ctx context.Context, query string) error {
	a.shell.SetSearch(query)
	return a.Show(ctx)
}
