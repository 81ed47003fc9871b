package command

import (
	"context"
	"fmt"
	"strings"

	// Packages
	scrape "github.com/mutablelogic/go-txtai/pkg/scrape"
	ui "github.com/mutablelogic/go-txtai/pkg/ui"
	uitable "github.com/mutablelogic/go-txtai/pkg/ui/table"
)

///////////////////////////////////////////////////////////////////////////////
// TOOL COMMANDS

func (h *Handler) cmdScrape(ctx context.Context, evt ui.Event) error {
	if h.scraper == nil {
		return fmt.Errorf("scraping is not available")
	}
	if len(evt.Args) < 2 {
		return fmt.Errorf("usage: /scrape <url> <selector>")
	}
	url, selector := evt.Args[0], strings.Join(evt.Args[1:], " ")

	var records []scrape.Record
	if err := h.busy(ctx, evt.Context, func() (err error) {
		records, err = h.scraper.Scrape(ctx, url, selector)
		return err
	}); err != nil {
		return err
	}
	if len(records) == 0 {
		return evt.Context.SendText(ctx, fmt.Sprintf("No elements match %q", selector))
	}
	return evt.Context.SendMarkdown(ctx, uitable.RenderMarkdown(scrape.RecordTable(records))+"\n\n"+uitable.Summary(len(records), "element"))
}
