package main

import (
	"fmt"
	"strings"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	types "github.com/mutablelogic/go-server/pkg/types"
	scrape "github.com/mutablelogic/go-txtai/pkg/scrape"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ScrapeCommands struct {
	Scrape ScrapeCommand `cmd:"" name:"scrape" help:"Fetch a web page and list the elements matching a CSS selector." group:"TOOLS"`
}

type ScrapeCommand struct {
	URL      string   `arg:"" name:"url" help:"Page URL (http or https)"`
	Selector []string `arg:"" name:"selector" help:"CSS selector"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ScrapeCommand) Run(ctx *Globals) (err error) {
	selector := strings.Join(cmd.Selector, " ")

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "ScrapeCommand",
		attribute.String("url", cmd.URL),
		attribute.String("selector", selector),
	)
	defer func() { endSpan(err) }()

	records, err := ctx.Scraper().Scrape(parent, cmd.URL, selector)
	if err != nil {
		return err
	}

	// Print
	if ctx.Debug {
		fmt.Println(types.Stringify(records))
	} else {
		printTable(scrape.RecordTable(records), "element")
	}
	return nil
}
