package main

import (
	"os"

	// Packages
	client "github.com/mutablelogic/go-client"
	controller "github.com/mutablelogic/go-txtai/pkg/controller"
	httpclient "github.com/mutablelogic/go-txtai/pkg/httpclient"
	scrape "github.com/mutablelogic/go-txtai/pkg/scrape"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Client returns an httpclient.Client configured from the global HTTP flags.
func (g *Globals) Client() (*httpclient.Client, error) {
	return httpclient.New(g.HTTP.Endpoint, g.clientOpts()...)
}

// Controller returns a controller for the service at the configured
// endpoint.
func (g *Globals) Controller() (*controller.Controller, error) {
	client, err := g.Client()
	if err != nil {
		return nil, err
	}
	opts := []controller.Opt{
		controller.WithLogger(g.logger),
	}
	if g.tracer != nil {
		opts = append(opts, controller.WithTracer(g.tracer))
	}
	return controller.New(client, opts...)
}

// Scraper returns a scraper which shares the client options.
func (g *Globals) Scraper() *scrape.Scraper {
	return scrape.New(g.clientOpts()...)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// clientOpts returns the client options for the global flags.
func (g *Globals) clientOpts() []client.ClientOpt {
	opts := []client.ClientOpt{client.OptTimeout(g.HTTP.Timeout)}
	if g.Debug || g.Verbose {
		opts = append(opts, client.OptTrace(os.Stderr, g.Verbose))
	}
	if g.tracer != nil {
		opts = append(opts, client.OptTracer(g.tracer))
	}
	return opts
}
