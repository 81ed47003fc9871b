// Package ui defines the interface between the agent console and its
// front ends.
//
// A front end is an event source: the caller loops over [Console.Receive]
// and answers each [Event] through the [Context] it carries. The same
// command handling then works for any front end which implements these
// interfaces, for example the interactive terminal.
package ui

import (
	"context"
)

///////////////////////////////////////////////////////////////////////////////
// INTERFACES

// Console is the top-level interface that every front end must implement.
type Console interface {
	// Receive blocks until the next incoming event is available, the
	// context is cancelled, or the console is closed. It returns
	// io.EOF when the console is permanently closed.
	Receive(ctx context.Context) (Event, error)

	// Close releases resources held by the console, restoring the
	// terminal if needed.
	Close() error
}

// Context represents the session an event came from, and provides the
// methods to answer it.
type Context interface {
	// UserName returns a human-readable display name for the user.
	UserName() string

	// SendText sends plain text to the user.
	SendText(ctx context.Context, text string) error

	// SendMarkdown sends Markdown, which front ends should render
	// natively (tables, code blocks) where they can.
	SendMarkdown(ctx context.Context, markdown string) error

	// SendError sends an error message, styled so it stands out.
	SendError(ctx context.Context, err error) error

	// SetBusy shows or hides an indicator that a remote call is in
	// progress.
	SetBusy(ctx context.Context, busy bool) error

	// SetStatus replaces the status shown alongside the conversation:
	// the active tab, counts, the editor mode and the error banner.
	SetStatus(ctx context.Context, status Status) error
}
