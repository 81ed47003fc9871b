package main

import (
	"errors"
	"fmt"

	// Packages
	controller "github.com/mutablelogic/go-txtai/pkg/controller"
	uitable "github.com/mutablelogic/go-txtai/pkg/ui/table"
)

// printTable prints the rows as a table followed by a count, or the count
// alone when there are no rows.
func printTable(data uitable.TableData, noun string) {
	if data.Len() > 0 {
		fmt.Println(uitable.Render(data))
	}
	fmt.Println(uitable.Summary(data.Len(), noun))
}

// withCause appends the underlying cause to a controller error, which
// otherwise carries only the fixed message.
func withCause(err error) error {
	var cerr *controller.Error
	if errors.As(err, &cerr) && cerr.Err != nil {
		return fmt.Errorf("%s: %w", cerr.Message, cerr.Err)
	}
	return err
}
