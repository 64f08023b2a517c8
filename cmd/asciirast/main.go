// asciirast - Terminal ASCII Rasterizer
// Draws flat-shaded triangle meshes as character frames in your terminal.
//
// Controls:
//
//	q / Esc / Ctrl+C - Quit
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd()); err != nil {
		os.Exit(1)
	}
}
