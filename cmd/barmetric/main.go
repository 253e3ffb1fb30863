// Command barmetric learns ingredient substitution costs from a cocktail
// recipe corpus and stores them as versioned analytics artifacts.
//
//	barmetric seed  --hierarchy ingredients.json --recipes recipes.yaml
//	barmetric learn --rounds 5
//	barmetric embed --analytics ingredient --dims 2
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "barmetric:", err)
		stop()
		os.Exit(1)
	}
}
