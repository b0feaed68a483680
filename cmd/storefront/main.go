// Command storefront browses the shop, manages the cart and places orders
// against the storefront REST API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/niksmo/storefront/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	sigCtx, stop := sigctx.NotifyContext()
	defer stop()

	c := new(cli)
	root := newRootCmd(c)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(sigCtx)

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	c.close(ctx)

	if err == nil {
		return 0
	}

	var f failure
	if errors.As(err, &f) {
		fmt.Fprintln(stderr, failureStyle.Render(f.notice))
	} else {
		fmt.Fprintln(stderr, failureStyle.Render(err.Error()))
	}
	return 1
}
