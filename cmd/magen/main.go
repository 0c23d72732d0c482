package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	opts := &rootOptions{}
	err := buildRootCmd(opts).Execute()
	if perr := opts.stopProfiling(); perr != nil {
		fmt.Fprintln(os.Stderr, "magen: profiling:", perr)
	}
	if err != nil {
		var exitErr *exitError
		if !errors.As(err, &exitErr) || exitErr.msg != "" || exitErr.err != nil {
			fmt.Fprintln(os.Stderr, "magen:", err)
		}
		os.Exit(exitCode(err))
	}
}
