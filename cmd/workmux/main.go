package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/frederikschubertflex/workmux/internal/cli"
	"github.com/frederikschubertflex/workmux/internal/werrors"
)

var (
	// Version information (set by -ldflags during build)
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date)
	if err := cli.Execute(); err != nil {
		var coded werrors.CodedError
		if errors.As(err, &coded) {
			fmt.Fprintln(os.Stderr, coded.Error())
			os.Exit(coded.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
