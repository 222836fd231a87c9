package main

import (
	"context"
	"fmt"
	"os"

	"casha/finance-advisor/cmd/batch"
	"casha/finance-advisor/cmd/detect"
	"casha/finance-advisor/cmd/insights"
	"casha/finance-advisor/cmd/parse"
	"casha/finance-advisor/cmd/root"
	"casha/finance-advisor/cmd/serve"
	"casha/finance-advisor/cmd/summary"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(detect.Cmd)
	root.Cmd.AddCommand(summary.Cmd)
	root.Cmd.AddCommand(insights.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

func main() {
	if err := root.Cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
