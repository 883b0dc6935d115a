package main

import (
	"context"

	"github.com/ibabbar/tensorlayer2/cmd"
	"github.com/spf13/cobra"
)

func main() {
	cobra.CheckErr(cmd.NewCLI().ExecuteContext(context.Background()))
}
