package main

import (
	"github.com/alecthomas/kong"

	"droscher.com/CookBook/cmd"
)

func main() {
	ctx := kong.Parse(&cmd.CLI, kong.Name("cookbook"), kong.Description("CookBook is a catalog of cooks, their dishes and ingredients."))
	err := ctx.Run(&cmd.Context{Debug: cmd.CLI.Debug})
	ctx.FatalIfErrorf(err)
}
