package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/zparse/zparse/diag"
	"github.com/zparse/zparse/encode"
	"github.com/zparse/zparse/parse"
)

func runParse(cfg *ParseConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Parse.Parse(cc, args)
	if err != nil {
		cfg.Parse.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		if err := parseArg(cfg, cc, arg); err != nil {
			return err
		}
	}
	return nil
}

func parseArg(cfg *ParseConfig, cc *cli.Context, arg string) error {
	f, err := cfg.inFormat(arg)
	if err != nil {
		return err
	}
	d, err := readArg(cc, arg)
	if err != nil {
		return err
	}
	node, err := parse.Parse(d, cfg.parseOpts(f)...)
	if err != nil {
		diag.Fprint(os.Stderr, err, d)
		return cli.ExitCodeErr(1)
	}
	if !cfg.PrintOutput {
		return nil
	}
	if err := encode.Encode(node, cc.Out, cfg.encOpts(cc.Out, f)...); err != nil {
		return fmt.Errorf("error encoding %s: %w", arg, err)
	}
	return nil
}
