package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/zparse/zparse/diag"
	"github.com/zparse/zparse/encode"
	"github.com/zparse/zparse/parse"
)

func runFmt(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		cfg.Fmt.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
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
		if err := encode.Encode(node, cc.Out, cfg.encOpts(cc.Out, f)...); err != nil {
			return fmt.Errorf("error encoding %s: %w", arg, err)
		}
	}
	return nil
}
