package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/zparse/zparse/convert"
	"github.com/zparse/zparse/diag"
	"github.com/zparse/zparse/encode"
	"github.com/zparse/zparse/format"
	"github.com/zparse/zparse/ir"
	"github.com/zparse/zparse/parse"
)

func runDiff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires exactly two arguments", cli.ErrUsage)
	}
	a, err := diffSide(cfg, cc, args[0])
	if err != nil {
		return err
	}
	b, err := diffSide(cfg, cc, args[1])
	if err != nil {
		return err
	}
	d := diag.Diff(a, b)
	if d == "" {
		return nil
	}
	if _, err := cc.Out.Write([]byte(d)); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}

// diffSide canonicalizes one document so two inputs compare by
// structure, not by original format or key order.
func diffSide(cfg *DiffConfig, cc *cli.Context, arg string) (string, error) {
	f, err := cfg.inFormat(arg)
	if err != nil {
		return "", err
	}
	d, err := readArg(cc, arg)
	if err != nil {
		return "", err
	}
	node, err := parse.Parse(d, cfg.parseOpts(f)...)
	if err != nil {
		diag.Fprint(os.Stderr, err, d)
		return "", cli.ExitCodeErr(1)
	}
	return canonicalJSON(node, f)
}

func canonicalJSON(node *ir.Node, from format.Format) (string, error) {
	n, err := convert.Value(node, from, format.JSONFormat)
	if err != nil {
		return "", err
	}
	return encode.String(n, encode.EncodeJSON(), encode.SortKeys(true))
}
