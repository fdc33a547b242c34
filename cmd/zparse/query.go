package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/expr-lang/expr"
	"github.com/scott-cotton/cli"

	"github.com/zparse/zparse/diag"
	"github.com/zparse/zparse/gomap"
)

func runQuery(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		cfg.Query.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: query requires one argument, an expression", cli.ErrUsage)
	}
	exprSrc := args[0]
	program, err := expr.Compile(exprSrc)
	if err != nil {
		return fmt.Errorf("bad expression %q: %w", exprSrc, err)
	}
	args = args[1:]
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		doc, d, err := docValue(cfg.MainConfig, cc, arg)
		if err != nil {
			if d != nil {
				diag.Fprint(os.Stderr, err, d)
				return cli.ExitCodeErr(1)
			}
			return err
		}
		res, err := expr.Run(program, map[string]any{"doc": gomap.ToGo(doc)})
		if err != nil {
			return fmt.Errorf("error evaluating %q on %s: %w", exprSrc, arg, err)
		}
		out, err := json.Marshal(res)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(cc.Out, string(out)); err != nil {
			return err
		}
	}
	return nil
}
