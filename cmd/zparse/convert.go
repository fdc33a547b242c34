package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/zparse/zparse/convert"
	"github.com/zparse/zparse/diag"
	"github.com/zparse/zparse/format"
)

func runConvert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		cfg.Convert.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.To == nil {
		return fmt.Errorf("%w: convert requires -to", cli.ErrUsage)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		if err := convertArg(cfg, cc, arg, *cfg.To); err != nil {
			return err
		}
	}
	return nil
}

func convertArg(cfg *ConvertConfig, cc *cli.Context, arg string, to format.Format) error {
	from, err := cfg.inFormat(arg)
	if err != nil {
		return err
	}
	d, err := readArg(cc, arg)
	if err != nil {
		return err
	}
	out, err := convert.Bytes(d, from, to, &convert.Options{
		Parse:  cfg.parseOpts(from),
		Encode: cfg.encOpts(cc.Out, to),
	})
	if err != nil {
		diag.Fprint(os.Stderr, err, d)
		return cli.ExitCodeErr(1)
	}
	_, err = cc.Out.Write(out)
	return err
}
