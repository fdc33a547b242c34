package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/tidwall/gjson"

	"github.com/zparse/zparse/convert"
	"github.com/zparse/zparse/diag"
	"github.com/zparse/zparse/encode"
	"github.com/zparse/zparse/format"
	"github.com/zparse/zparse/ir"
	"github.com/zparse/zparse/parse"
)

func runGet(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a dotted path", cli.ErrUsage)
	}
	path := args[0]
	args = args[1:]
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		if err := getArg(cfg, cc, arg, path); err != nil {
			return err
		}
	}
	return nil
}

func getArg(cfg *GetConfig, cc *cli.Context, arg, path string) error {
	doc, d, err := docJSON(cfg.MainConfig, cc, arg)
	if err != nil {
		if d != nil {
			diag.Fprint(os.Stderr, err, d)
			return cli.ExitCodeErr(1)
		}
		return err
	}
	res := gjson.Get(doc, path)
	if !res.Exists() {
		// absent paths produce no output, matching an empty query result
		return nil
	}
	_, err = fmt.Fprintln(cc.Out, res.Raw)
	return err
}

// docValue reads arg and reshapes it to the map data model, whatever
// its source format. On a parse failure it returns the raw input too
// so callers can excerpt it.
func docValue(cfg *MainConfig, cc *cli.Context, arg string) (*ir.Node, []byte, error) {
	f, err := cfg.inFormat(arg)
	if err != nil {
		return nil, nil, err
	}
	d, err := readArg(cc, arg)
	if err != nil {
		return nil, nil, err
	}
	node, err := parse.Parse(d, cfg.parseOpts(f)...)
	if err != nil {
		return nil, d, err
	}
	val, err := convert.Value(node, f, format.JSONFormat)
	if err != nil {
		return nil, d, err
	}
	return val, d, nil
}

// docJSON renders arg as compact JSON.
func docJSON(cfg *MainConfig, cc *cli.Context, arg string) (string, []byte, error) {
	val, d, err := docValue(cfg, cc, arg)
	if err != nil {
		return "", d, err
	}
	out, err := encode.String(val, encode.EncodeJSON(), encode.EncodeWire(true))
	if err != nil {
		return "", d, err
	}
	return out, d, nil
}
