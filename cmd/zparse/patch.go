package main

import (
	"fmt"
	"os"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"

	"github.com/zparse/zparse/convert"
	"github.com/zparse/zparse/diag"
	"github.com/zparse/zparse/format"
)

func runPatch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch file argument", cli.ErrUsage)
	}
	patchSrc, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("i/o error: %w", err)
	}
	args = args[1:]
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		if err := patchArg(cfg, cc, arg, patchSrc); err != nil {
			return err
		}
	}
	return nil
}

// patchArg applies a JSON patch to a document of any format. The
// document is routed through JSON for the patch, then converted back
// to its own format.
func patchArg(cfg *PatchConfig, cc *cli.Context, arg string, patchSrc []byte) error {
	f, err := cfg.inFormat(arg)
	if err != nil {
		return err
	}
	doc, d, err := docJSON(cfg.MainConfig, cc, arg)
	if err != nil {
		if d != nil {
			diag.Fprint(os.Stderr, err, d)
			return cli.ExitCodeErr(1)
		}
		return err
	}
	var patched []byte
	if cfg.Merge {
		patched, err = jsonpatch.MergePatch([]byte(doc), patchSrc)
	} else {
		var p jsonpatch.Patch
		p, err = jsonpatch.DecodePatch(patchSrc)
		if err == nil {
			patched, err = p.Apply([]byte(doc))
		}
	}
	if err != nil {
		return fmt.Errorf("error patching %s: %w", arg, err)
	}
	to := f
	if cfg.To != nil {
		to = *cfg.To
	}
	out, err := convert.Bytes(patched, format.JSONFormat, to, &convert.Options{
		Encode: cfg.encOpts(cc.Out, to),
	})
	if err != nil {
		return fmt.Errorf("error re-encoding %s: %w", arg, err)
	}
	_, err = cc.Out.Write(out)
	return err
}
