package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"

	"github.com/zparse/zparse/encode"
	"github.com/zparse/zparse/format"
	"github.com/zparse/zparse/limits"
	"github.com/zparse/zparse/parse"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode with color'"`
	WireOut bool `cli:"name=wire desc='output in compact format'"`
	Sort    bool `cli:"name=sort desc='sort object keys while encoding'"`
	Indent  int  `cli:"name=indent desc='spaces per nesting level'"`

	JSONComments bool `cli:"name=json-comments desc='accept // and /* */ comments in JSON input'"`
	JSONTrailing bool `cli:"name=json-trailing-commas desc='accept trailing commas in JSON input'"`

	MaxDepth int `cli:"name=max-depth desc='max nesting depth'"`
	MaxSize  int `cli:"name=max-size desc='max input size in bytes'"`

	From, To *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) limitsConfig() *limits.Config {
	if cfg.MaxDepth == 0 && cfg.MaxSize == 0 {
		return nil
	}
	return &limits.Config{MaxDepth: cfg.MaxDepth, MaxSize: cfg.MaxSize}
}

// inFormat resolves the input format for arg. A file path infers its
// format from the extension when -from is absent; stdin has no
// extension so -from is required.
func (cfg *MainConfig) inFormat(arg string) (format.Format, error) {
	if cfg.From != nil {
		return *cfg.From, nil
	}
	if arg == "-" {
		return 0, fmt.Errorf("%w: reading stdin requires -from", cli.ErrUsage)
	}
	return format.InferPath(arg)
}

func (cfg *MainConfig) parseOpts(f format.Format) []parse.ParseOption {
	res := []parse.ParseOption{
		parse.ParseFormat(f),
		parse.JSONComments(cfg.JSONComments),
		parse.JSONTrailingCommas(cfg.JSONTrailing),
	}
	if lc := cfg.limitsConfig(); lc != nil {
		res = append(res, parse.ParseLimits(lc))
	}
	return res
}

func (cfg *MainConfig) encOpts(w io.Writer, f format.Format) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(f),
		encode.EncodeWire(cfg.WireOut),
		encode.SortKeys(cfg.Sort),
	}
	if cfg.Indent != 0 {
		res = append(res, encode.Indent(cfg.Indent))
	}
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
	}
	if of, ok := w.(*os.File); ok && isatty.IsTerminal(of.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// readArg reads a file path or stdin for "-".
func readArg(cc *cli.Context, arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(cc.In)
	}
	d, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("i/o error: %w", err)
	}
	return d, nil
}

type ParseConfig struct {
	*MainConfig

	PrintOutput bool `cli:"name=print-output desc='print the parsed document after a successful parse'"`
	Parse       *cli.Command
}

type ConvertConfig struct {
	*MainConfig

	Convert *cli.Command
}

type FmtConfig struct {
	*MainConfig

	Fmt *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type QueryConfig struct {
	*MainConfig

	Query *cli.Command
}

type PatchConfig struct {
	*MainConfig

	Merge bool `cli:"name=merge desc='apply the patch as an RFC 7386 merge patch'"`
	Patch *cli.Command
}
