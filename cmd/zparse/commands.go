package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "from",
			Aliases:     []string{"I"},
			Description: "input format: json/j, toml/t, yaml/y, xml/x",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.From), "(format)"),
		}, &cli.Opt{
			Name:        "to",
			Aliases:     []string{"O"},
			Description: "output format: json/j, toml/t, yaml/y, xml/x",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.To), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "zparse").
		WithSynopsis("zparse [opts] command [opts]").
		WithDescription("zparse parses and converts json, toml, yaml, and xml documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return zparseMain(cfg, cc, args)
		}).
		WithSubs(
			ParseCommand(cfg),
			ConvertCommand(cfg),
			FmtCommand(cfg),
			DiffCommand(cfg),
			GetCommand(cfg),
			QueryCommand(cfg),
			PatchCommand(cfg))
}

func ParseCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ParseConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("parse").
		WithAliases("p").
		WithSynopsis("parse [-print-output] [files]").
		WithDescription("parse documents and report errors with source excerpts").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runParse(cfg, cc, args)
		})
	cfg.Parse = cmd
	return cmd
}

func ConvertCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ConvertConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("convert").
		WithAliases("c", "co").
		WithSynopsis("convert -to <format> [files]").
		WithDescription("convert documents between formats").
		WithRun(func(cc *cli.Context, args []string) error {
			return runConvert(cfg, cc, args)
		})
	cfg.Convert = cmd
	return cmd
}

func FmtCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FmtConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("fmt").
		WithAliases("f").
		WithSynopsis("fmt [files]").
		WithDescription("re-serialize documents in their own format").
		WithRun(func(cc *cli.Context, args []string) error {
			return runFmt(cfg, cc, args)
		})
	cfg.Fmt = cmd
	return cmd
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("diff").
		WithAliases("d", "di").
		WithSynopsis("diff a b").
		WithDescription("diff two documents structurally, across formats").
		WithRun(func(cc *cli.Context, args []string) error {
			return runDiff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("get").
		WithAliases("g").
		WithSynopsis("get <path> [files]").
		WithDescription("get a value by dotted path, such as a.b.2").
		WithRun(func(cc *cli.Context, args []string) error {
			return runGet(cfg, cc, args)
		})
	cfg.Get = cmd
	return cmd
}

func QueryCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &QueryConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("query").
		WithAliases("q").
		WithSynopsis("query <expr> [files]").
		WithDescription("evaluate an expression against each document, bound as 'doc'").
		WithRun(func(cc *cli.Context, args []string) error {
			return runQuery(cfg, cc, args)
		})
	cfg.Query = cmd
	return cmd
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("patch").
		WithAliases("pa").
		WithSynopsis("patch [-merge] <patchfile> [files]").
		WithDescription("apply a JSON patch to documents of any format").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runPatch(cfg, cc, args)
		})
	cfg.Patch = cmd
	return cmd
}
