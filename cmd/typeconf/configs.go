package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/typeconf/encode"
	"github.com/signadot/typeconf/format"
	"github.com/signadot/typeconf/gomap"
	"github.com/signadot/typeconf/parse"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode with color'"`
	NoColor bool `cli:"name=nocolor desc='never encode with color'"`

	InFormat, OutFormat *format.Format

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

// parseOpts selects the front end for path: the -I format when given, the
// file extension otherwise, YAML for stdin.
func (cfg *MainConfig) parseOpts(path string) []parse.ParseOption {
	fmat := format.YAMLFormat
	if f, err := format.FromPath(path); err == nil {
		fmat = f
	}
	if cfg.InFormat != nil {
		fmat = *cfg.InFormat
	}
	res := []parse.ParseOption{parse.ParseFormat(fmat)}
	if path != "-" {
		res = append(res, parse.ParseFile(path))
	}
	return res
}

func (cfg *MainConfig) fromOpts(path string) []gomap.FromOption {
	fmat := format.YAMLFormat
	if f, err := format.FromPath(path); err == nil {
		fmat = f
	}
	if cfg.InFormat != nil {
		fmat = *cfg.InFormat
	}
	res := []gomap.FromOption{gomap.LoadFormat(fmat)}
	if path != "-" {
		res = append(res, gomap.LoadFile(path))
	}
	return res
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	fmat := format.YAMLFormat
	if cfg.OutFormat != nil {
		fmat = *cfg.OutFormat
	}
	res := []encode.EncodeOption{encode.EncodeFormat(fmat)}
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

func (cfg *MainConfig) useColor(w io.Writer) bool {
	switch {
	case cfg.NoColor:
		return false
	case cfg.Color:
		return true
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

type ViewConfig struct {
	*MainConfig

	Positions bool `cli:"name=p desc='annotate values with their source position'"`
	Plain     bool `cli:"name=plain desc='only show explicit tags'"`
	View      *cli.Command
}

type CheckConfig struct {
	*MainConfig

	Type string `cli:"name=t aliases=type desc='registered type name, or a scalar type such as int or list<string>'"`
	Dump bool   `cli:"name=d desc='dump the decoded value instead of printing it'"`

	Check *cli.Command
}

type TypesConfig struct {
	*MainConfig

	Types *cli.Command
}

type ResolveConfig struct {
	*MainConfig

	Player string `cli:"name=player desc='player name for player placeholders'"`
	Level  int    `cli:"name=level desc='player level for player placeholders'"`
	Env    map[string]string

	Resolve *cli.Command
}

func envOptTypeFunc(env map[string]string) func(cc *cli.Context, a string) (any, error) {
	return func(cc *cli.Context, a string) (any, error) {
		k, v, ok := strings.Cut(a, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: expected name=val, got %q", cli.ErrUsage, a)
		}
		env[k] = v
		return 0, nil
	}
}
