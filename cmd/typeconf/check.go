package main

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/signadot/typeconf/debug"
	"github.com/signadot/typeconf/gomap"
	"github.com/signadot/typeconf/ir"
	"github.com/signadot/typeconf/parse"
)

var scalarTypes = map[string]*gomap.Desc{
	"bool":    gomap.Bool().Desc(),
	"int":     gomap.Int().Desc(),
	"int64":   gomap.Int64().Desc(),
	"float64": gomap.Float64().Desc(),
	"decimal": gomap.Decimal().Desc(),
	"string":  gomap.String().Desc(),
	"char":    gomap.Char().Desc(),
	"time":    gomap.Time().Desc(),
	"uuid":    gomap.UUID().Desc(),
	"node":    gomap.RawNode().Desc(),

	"list<int>":          gomap.ListOf(gomap.Int()).Desc(),
	"list<string>":       gomap.ListOf(gomap.String()).Desc(),
	"map<string,string>": gomap.MapOf(gomap.String(), gomap.String()).Desc(),
	"map<string,int>":    gomap.MapOf(gomap.String(), gomap.Int()).Desc(),
}

// parserFor finds the parser of a registered object type or a scalar type.
func parserFor(r *gomap.Registry, name string) (gomap.Parser, error) {
	if od, ok := r.Lookup(name); ok {
		return od.Parse, nil
	}
	if d, ok := scalarTypes[strings.ReplaceAll(name, " ", "")]; ok {
		return r.ParserFor(d)
	}
	return nil, fmt.Errorf("%w: unknown type %q, see 'typeconf types'", cli.ErrUsage, name)
}

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Type == "" {
		return fmt.Errorf("%w: -t is required", cli.ErrUsage)
	}
	r := newRegistry()
	p, err := parserFor(r, cfg.Type)
	if err != nil {
		return err
	}
	failed := 0
	for _, file := range inputs(args) {
		d, err := readInput(cc, file)
		if err != nil {
			return err
		}
		docs, err := parse.ParseAll(d, cfg.parseOpts(file)...)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		for i, doc := range docs {
			v, err := p(doc)
			if err != nil {
				failed++
				err = gomap.AddLocation(err, "in file "+file)
				fmt.Fprintf(cc.Out, "%s[%d]: %v\n", file, i, err)
				continue
			}
			printValue(cc.Out, file, i, v, cfg.Dump)
		}
	}
	if failed != 0 {
		debug.Logger().Sugar().Debugf("%d documents failed to decode as %s", failed, cfg.Type)
		return cli.ExitCodeErr(1)
	}
	return nil
}

func printValue(w io.Writer, file string, i int, v any, dump bool) {
	switch {
	case dump:
		fmt.Fprintf(w, "%s[%d]: %s", file, i, debug.Dump(v))
	case isNode(v):
		fmt.Fprintf(w, "%s[%d]: %s\n", file, i, v.(*ir.Node).Describe())
	default:
		fmt.Fprintf(w, "%s[%d]: %+v\n", file, i, v)
	}
}

func isNode(v any) bool {
	return reflect.TypeOf(v) == reflect.TypeFor[*ir.Node]()
}
