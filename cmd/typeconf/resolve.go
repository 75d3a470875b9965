package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/scott-cotton/cli"

	"github.com/signadot/typeconf/encode"
	"github.com/signadot/typeconf/gomap"
	"github.com/signadot/typeconf/ir"
	"github.com/signadot/typeconf/parse"
	"github.com/signadot/typeconf/placeholder"
)

type player struct {
	name  string
	level int
}

func (p player) Name() string { return p.name }
func (p player) Level() int { return p.level }

func resolve(cfg *ResolveConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Resolve.Parse(cc, args)
	if err != nil {
		return err
	}
	r := newRegistry()
	msg, err := r.ParserFor(gomap.LazyOf(gomap.String()).Desc())
	if err != nil {
		return err
	}
	ctx := &placeholder.Context{Providers: placeholder.Defaults()}
	if cfg.Player != "" {
		ctx.Subject = player{name: cfg.Player, level: cfg.Level}
	}
	files := inputs(args)
	for i, file := range files {
		d, err := readInput(cc, file)
		if err != nil {
			return err
		}
		docs, err := parse.ParseAll(d, cfg.parseOpts(file)...)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		for j, doc := range docs {
			if err := resolveStrings(doc, msg, ctx, cfg.Env); err != nil {
				return fmt.Errorf("error resolving %s: %w", file, err)
			}
			if i+j > 0 {
				io.WriteString(cc.Out, "---\n")
			}
			if err := encode.Encode(doc, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveStrings replaces every string scalar of n with its resolved text.
// Mapping keys are left alone.
func resolveStrings(n *ir.Node, msg gomap.Parser, ctx *placeholder.Context, env map[string]string) error {
	var err error
	n.Visit(func(x *ir.Node) bool {
		if err != nil || x.IsKey() {
			return false
		}
		if x.Kind != ir.ScalarKind || x.Tag != ir.TagStr {
			return true
		}
		var v any
		if v, err = msg(x); err != nil {
			return false
		}
		var text string
		if text, err = v.(placeholder.Value[string]).TryResolve(ctx, env); err != nil {
			err = fmt.Errorf("%s: %w", strconv.Quote(x.Value), err)
			return false
		}
		x.Value = text
		return true
	})
	return err
}
