package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/typeconf/encode"
	"github.com/signadot/typeconf/parse"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	files := inputs(args)
	for i, file := range files {
		if err := viewFile(cfg, cc, file); err != nil {
			return err
		}
		if i < len(files)-1 {
			io.WriteString(cc.Out, "---\n")
		}
	}
	return nil
}

func viewFile(cfg *ViewConfig, cc *cli.Context, file string) error {
	d, err := readInput(cc, file)
	if err != nil {
		return err
	}
	docs, err := parse.ParseAll(d, cfg.parseOpts(file)...)
	if err != nil {
		return fmt.Errorf("error processing %s: %w", file, err)
	}
	opts := append(cfg.encOpts(cc.Out),
		encode.EncodeTags(!cfg.Plain),
		encode.EncodePositions(cfg.Positions))
	for i, doc := range docs {
		if i > 0 {
			io.WriteString(cc.Out, "---\n")
		}
		if err := encode.Encode(doc, cc.Out, opts...); err != nil {
			return fmt.Errorf("error encoding document %d of %s: %w", i, file, err)
		}
	}
	return nil
}
