package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/scott-cotton/cli"
)

func types(cfg *TypesConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Types.Parse(cc, args); err != nil {
		return err
	}
	r := newRegistry()
	tw := tabwriter.NewWriter(cc.Out, 0, 4, 2, ' ', 0)
	for _, od := range r.Descriptors() {
		kind := "object"
		switch {
		case od.IsRaw():
			kind = "raw"
		case od.Inlineable():
			kind = "inline"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", od.Name(), kind, od.Origin(), od.Type())
		for _, p := range od.Properties() {
			req := "optional"
			if p.Required() {
				req = "required"
			} else if d := p.Default(); d != nil {
				req = fmt.Sprintf("default %v", d)
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t\n", p.Name(), p.Type(), req)
		}
	}
	return tw.Flush()
}
