package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dpotapov/go-htmlparser"
	"github.com/dpotapov/go-htmlparser/query"
)

func newQueryCmd() *cobra.Command {
	var path, where, outputFormat string
	var pf parseFlags

	cmd := &cobra.Command{
		Use:   "query [file]",
		Short: "Print the elements matching a path and/or a predicate",
		Long: `Print the elements matching a path and/or a predicate.

The path uses etree syntax, e.g. "//ul/li[@class='active']". The predicate is an expression
over name, kind, attribs, text and depth, e.g. 'name == "a" && attribs.href startsWith "http"'.
When both are given, the predicate filters the elements selected by the path.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" && where == "" {
				return errors.New("one of --path or --where is required")
			}
			nodes, err := readNodes(cmd.Context(), cmd, args, pf.options())
			if err != nil {
				return err
			}

			var matched []*htmlparser.Element
			if path != "" {
				if matched, err = query.Select(nodes, path); err != nil {
					return err
				}
			}
			if where != "" {
				p, err := query.Compile(where)
				if err != nil {
					return err
				}
				if path == "" {
					matched, err = p.Filter(nodes)
				} else {
					matched, err = filterSelected(p, matched)
				}
				if err != nil {
					return err
				}
			}

			out := make([]htmlparser.Node, len(matched))
			for i, el := range matched {
				out[i] = el
			}
			if err := writeNodes(cmd.OutOrStdout(), out, outputFormat); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "etree path selecting elements")
	cmd.Flags().StringVar(&where, "where", "", "predicate expression filtering elements")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, html, dom, xml)")
	pf.register(cmd)

	return cmd
}

// filterSelected keeps the selected elements the predicate holds for. Selected elements
// are evaluated as roots, at depth 0.
func filterSelected(p *query.Predicate, els []*htmlparser.Element) ([]*htmlparser.Element, error) {
	var res []*htmlparser.Element
	for _, el := range els {
		ok, err := p.Match(el, 0)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, el)
		}
	}
	return res, nil
}
