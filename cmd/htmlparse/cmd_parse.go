package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"github.com/dpotapov/go-htmlparser"
	"github.com/dpotapov/go-htmlparser/query"
)

// parseFlags are the parse options shared by the commands.
type parseFlags struct {
	ignoreWhitespace bool
	keepTagCase      bool
	keepAttrCase     bool
}

func (f *parseFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.ignoreWhitespace, "ignore-whitespace", "w", false, "drop whitespace-only text nodes")
	cmd.Flags().BoolVar(&f.keepTagCase, "keep-tag-case", false, "do not lower-case element names")
	cmd.Flags().BoolVar(&f.keepAttrCase, "keep-attr-case", false, "do not lower-case attribute names")
}

func (f *parseFlags) options() htmlparser.Options {
	return htmlparser.Options{
		IgnoreWhitespace: f.ignoreWhitespace,
		LowercaseTags:    !f.keepTagCase,
		LowercaseAttrs:   !f.keepAttrCase,
	}
}

// readNodes parses the named file, or stdin when args is empty or "-".
func readNodes(ctx context.Context, cmd *cobra.Command, args []string, opts htmlparser.Options) ([]htmlparser.Node, error) {
	var r io.Reader = cmd.InOrStdin()
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("open markup: %w", err)
		}
		defer f.Close()
		r = f
	}
	return htmlparser.ParseReader(ctx, r, opts)
}

func newParseCmd() *cobra.Command {
	var outputFormat string
	var pf parseFlags

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse markup and dump the tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, err := readNodes(cmd.Context(), cmd, args, pf.options())
			if err != nil {
				return err
			}
			if err := writeNodes(cmd.OutOrStdout(), nodes, outputFormat); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, html, dom, xml)")
	pf.register(cmd)

	return cmd
}

func writeNodes(w io.Writer, nodes []htmlparser.Node, format string) error {
	switch format {
	case "json":
		b, err := htmlparser.MarshalNodes(nodes)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", b)
		return err
	case "html":
		return htmlparser.Render(w, nodes)
	case "dom":
		return html.Render(w, htmlparser.ToHTMLNode(nodes))
	case "xml":
		// No indentation: it would add whitespace to mixed content.
		_, err := query.NewDocument(nodes).WriteTo(w)
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
