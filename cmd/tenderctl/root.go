package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var outputFormat string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tenderctl",
		Short: "Validate scoring templates, compute scores and compare proposals",
		Long: `tenderctl applies the same rules as the Tender service to local files.

Templates and proposals may be written in YAML or JSON.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&outputFormat, "output", "o", "yaml", "Output format (yaml|json)")

	root.AddCommand(newTemplateCmd(), newScoreCmd(), newCompareCmd())
	return root
}

// decodeFile reads a YAML or JSON document from path into v.
func decodeFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// render writes v in the selected output format. YAML output keeps the JSON
// field names and order.
func render(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	switch outputFormat {
	case "json":
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return err
		}
		blockStyle(&node)
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(&node); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want yaml or json)", outputFormat)
	}
}

// blockStyle clears the flow and quoting styles a JSON source leaves on
// every node so the encoder writes plain block YAML.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
