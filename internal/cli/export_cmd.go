package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/alexanderramin/genba/internal/domain"
	"github.com/alexanderramin/genba/internal/service"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newExportCmd(app *App) *cobra.Command {
	var format string
	var only []string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump the board store as collection → id → fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			collections := service.Collections
			if len(only) > 0 {
				collections = nil
				for _, c := range only {
					collections = append(collections, service.Collection(c))
				}
			}

			dump := make(map[service.Collection]map[string]service.Record, len(collections))
			for _, c := range collections {
				docs, err := app.Store.Get(ctx, c)
				if err != nil {
					return err
				}
				for _, doc := range docs {
					if entries, ok := doc["assignments"].([]domain.Assignment); ok {
						doc["assignments"] = entryDocs(entries)
					}
				}
				dump[c] = docs
			}
			return writeDump(cmd.OutOrStdout(), format, dump)
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or yaml")
	cmd.Flags().StringSliceVar(&only, "collection", nil, "Collections to export (default: all)")

	return cmd
}

// entryDocs renders cell entries in their stored shape: {type, id} for
// projects and {type, value} for statuses.
func entryDocs(entries []domain.Assignment) []map[string]string {
	out := make([]map[string]string, 0, len(entries))
	for _, e := range entries {
		switch v := e.(type) {
		case domain.ProjectAssignment:
			out = append(out, map[string]string{"type": string(v.Kind()), "id": v.ProjectID})
		case domain.StatusAssignment:
			out = append(out, map[string]string{"type": string(v.Kind()), "value": string(v.Status)})
		}
	}
	return out
}

func writeDump(w io.Writer, format string, dump any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(dump)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(dump); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (expected json or yaml)", format)
	}
}
