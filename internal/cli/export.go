package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/cropcal/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all calendar rows",
		Long:  "Export every calendar row in import order, as bilingual CSV (re-importable) or JSON.",
		Run:   runExport,
	}

	cmd.Flags().StringP("out", "o", "", "Output file (default: stdout)")
	cmd.Flags().String("as", "csv", "Encoding: csv or json")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	out, _ := cmd.Flags().GetString("out")
	as, _ := cmd.Flags().GetString("as")
	if as != "csv" && as != "json" {
		exitErr("export", fmt.Errorf("unknown encoding %q", as))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	records, err := s.ExportAll(cmd.Context())
	if err != nil {
		exitErr("export", err)
	}

	w, closeOut, err := openOutput(out)
	if err != nil {
		exitErr("open output", err)
	}
	defer closeOut()

	if as == "csv" {
		if err := store.WriteCSV(w, records); err != nil {
			exitErr("export", err)
		}
		return
	}
	b, _ := json.MarshalIndent(records, "", "  ")
	fmt.Fprintln(w, string(b))
}
