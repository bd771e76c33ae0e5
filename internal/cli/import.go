package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/cropcal/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file.csv]",
		Short: "Import calendar rows from CSV",
		Long: `Import calendar rows from CSV (a file or stdin). Expects the header
Season,Crop,Variety,Month,Week 1,Week 2,Week 3,Week 4 with optional "Week N (KN)" columns.
Rows keep their file order.`,
		Args: cobra.MaximumNArgs(1),
		Run:  runImport,
	}

	cmd.Flags().Bool("replace", false, "Delete all existing rows first")
	cmd.Flags().Bool("translate", true, "Generate localized week texts for rows that have none")

	RootCmd.AddCommand(cmd)
}

// openInput returns the named file, or stdin for no name or "-".
func openInput(args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(args[0])
}

func runImport(cmd *cobra.Command, args []string) {
	replace, _ := cmd.Flags().GetBool("replace")
	doTranslate, _ := cmd.Flags().GetBool("translate")

	in, err := openInput(args)
	if err != nil {
		exitErr("open input", err)
	}
	defer in.Close()

	p := store.ImportParams{Replace: replace}
	if doTranslate {
		dict, err := loadDictionary()
		if err != nil {
			exitErr("load dictionary", err)
		}
		p.Translator = dict
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	imported, err := s.ImportCSV(cmd.Context(), in, p)
	if err != nil {
		exitErr("import", err)
	}
	logger.Info("calendar imported", "rows", imported, "replace", replace, "db", cfg.DB)

	fmt.Printf(`{"ok":true,"imported":%d}`+"\n", imported)
}
