package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/cropcal/internal/model"
	"github.com/rcliao/cropcal/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "translate [file.csv]",
		Short: "Add localized week columns to a calendar CSV",
		Long: `Reads a calendar CSV (a file or stdin) and writes it back with the "Week N (KN)"
columns filled from the phrase dictionary. Existing localized texts are kept unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		Run:  runTranslate,
	}

	cmd.Flags().StringP("out", "o", "", "Output file (default: stdout)")
	cmd.Flags().Bool("force", false, "Regenerate localized texts that are already present")

	RootCmd.AddCommand(cmd)
}

func runTranslate(cmd *cobra.Command, args []string) {
	out, _ := cmd.Flags().GetString("out")
	force, _ := cmd.Flags().GetBool("force")

	in, err := openInput(args)
	if err != nil {
		exitErr("open input", err)
	}
	defer in.Close()

	records, err := store.ReadCSV(in)
	if err != nil {
		exitErr("read csv", err)
	}

	dict, err := loadDictionary()
	if err != nil {
		exitErr("load dictionary", err)
	}
	if force {
		for i := range records {
			records[i].WeeksLocalized = [model.WeeksPerMonth]string{}
		}
	}
	store.Localize(records, dict)

	w, closeOut, err := openOutput(out)
	if err != nil {
		exitErr("open output", err)
	}
	defer closeOut()

	if err := store.WriteCSV(w, records); err != nil {
		exitErr("write csv", err)
	}
	logger.Info("calendar translated", "rows", len(records), "dictionary", dict.Version)
}

// openOutput returns the named file, or stdout for an empty name.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
