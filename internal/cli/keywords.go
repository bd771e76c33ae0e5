package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/cropcal/internal/activity"
)

func init() {
	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "Show or validate the category keyword table",
		Long:  "Prints the keyword table in use (the configured file or the built-in table). With --check, validates a table file instead.",
		Run:   runKeywords,
	}

	cmd.Flags().String("check", "", "Validate this keyword table file and exit")

	RootCmd.AddCommand(cmd)
}

func runKeywords(cmd *cobra.Command, args []string) {
	if path, _ := cmd.Flags().GetString("check"); path != "" {
		t, err := activity.LoadKeywordTable(path)
		if err != nil {
			exitErr("check keywords", err)
		}
		fmt.Printf(`{"ok":true,"version":%q}`+"\n", t.Version)
		return
	}

	t, err := loadKeywordTable()
	if err != nil {
		exitErr("load keywords", err)
	}

	if formatFlag == "text" {
		fmt.Printf("version %s\n", t.Version)
		for _, ck := range t.Categories {
			fmt.Printf("  %-11s %s\n", ck.Category, strings.Join(ck.Keywords, ", "))
		}
		return
	}
	b, _ := json.MarshalIndent(t, "", "  ")
	fmt.Println(string(b))
}
