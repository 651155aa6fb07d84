// Package cmd — label command.
// Prints the "page N of M" label a print view of one page carries.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/printfriendly/core"
	"github.com/gaurav-prasanna/printfriendly/core/classify"
	"github.com/gaurav-prasanna/printfriendly/core/pagelabel"
	"github.com/gaurav-prasanna/printfriendly/core/printview"
)

var (
	flagLabelPage   int
	flagLabelBefore string
	flagLabelSep    string
	flagLabelAfter  string
)

var labelCmd = &cobra.Command{
	Use:   "label <id|slug>",
	Short: "Print the page label of one page of a multi-page post",
	Long: `label prints the label shown under a single printed page, such as
"Page 2 of 3". Posts without page breaks have no label.

Examples:
  printfriendly label hello-world --page 2
  printfriendly label 12 --page 1 --before "(" --separator "/" --after ")"`,
	Args: cobra.ExactArgs(1),
	RunE: runLabel,
}

func init() {
	rootCmd.AddCommand(labelCmd)

	labelCmd.Flags().IntVar(&flagLabelPage, "page", 1, "Page being printed")
	labelCmd.Flags().StringVar(&flagLabelBefore, "before", printview.LabelBefore, "Text before the current page")
	labelCmd.Flags().StringVar(&flagLabelSep, "separator", printview.LabelSeparator, "Text between current and total")
	labelCmd.Flags().StringVar(&flagLabelAfter, "after", "", "Text after the total")
}

func runLabel(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	p, err := a.findPost(args[0])
	if err != nil {
		return err
	}

	req := classify.Classify(map[string]string{core.PrintKey: fmt.Sprintf("/%d", flagLabelPage)})
	label, ok := pagelabel.Format(req, p.Body, flagLabelBefore, flagLabelSep, flagLabelAfter)
	if !ok {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s has no page breaks\n", p.Slug)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), label)
	return nil
}
