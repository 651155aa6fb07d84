// Package cmd — url command.
// Prints the print URL of a resource.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/printfriendly/core"
	"github.com/gaurav-prasanna/printfriendly/core/printurl"
)

var (
	flagKind     string
	flagID       int
	flagTaxonomy string
	flagURLPage  string
)

var urlCmd = &cobra.Command{
	Use:   "url",
	Short: "Print the print URL of a post, page, listing or the home page",
	Long: `url builds the print URL of a resource using the site's permalink mode.

Examples:
  printfriendly url --kind home
  printfriendly url --kind single --id 12 --page 3
  printfriendly url --kind category --id 7
  printfriendly url --kind taxonomy --taxonomy cuisine --id 9 --page all`,
	Args: cobra.NoArgs,
	RunE: runURL,
}

func init() {
	rootCmd.AddCommand(urlCmd)

	urlCmd.Flags().StringVar(&flagKind, "kind", "single", "Resource kind: home, single, category, tag or taxonomy")
	urlCmd.Flags().IntVar(&flagID, "id", 0, "Post or term ID")
	urlCmd.Flags().StringVar(&flagTaxonomy, "taxonomy", "", "Taxonomy name (with --kind taxonomy)")
	urlCmd.Flags().StringVar(&flagURLPage, "page", "all", "Page: all, current or a page number")
}

func runURL(cmd *cobra.Command, args []string) error {
	kind, err := core.ParseKind(flagKind)
	if err != nil {
		return err
	}
	page, err := printurl.ParsePage(flagURLPage)
	if err != nil {
		return err
	}

	a, err := loadApp()
	if err != nil {
		return err
	}

	resource := core.NewResource(kind, flagID, flagTaxonomy)
	link, ok := a.urls.Build(resource, page)
	if !ok {
		return fmt.Errorf("no print URL for %s %d", kind, flagID)
	}
	fmt.Fprintln(cmd.OutOrStdout(), link)
	return nil
}
