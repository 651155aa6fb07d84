// Package cmd — render command.
// Composes the print view of one post, from the content directory or a
// remote page, and writes it as HTML, Markdown, PDF or JSON.
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/printfriendly/core"
	"github.com/gaurav-prasanna/printfriendly/core/classify"
	"github.com/gaurav-prasanna/printfriendly/core/extract"
	"github.com/gaurav-prasanna/printfriendly/core/fetch"
	"github.com/gaurav-prasanna/printfriendly/core/output"
	"github.com/gaurav-prasanna/printfriendly/core/render"
	"github.com/gaurav-prasanna/printfriendly/core/source"
	"github.com/gaurav-prasanna/printfriendly/crawl"
)

// Flag variables.
var (
	flagSelector  string
	flagPage      int
	flagHTML      bool
	flagPDF       bool
	flagMarkdown  bool
	flagJSON      bool
	flagOutputDir string
	flagAll       bool
	flagLimit     int
)

var renderCmd = &cobra.Command{
	Use:   "render <id|slug|url>",
	Short: "Render the print view of a post to a file",
	Long: `render composes the print view of a post and writes it in the chosen format.
The post is looked up by id or slug in the content directory; an http(s) URL
is fetched and its main content printed instead.

The --print selector works like the print segment of a URL: empty or "all"
prints every page flattened, "/N" prints page N only.

Examples:
  printfriendly render hello-world --html
  printfriendly render 12 --print /2 --pdf
  printfriendly render https://example.com/post --markdown --output_dir ./out
  printfriendly render https://example.com --all --pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVar(&flagSelector, "print", "", "Print selector (empty or all for every page, /N for page N)")
	renderCmd.Flags().IntVar(&flagPage, "page", 1, "Page shown when the selector names none")

	// Output format flags (mutually exclusive).
	renderCmd.Flags().BoolVar(&flagHTML, "html", false, "Output HTML")
	renderCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	renderCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	renderCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")

	renderCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")

	// Batch mode for remote sites.
	renderCmd.Flags().BoolVar(&flagAll, "all", false, "Print every page discovered from the URL")
	renderCmd.Flags().IntVar(&flagLimit, "limit", crawl.DefaultLimit, "Maximum pages to discover with --all")
}

func runRender(cmd *cobra.Command, args []string) error {
	renderer, err := selectRenderer()
	if err != nil {
		return err
	}

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if flagAll {
		if !isURL(args[0]) {
			return fmt.Errorf("--all needs a site URL, got %q", args[0])
		}
		return runAll(ctx, cmd, args[0], renderer, writer)
	}

	a, post, err := resolvePost(ctx, args[0])
	if err != nil {
		return err
	}
	path, err := printPost(a, post, renderer, writer)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	return nil
}

// printPost composes, renders and writes the print view of post.
func printPost(a *app, post core.Post, renderer core.Renderer, writer *output.Writer) (string, error) {
	req := classify.Classify(map[string]string{core.PrintKey: flagSelector})
	page, _ := classify.SelectPagination(req.PageSelector, flagPage)
	view := a.composer.Compose(req, singleView(post), page)
	logger.Debug("composed view", "post_id", post.ID, "template", view.Template, "page", page)

	data, err := renderer.Render(view)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return writer.Write(view, data, renderer.Extension())
}

// runAll discovers the pages of a remote site and prints each of them.
func runAll(ctx context.Context, cmd *cobra.Command, siteURL string, renderer core.Renderer, writer *output.Writer) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	fetcher := fetch.New(cfg.Fetch.Timeout)
	extractor := extract.New()

	fmt.Fprintf(out, "Discovering pages from %s...\n", siteURL)
	urls, err := crawl.DiscoverAll(ctx, siteURL, fetcher, flagLimit)
	if err != nil {
		return fmt.Errorf("discovering pages: %w", err)
	}
	fmt.Fprintf(out, "Found %d pages to process\n", len(urls))

	var posts []core.Post
	for i, pageURL := range urls {
		post, err := source.FromURL(ctx, pageURL, fetcher, extractor)
		if err != nil {
			fmt.Fprintf(errOut, "  ✗ Error: %s: %v\n", pageURL, err)
			continue
		}
		post.ID = i + 1
		posts = append(posts, post)
	}

	a, err := newApp(posts)
	if err != nil {
		return err
	}

	errCount := len(urls) - len(posts)
	for i, post := range posts {
		fmt.Fprintf(out, "[%d/%d] Processing %s\n", i+1, len(posts), post.SourceURL)
		path, err := printPost(a, post, renderer, writer)
		if err != nil {
			fmt.Fprintf(errOut, "  ✗ Error: %v\n", err)
			errCount++
			continue
		}
		fmt.Fprintf(out, "  ✓ Written: %s\n", path)
	}

	if errCount > 0 {
		fmt.Fprintf(errOut, "\n%d/%d pages failed\n", errCount, len(urls))
	}
	return nil
}

func isURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// resolvePost finds ref in the content directory, or fetches it when it is
// a URL.
func resolvePost(ctx context.Context, ref string) (*app, core.Post, error) {
	if !isURL(ref) {
		a, err := loadApp()
		if err != nil {
			return nil, core.Post{}, err
		}
		p, err := a.findPost(ref)
		return a, p, err
	}

	post, err := source.FromURL(ctx, ref, fetch.New(cfg.Fetch.Timeout), extract.New())
	if err != nil {
		return nil, core.Post{}, err
	}
	logger.Debug("fetched remote post", "url", ref, "title", post.Title)

	a, err := newApp([]core.Post{post})
	return a, post, err
}

// validateFlags checks that exactly one output format is chosen.
func validateFlags() error {
	formatCount := 0
	for _, set := range []bool{flagHTML, flagPDF, flagMarkdown, flagJSON} {
		if set {
			formatCount++
		}
	}

	if formatCount == 0 {
		return fmt.Errorf("exactly one output format is required: --html, --pdf, --markdown, or --json")
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}
	return nil
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer() (core.Renderer, error) {
	if err := validateFlags(); err != nil {
		return nil, err
	}
	switch {
	case flagMarkdown:
		return render.NewMarkdownRenderer(), nil
	case flagJSON:
		return render.NewJSONRenderer(), nil
	case flagPDF:
		return render.NewPDFRenderer(), nil
	default:
		return render.NewHTMLRenderer(), nil
	}
}
