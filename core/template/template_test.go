package template

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/printfriendly/core"
)

func touch(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestChoose_Order(t *testing.T) {
	dir := t.TempDir()
	c := NewChooser(dir)

	single := Subject{Kind: core.KindSinglePost, PostType: "recipe"}
	listing := Subject{Kind: core.KindCategory, Taxonomy: "category"}
	home := Subject{Kind: core.KindHome}

	assert.Equal(t, Template{Name: NamePluginDefault}, c.Choose(single))

	touch(t, dir, "wpf.html", "generic")
	assert.Equal(t, NameDefault, c.Choose(single).Name)
	assert.Equal(t, NameDefault, c.Choose(home).Name)

	touch(t, dir, "wpf-recipe.html", "recipe")
	assert.Equal(t, "wpf-recipe", c.Choose(single).Name)
	assert.Equal(t, filepath.Join(dir, "wpf-recipe.html"), c.Choose(single).Path)

	touch(t, dir, "wpf-category.html", "cat")
	assert.Equal(t, "wpf-category", c.Choose(listing).Name)

	touch(t, dir, "wpf-home.html", "home")
	assert.Equal(t, NameHome, c.Choose(home).Name)
}

func TestChoose_NoThemeDir(t *testing.T) {
	assert.Equal(t, NamePluginDefault, NewChooser("").Choose(Subject{Kind: core.KindHome}).Name)
}

func TestBodyClasses(t *testing.T) {
	assert.Equal(t, []string{"single", "wpf-post"}, BodyClasses(core.KindSinglePost, Template{Name: "wpf-post"}))
	assert.Equal(t, []string{"home", "wpf"}, BodyClasses(core.KindHome, Template{Name: "default"}))
}

func sampleView() *core.PrintView {
	return &core.PrintView{
		SiteName:    "Example",
		BodyClasses: []string{"single", NamePluginDefault},
		Posts: []core.PrintedPost{{
			Post: core.Post{Title: "Hello <World>", Author: "Ana", Date: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)},
			HTML: "<p>Body X[1]</p>",
		}},
		PageLabel:   "Page 1 of 2",
		PrintedFrom: "https://example.com/hello/",
		PrintedAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestExecute_Bundled(t *testing.T) {
	out, err := Execute("", sampleView())
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, `<body class="single wpf-plugin-default">`)
	assert.Contains(t, html, "<h1>Hello &lt;World&gt;</h1>")
	assert.Contains(t, html, "by Ana | March 1, 2024 9:30 am")
	assert.Contains(t, html, "<p>Body X[1]</p>")
	assert.Contains(t, html, "Page 1 of 2")
	assert.Contains(t, html, "Printed from <strong>https://example.com/hello/</strong>")
	assert.Contains(t, html, "Copyright &copy;2025 <strong>Example</strong>")
}

func TestExecute_ThemeFile(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "wpf.html", `<main>{{ range .Posts }}{{ raw .HTML }}{{ end }}</main>`)

	out, err := Execute(filepath.Join(dir, "wpf.html"), sampleView())
	require.NoError(t, err)
	assert.Equal(t, "<main><p>Body X[1]</p></main>", string(out))
}

func TestExecute_BadTemplate(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "wpf.html", `{{ .Nope`)
	_, err := Execute(filepath.Join(dir, "wpf.html"), sampleView())
	require.Error(t, err)
}

func TestExecuteNormal(t *testing.T) {
	out, err := ExecuteNormal(sampleView())
	require.NoError(t, err)
	assert.Contains(t, string(out), "<h2>Hello &lt;World&gt;</h2>")
	assert.NotContains(t, string(out), "Printed from")
}
