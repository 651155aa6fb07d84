package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/printfriendly/core"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		name string
		view core.PrintView
		want string
	}{
		{name: "path permalink", view: core.PrintView{PrintedFrom: "https://example.com/hello/"}, want: "example_com_hello"},
		{name: "query permalink", view: core.PrintView{PrintedFrom: "https://example.com/?p=12"}, want: "example_com_p_12"},
		{name: "term link", view: core.PrintView{PrintedFrom: "https://example.com/category/news"}, want: "example_com_category_news"},
		{name: "title fallback", view: core.PrintView{SiteName: "My Site"}, want: "My_Site"},
		{name: "empty", view: core.PrintView{}, want: "print"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(&tt.view))
		})
	}
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w, err := New(dir)
	require.NoError(t, err)

	path, err := w.Write(&core.PrintView{PrintedFrom: "https://example.com/hello/"}, []byte("data"), ".md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "example_com_hello.md"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))
}
