package htmlparser

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name, text, want string
	}{
		{"empty", "", ""},
		{"text", "a < b", "a < b"},
		{"closes missing end tags", `<div class=x><br><p>a</div>`, `<div class="x"><br><p>a</p></div>`},
		{"self-closing", `<img src="x"/><my-el />`, `<img src="x"/><my-el/>`},
		{"boolean attribute", `<input type=checkbox checked>`, `<input checked type="checkbox">`},
		{"quotes", `<a title='say "hi"' alt="it's">`, `<a alt="it's" title='say "hi"'></a>`},
		{"both quotes", `<a title=a"b'c b='"x'>`, `<a b='"x' title="a&quot;b'c"></a>`},
		{"raw text", `<script>if (a<b) {}</script>`, `<script>if (a<b) {}</script>`},
		{"comments and directives", `<!DOCTYPE html><!-- c --><?pi x?>`, `<!DOCTYPE html><!-- c --><?pi x?>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderString(Parse(tt.text)))

			var b bytes.Buffer
			require.NoError(t, Render(&b, Parse(tt.text)))
			assert.Equal(t, tt.want, b.String())
		})
	}
}

func TestRender_RoundTrip(t *testing.T) {
	text := `<ul class="nav"><li>one</li><li><a href="/x">two</a></li></ul>`
	assert.Equal(t, text, RenderString(Parse(text)))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("write failed") }

func TestRender_WriteError(t *testing.T) {
	err := Render(failingWriter{}, Parse(strings.Repeat("<p>x</p>", 2000)))
	assert.EqualError(t, err, "write failed")
}

func TestToHTMLNode(t *testing.T) {
	text := `<!DOCTYPE html><p title="a&amp;b" hidden>x &lt; y<br></p><script>a<b</script><!-- c --><?php echo 1 ?>`
	doc := ToHTMLNode(Parse(text))

	var b bytes.Buffer
	require.NoError(t, html.Render(&b, doc))
	assert.Equal(t, `<!DOCTYPE html><p hidden="hidden" title="a&amp;b">x &lt; y<br/></p><script>a<b</script><!-- c --><!--?php echo 1 ?-->`, b.String())

	p := doc.FirstChild.NextSibling
	require.NotNil(t, p)
	assert.Equal(t, html.ElementNode, p.Type)
	assert.Equal(t, "p", p.DataAtom.String())
	assert.Equal(t, "x < y", p.FirstChild.Data)
}

func TestToHTMLNode_Doctype(t *testing.T) {
	doc := ToHTMLNode(Parse(`<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01//EN" "http://www.w3.org/TR/html4/strict.dtd">`))
	dt := doc.FirstChild
	require.NotNil(t, dt)
	assert.Equal(t, html.DoctypeNode, dt.Type)
	assert.Equal(t, "html", dt.Data)
	assert.Equal(t, []html.Attribute{
		{Key: "public", Val: "-//W3C//DTD HTML 4.01//EN"},
		{Key: "system", Val: "http://www.w3.org/TR/html4/strict.dtd"},
	}, dt.Attr)
}
