package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpotapov/go-htmlparser"
)

const listDoc = `<ul class="nav"><li class="a b">one</li><li>two</li></ul><div id="x"><li>three</li></div><script>var a;</script>`

func names(els []*htmlparser.Element) []string {
	var res []string
	for _, el := range els {
		res = append(res, el.Name+":"+el.Text())
	}
	return res
}

func TestSelect(t *testing.T) {
	nodes := htmlparser.Parse(listDoc)

	tests := []struct {
		path    string
		want    []string
		wantErr bool
	}{
		{path: "//li", want: []string{"li:one", "li:two", "li:three"}},
		{path: "//ul/li[@class='a b']", want: []string{"li:one"}},
		{path: "//div[@id='x']", want: []string{"div:three"}},
		{path: "//script", want: []string{"script:var a;"}},
		{path: "//table"},
		{path: "", wantErr: true},
		{path: "//li[@class='a'", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := Select(nodes, tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}

	_, err := Select(nodes, " ")
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestDocument_Source(t *testing.T) {
	nodes := htmlparser.Parse(listDoc)
	doc := NewDocument(nodes)

	el := doc.FindElement("//ul")
	require.NotNil(t, el)
	src, ok := doc.Source(el)
	require.True(t, ok)
	assert.Same(t, nodes[0], src)
	assert.Equal(t, "nav", el.SelectAttrValue("class", ""))
}

func TestDocument_Write(t *testing.T) {
	nodes := htmlparser.Parse(`<!DOCTYPE html><p b="2" a="1">x<br><!--c--></p><?xml-stylesheet href="a"?>`)
	s, err := NewDocument(nodes).WriteToString()
	require.NoError(t, err)
	assert.Equal(t, `<!DOCTYPE html><p a="1" b="2">x<br/><!--c--></p><?xml-stylesheet href="a"?>`, s)
}

func TestDocument_Escaping(t *testing.T) {
	nodes := htmlparser.Parse(`<p title="a&amp;b">x &lt; y</p><script>a<b</script>`)
	s, err := NewDocument(nodes).WriteToString()
	require.NoError(t, err)
	assert.Equal(t, `<p title="a&amp;b">x &lt; y</p><script>a&lt;b</script>`, s)
}
