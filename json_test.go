package htmlparser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalNodes(t *testing.T) {
	tests := []struct {
		name, text, want string
	}{
		{
			name: "empty",
			text: "",
			want: `[]`,
		},
		{
			name: "element",
			text: `<div id="a">hi<br/></div>`,
			want: `[{"type":"tag","name":"div","attribs":{"id":"a"},"children":[` +
				`{"type":"text","raw":"hi","data":"hi"},` +
				`{"type":"tag","name":"br","attribs":{},"children":[],"raw":"br/","data":"br/"}],` +
				`"raw":"div id=\"a\"","data":"div id=\"a\""}]`,
		},
		{
			name: "raw text elements",
			text: `<script>x</script><style>y</style>`,
			want: `[{"type":"script","name":"script","attribs":{},"children":[{"type":"text","raw":"x","data":"x"}],"raw":"script","data":"script"},` +
				`{"type":"style","name":"style","attribs":{},"children":[{"type":"text","raw":"y","data":"y"}],"raw":"style","data":"style"}]`,
		},
		{
			name: "comment and directive",
			text: `<!--c--><!doctype html>`,
			want: `[{"type":"comment","raw":"<!--c-->","data":"<!--c-->"},` +
				`{"type":"directive","raw":"<!doctype html>","data":"<!doctype html>"}]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := MarshalNodes(Parse(tt.text))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))
		})
	}
}

func TestUnmarshalNodes(t *testing.T) {
	text := `<!DOCTYPE html><ul class=nav><li>one<li><img src=x /></ul><script>a<b</script><!-- end -->`
	want := Parse(text)

	b, err := MarshalNodes(want)
	require.NoError(t, err)

	got, err := UnmarshalNodes(b)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("UnmarshalNodes() mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalNodes_Errors(t *testing.T) {
	_, err := UnmarshalNodes([]byte(`{}`))
	assert.Error(t, err)

	_, err = UnmarshalNodes([]byte(`[{"type":"cdata","raw":"x","data":"x"}]`))
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = UnmarshalNodes([]byte(`[{"type":"tag","name":"p","children":[{"type":"bogus"}]}]`))
	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.Contains(t, err.Error(), `children of "p"`)
}
