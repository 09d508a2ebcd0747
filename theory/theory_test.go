package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fabsim/model"
)

func TestMarkdown(t *testing.T) {
	cases := map[model.Process]string{
		model.Oxidation:  "Deal-Grove",
		model.Etch:       "anisotropic",
		model.Deposition: "CVD",
	}
	for p, want := range cases {
		md, err := Markdown(p)
		require.NoError(t, err)
		assert.Contains(t, md, want)
		assert.Contains(t, md, "Realistic")
	}
}

func TestMarkdownUnknownProcess(t *testing.T) {
	_, err := Markdown("anneal")
	assert.ErrorIs(t, err, model.ErrUnknownProcess)
}

func TestRender(t *testing.T) {
	out, err := Render(model.Etch, 60)
	require.NoError(t, err)
	assert.Contains(t, out, "Etching")
}
