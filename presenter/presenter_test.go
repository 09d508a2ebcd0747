package presenter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"fabsim/calculator"
	"fabsim/model"
)

func simulate(t *testing.T, req model.SimulationRequest) *model.Result {
	t.Helper()
	res, err := calculator.NewCalculator(calculator.DefaultConfig()).Simulate(req)
	require.NoError(t, err)
	return res
}

func TestSummary(t *testing.T) {
	res := simulate(t, model.DefaultRequest())
	assert.Equal(t,
		"oxidation (theoretical) at 600°C for 30 min: expected oxide thickness 544.56 nm",
		Summary(res))

	res = simulate(t, model.SimulationRequest{Process: model.Etch, Variant: model.Theoretical, Temperature: 500, Duration: 12.5})
	assert.Equal(t,
		"etch (theoretical) at 500°C for 12.5 min: expected etch depth 3.13 nm",
		Summary(res))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 544.56, Round2(544.5587))
	assert.Equal(t, 0.0, Round2(0.001))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Oxide thickness (Deal-Grove model)", Title(model.SimulationRequest{Process: model.Oxidation, Variant: model.Theoretical}))
	assert.Equal(t, "Oxide thickness (saturation model)", Title(model.SimulationRequest{Process: model.Oxidation, Variant: model.Realistic}))
	assert.Equal(t, "Etch depth (saturation model)", Title(model.SimulationRequest{Process: model.Etch, Variant: model.Realistic}))
}

func TestChart(t *testing.T) {
	res := simulate(t, model.SimulationRequest{Process: model.Deposition, Variant: model.Realistic, Temperature: 800, Duration: 60})

	var svg bytes.Buffer
	require.NoError(t, Chart(&svg, res, "svg"))
	assert.Contains(t, svg.String(), "<svg")

	var png bytes.Buffer
	require.NoError(t, Chart(&png, res, "out.PNG"))
	assert.True(t, bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")))

	assert.Error(t, Chart(&png, res, "gif"))
}

func TestEncodeJSON(t *testing.T) {
	res := simulate(t, model.DefaultRequest())
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, res, JSON))

	var got model.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, res.Request, got.Request)
	assert.Len(t, got.Curve, 100)
}

func TestEncodeYAML(t *testing.T) {
	res := simulate(t, model.DefaultRequest())
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, res, YAML))

	var got map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "oxide thickness", got["quantity"])
}

func TestEncodeCSV(t *testing.T) {
	res := simulate(t, model.SimulationRequest{Process: model.Etch, Variant: model.Theoretical, Temperature: 600, Duration: 99})
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, res, CSV))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 101)
	assert.Equal(t, []string{"time_min", "value_nm"}, rows[0])
	assert.Equal(t, "1", rows[2][0])
	assert.Equal(t, "99", rows[100][0])
}

func TestEncodeText(t *testing.T) {
	res := simulate(t, model.DefaultRequest())
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, res, Text))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, Summary(res), lines[0])
	assert.Len(t, lines, 2+textRows)
	assert.Contains(t, lines[len(lines)-1], "544.56")
}

func TestEncodeTextColorKeepsTable(t *testing.T) {
	res := simulate(t, model.SimulationRequest{Process: model.Etch, Variant: model.Realistic, Temperature: 800, Duration: 60})
	for _, color := range []bool{false, true} {
		var buf bytes.Buffer
		require.NoError(t, EncodeText(&buf, res, color))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2+textRows, "color=%v", color)
		assert.Equal(t, Colorize(res, color), lines[0])
		assert.Contains(t, lines[0], Summary(res))
		assert.Contains(t, lines[1], "time (min)")
		assert.Contains(t, lines[1], "etch depth (nm)")
		assert.Contains(t, lines[len(lines)-1], "60.00")
	}

	var plain bytes.Buffer
	require.NoError(t, Encode(&plain, res, Text))
	var viaText bytes.Buffer
	require.NoError(t, EncodeText(&viaText, res, false))
	assert.Equal(t, plain.String(), viaText.String())
}

func TestEncodeUnknown(t *testing.T) {
	assert.Error(t, Encode(&bytes.Buffer{}, simulate(t, model.DefaultRequest()), "xml"))
}

func TestColorizeDisabled(t *testing.T) {
	res := simulate(t, model.DefaultRequest())
	assert.Equal(t, Summary(res), Colorize(res, false))
	assert.Contains(t, Colorize(res, true), "544.56")
}
