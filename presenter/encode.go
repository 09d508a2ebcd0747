package presenter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"fabsim/model"
)

// Output formats for Encode.
const (
	Text = "text"
	JSON = "json"
	YAML = "yaml"
	CSV  = "csv"
)

var Formats = []string{Text, JSON, YAML, CSV}

func Encode(w io.Writer, res *model.Result, format string) error {
	switch format {
	case Text, "":
		return EncodeText(w, res, false)
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	case CSV:
		return encodeCSV(w, res.Curve)
	}
	return fmt.Errorf("unsupported output format %q", format)
}

func encodeCSV(w io.Writer, curve model.Curve) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time_min", "value_nm"}); err != nil {
		return err
	}
	for _, s := range curve {
		rec := []string{
			strconv.FormatFloat(s.Time, 'f', -1, 64),
			strconv.FormatFloat(s.Value, 'f', 6, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// textRows is how many curve points the text table shows.
const textRows = 11

// EncodeText writes the summary line followed by a short table of the curve.
// With color set the summary is highlighted for a terminal.
func EncodeText(w io.Writer, res *model.Result, color bool) error {
	if _, err := fmt.Fprintln(w, Colorize(res, color)); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "time (min)\t%s (%s)\t\n", res.Quantity, res.Unit)
	for _, s := range thin(res.Curve, textRows) {
		fmt.Fprintf(tw, "%.2f\t%.2f\t\n", s.Time, s.Value)
	}
	return tw.Flush()
}

// thin picks n samples evenly from curve, always keeping both ends.
func thin(curve model.Curve, n int) model.Curve {
	if len(curve) <= n {
		return curve
	}
	out := make(model.Curve, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, curve[i*(len(curve)-1)/(n-1)])
	}
	return out
}
