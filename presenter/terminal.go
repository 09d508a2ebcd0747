package presenter

import (
	"github.com/muesli/termenv"

	"fabsim/model"
)

// Colorize highlights the summary line in the process colour. With color
// disabled the line is returned unchanged.
func Colorize(res *model.Result, color bool) string {
	line := Summary(res)
	if !color {
		return line
	}
	p := termenv.ColorProfile()
	return termenv.String(line).Foreground(p.Color(StyleFor(res.Request.Process).Hex)).Bold().String()
}
