package series

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// RenderPNG writes a PNG preview chart of the extracted series, useful
// for eyeballing a batch run without opening each CSV.
func (s Series) RenderPNG(w io.Writer) error {
	if s.Len() == 0 {
		return fmt.Errorf("cannot render an empty series")
	}

	graph := chart.Chart{
		Width:  1200,
		Height: 500,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "extracted",
				XValues: s.Dates,
				YValues: s.Values,
				Style: chart.Style{
					StrokeColor: drawing.ColorBlue,
					StrokeWidth: 1.5,
				},
			},
		},
	}

	return graph.Render(chart.PNG, w)
}
