// Package chart reshapes ordered records into label/value series for chart
// renderers. It only projects fields; it never aggregates.
package chart

import "strconv"

// Palette is the color cycle shared by pie and bar charts.
var Palette = []string{"#0088FE", "#00C49F", "#FFBB28", "#FF8042", "#8884D8", "#82ca9d"}

// Color returns the palette entry for the i-th slice, wrapping around.
func Color(i int) string {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// Point is one label/value pair.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Series is a named, colored sequence of points.
type Series struct {
	Name   string  `json:"name"`
	Color  string  `json:"color,omitempty"`
	Points []Point `json:"points"`
}

// Project maps every record to one point, preserving order.
func Project[T any](items []T, label func(T) string, value func(T) float64) []Point {
	out := make([]Point, 0, len(items))
	for _, item := range items {
		out = append(out, Point{Label: label(item), Value: value(item)})
	}
	return out
}

// Multi builds one series per value accessor over the same labels, as used by
// grouped bar and multi-line charts. names and values must line up.
func Multi[T any](items []T, label func(T) string, names []string, values ...func(T) float64) []Series {
	n := min(len(names), len(values))
	out := make([]Series, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Series{
			Name:   names[i],
			Color:  Color(i),
			Points: Project(items, label, values[i]),
		})
	}
	return out
}

// Indexed labels values "<prefix> 1" through "<prefix> n".
func Indexed(prefix string, values []float64) []Point {
	out := make([]Point, 0, len(values))
	for i, v := range values {
		out = append(out, Point{Label: prefix + " " + strconv.Itoa(i+1), Value: v})
	}
	return out
}

// EvenShare gives each label an equal percentage of 100. An empty input
// yields an empty result.
func EvenShare(labels []string) []Point {
	out := make([]Point, 0, len(labels))
	if len(labels) == 0 {
		return out
	}
	share := 100 / float64(len(labels))
	for _, l := range labels {
		out = append(out, Point{Label: l, Value: share})
	}
	return out
}

// Colorize assigns palette colors to a slice of points, for pie charts.
func Colorize(points []Point) []Slice {
	out := make([]Slice, 0, len(points))
	for i, p := range points {
		out = append(out, Slice{Point: p, Color: Color(i)})
	}
	return out
}

// Slice is a pie segment.
type Slice struct {
	Point
	Color string `json:"color"`
}
