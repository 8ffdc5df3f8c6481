// Package stats contains drill metrics and history reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/mathsheet/internal/model"
)

const sparkChars = " .:-=+*#%@"

// DrillMetrics computes problems per minute and accuracy for a drill.
func DrillMetrics(correct, incorrect int, durationMs int64) (perMinute, accuracy float64) {
	total := correct + incorrect
	if total > 0 {
		accuracy = float64(correct) / float64(total)
	}
	if durationMs <= 0 {
		return 0, accuracy
	}
	minutes := float64(durationMs) / 60000.0
	perMinute = float64(total) / minutes
	return perMinute, accuracy
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderDrillSummary prints totals and an accuracy trend for drills.
func RenderDrillSummary(w io.Writer, sessions []model.DrillAggregate, window int) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No drills found.")
		return err
	}
	var correct, incorrect int
	var duration int64
	accs := make([]float64, len(sessions))
	best := 0.0
	for i, s := range sessions {
		correct += s.Correct
		incorrect += s.Incorrect
		duration += s.DurationMs
		_, acc := DrillMetrics(s.Correct, s.Incorrect, s.DurationMs)
		accs[i] = acc * 100
		if acc > best {
			best = acc
		}
	}
	perMin, acc := DrillMetrics(correct, incorrect, duration)
	lines := []string{
		"Drill Summary",
		fmt.Sprintf("Drills: %d", len(sessions)),
		fmt.Sprintf("Problems: %d", correct+incorrect),
		fmt.Sprintf("Accuracy: %.2f%%", acc*100),
		fmt.Sprintf("Best Accuracy: %.2f%%", best*100),
		fmt.Sprintf("Problems/min: %.2f", perMin),
		fmt.Sprintf("Trend: [%s]", Sparkline(MovingAverage(accs, window))),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
