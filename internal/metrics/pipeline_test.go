package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPipelineMetrics(t *testing.T) {
	before := testutil.ToFloat64(linesTotal.WithLabelValues(KindRejected))
	IncLine(KindRejected)
	IncLine(KindRejected)
	if got := testutil.ToFloat64(linesTotal.WithLabelValues(KindRejected)) - before; got != 2 {
		t.Errorf("rejected lines delta = %v, want 2", got)
	}

	SetFPS(12.5)
	if got := testutil.ToFloat64(renderFPS); got != 12.5 {
		t.Errorf("fps = %v, want 12.5", got)
	}

	SetGeometry(16, 4)
	if w, h := testutil.ToFloat64(matrixWidth), testutil.ToFloat64(matrixHeight); w != 16 || h != 4 {
		t.Errorf("geometry = %vx%v, want 16x4", w, h)
	}
}
