package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveReport(t *testing.T) {
	okBefore := testutil.ToFloat64(ReportRuns.WithLabelValues("metrics_test", "ok"))
	errBefore := testutil.ToFloat64(ReportRuns.WithLabelValues("metrics_test", "error"))

	ObserveReport("metrics_test", time.Now(), nil)
	ObserveReport("metrics_test", time.Now(), nil)
	ObserveReport("metrics_test", time.Now(), errors.New("boom"))

	assert.Equal(t, okBefore+2, testutil.ToFloat64(ReportRuns.WithLabelValues("metrics_test", "ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(ReportRuns.WithLabelValues("metrics_test", "error")))
	assert.GreaterOrEqual(t, testutil.CollectAndCount(ReportDuration), 1)
}
