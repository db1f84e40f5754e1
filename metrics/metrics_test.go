package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordOp(t *testing.T) {
	m, err := New("castor_test", "127.0.0.1:0")
	require.NoError(t, err)

	m.RecordOp("store", nil, 0.01)
	m.RecordOp("store", nil, 0.02)
	m.RecordOp("store", errors.New("boom"), 0.5)
	m.RecordOp("retrieve", nil, 0.001)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.OpsTotal.WithLabelValues("store", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.OpsTotal.WithLabelValues("store", "error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.OpsTotal.WithLabelValues("retrieve", "ok")))
}
