package geocoord_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/kailas-cloud/geocoord/pkg/geocoord"
)

func TestNew_Defaults(t *testing.T) {
	reg, err := geocoord.New()
	require.NoError(t, err)

	a, err := reg.Cartesian(1, 2, 3)
	require.NoError(t, err)
	b, err := reg.Cartesian(1, 2, 3)
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, geocoord.KindCartesian, a.Kind())
}

func TestNew_InvalidOptions(t *testing.T) {
	_, err := geocoord.New(geocoord.WithShards(-1))
	require.ErrorIs(t, err, geocoord.ErrInvalidArgument)

	_, err = geocoord.New(geocoord.WithMaxEntries(-5))
	require.ErrorIs(t, err, geocoord.ErrInvalidArgument)

	for _, n := range []int{1<<16 + 1, 1 << 40, 1<<62 + 1} {
		_, err = geocoord.New(geocoord.WithShards(n))
		require.ErrorIs(t, err, geocoord.ErrInvalidArgument, "shards=%d", n)
	}

	_, err = geocoord.New(geocoord.WithShards(1 << 16))
	require.NoError(t, err)
}

func TestNew_Options(t *testing.T) {
	promReg := prometheus.NewRegistry()
	reg, err := geocoord.New(
		geocoord.WithShards(2),
		geocoord.WithMaxEntries(2),
		geocoord.WithLogger(zaptest.NewLogger(t)),
		geocoord.WithPrometheus(promReg),
		geocoord.WithMetricsNamespace("app"),
	)
	require.NoError(t, err)

	for _, x := range []float64{1, 2, 3, 4, 5} {
		_, err := reg.Cartesian(x, 0, 0)
		require.NoError(t, err)
	}
	stats := reg.Stats()
	assert.LessOrEqual(t, stats.Cartesian.Entries, int64(2))
	assert.Positive(t, stats.Cartesian.Evictions)

	count, err := testutil.GatherAndCount(promReg, "app_intern_lookups_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNew_SharedRegisterer(t *testing.T) {
	promReg := prometheus.NewRegistry()
	_, err := geocoord.New(geocoord.WithPrometheus(promReg))
	require.NoError(t, err)
	_, err = geocoord.New(geocoord.WithPrometheus(promReg))
	require.NoError(t, err)
}

func TestFacade_Operations(t *testing.T) {
	reg, err := geocoord.New()
	require.NoError(t, err)

	a, err := reg.Cartesian(12, 3, 9)
	require.NoError(t, err)
	b, err := reg.Cartesian(4.2, 0, -1)
	require.NoError(t, err)

	d, err := geocoord.Distance(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 13.032268, d, 1e-6)

	angle, err := geocoord.CentralAngle(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 0.857389408080394, angle, 1e-6)

	s, err := b.AsSpherical()
	require.NoError(t, err)
	assert.True(t, geocoord.Equal(b, s))
	assert.False(t, geocoord.Equal(a, s))

	assert.True(t, geocoord.NearlyEqual(1, 1+geocoord.Epsilon/2))
	assert.False(t, geocoord.IsFinite(math.Inf(1)))
}

func TestFacade_Errors(t *testing.T) {
	reg, err := geocoord.New()
	require.NoError(t, err)

	_, err = reg.Spherical(-1, 0, 1)
	require.ErrorIs(t, err, geocoord.ErrInvalidArgument)

	c, err := reg.Cartesian(0, 1, 1)
	require.NoError(t, err)
	_, err = c.AsSpherical()
	require.ErrorIs(t, err, geocoord.ErrConversionFailed)

	var opErr *geocoord.OpError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, geocoord.Coordinate(c), opErr.Coord)
}

func TestFacade_Location(t *testing.T) {
	reg, err := geocoord.New()
	require.NoError(t, err)
	c, err := reg.Cartesian(3, 4, 6.7)
	require.NoError(t, err)

	l, err := geocoord.NewLocation("camp", c)
	require.NoError(t, err)
	assert.Equal(t, "camp", l.Name())

	_, err = geocoord.NewLocation("empty", nil)
	require.ErrorIs(t, err, geocoord.ErrInvalidArgument)
}

func TestHealth(t *testing.T) {
	reg, err := geocoord.New()
	require.NoError(t, err)

	h := geocoord.Health(context.Background(), reg)
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, map[string]string{"interning": "ok", "conversion": "ok"}, h.Checks)

	h = geocoord.Health(context.Background(), nil)
	assert.Equal(t, "degraded", h.Status)
	assert.Equal(t, "error", h.Checks["interning"])
}
