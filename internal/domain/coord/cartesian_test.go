package coord

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	return NewRegistry(RegistryConfig{})
}

func mustCartesian(t *testing.T, r *Registry, x, y, z float64) *Cartesian {
	t.Helper()
	c, err := r.Cartesian(x, y, z)
	require.NoError(t, err)
	return c
}

func triple(c *Cartesian) [3]float64 { return [3]float64{c.X(), c.Y(), c.Z()} }

func TestCartesian_RejectsNonFinite(t *testing.T) {
	r := newTestRegistry(t)
	tests := []struct {
		name    string
		x, y, z float64
	}{
		{"nan x", math.NaN(), 0, 0},
		{"inf y", 0, math.Inf(1), 0},
		{"-inf z", 0, 0, math.Inf(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := r.Cartesian(tt.x, tt.y, tt.z)
			require.ErrorIs(t, err, ErrInvalidArgument)
			assert.Nil(t, c)
		})
	}
	assert.Zero(t, r.Stats().Cartesian.Entries)
}

func TestCartesian_Accessors(t *testing.T) {
	c := mustCartesian(t, newTestRegistry(t), 3, 4, 6.7)
	assert.Equal(t, 3.0, c.X())
	assert.Equal(t, 4.0, c.Y())
	assert.Equal(t, 6.7, c.Z())
	assert.Equal(t, KindCartesian, c.Kind())
	assert.Equal(t, "cartesian(x=3, y=4, z=6.7)", c.String())

	same, err := c.AsCartesian()
	require.NoError(t, err)
	assert.Same(t, c, same)
}

func TestCartesian_Distance(t *testing.T) {
	r := newTestRegistry(t)
	tests := []struct {
		name string
		a, b [3]float64
		want float64
	}{
		{"scenario", [3]float64{12, 3, 9}, [3]float64{4.2, 0, -1}, 13.032268},
		{"far pair", [3]float64{0, 2, 0.675654}, [3]float64{1.2328323, 3.352732, 31.2323}, 30.611409},
		{"origin to itself", [3]float64{0, 0, 0}, [3]float64{0, 0, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustCartesian(t, r, tt.a[0], tt.a[1], tt.a[2])
			b := mustCartesian(t, r, tt.b[0], tt.b[1], tt.b[2])

			d, err := a.DistanceTo(b)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, d, 1e-6)

			back, err := b.DistanceTo(a)
			require.NoError(t, err)
			assert.Equal(t, d, back)
		})
	}
}

func TestCartesian_AsSpherical(t *testing.T) {
	r := newTestRegistry(t)
	tests := []struct {
		name string
		in   [3]float64
		want [3]float64 // phi, theta, radius
	}{
		{"first octant", [3]float64{3, 4, 6.7}, [3]float64{0.64110876885971, 0.92729521800161, 8.3600239234107}},
		{"steep", [3]float64{1.2328323, 3.352732, 31.2323}, [3]float64{0.11388065015818, 1.2184323624132, 31.435922932749}},
		{"negative x", [3]float64{-0.8865010484, 0.01027735996, 2.866009467}, [3]float64{0.3, 3.13, 3.0}},
		{"on x axis plane", [3]float64{4.2, 0, -1}, [3]float64{1.8045395076638, 0, 4.3174066289846}},
	}
	approx := cmpopts.EquateApprox(0, 1e-6)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustCartesian(t, r, tt.in[0], tt.in[1], tt.in[2])
			s, err := c.AsSpherical()
			require.NoError(t, err)

			got := [3]float64{s.Phi(), s.Theta(), s.Radius()}
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("AsSpherical() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCartesian_AsSpherical_NegativeYFoldsIntoRange(t *testing.T) {
	r := newTestRegistry(t)
	c := mustCartesian(t, r, 3, -4, 6.7)

	s, err := c.AsSpherical()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, s.Theta(), 0.0)
	assert.LessOrEqual(t, s.Theta(), math.Pi)
	assert.Greater(t, s.Phi(), math.Pi)
	assert.Less(t, s.Phi(), 2*math.Pi)

	back, err := s.AsCartesian()
	require.NoError(t, err)
	if diff := cmp.Diff(triple(c), triple(back), cmpopts.EquateApprox(0, Epsilon)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCartesian_AsSpherical_NegativeYOnZAxis(t *testing.T) {
	r := newTestRegistry(t)
	tests := []struct {
		name    string
		x, y, z float64
	}{
		{"phi rounds to zero", 1, -1, 1e20},
		{"phi near zero", 1, -1, 1e8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustCartesian(t, r, tt.x, tt.y, tt.z)
			s, err := c.AsSpherical()
			require.NoError(t, err)
			assert.GreaterOrEqual(t, s.Phi(), 0.0)
			assert.Less(t, s.Phi(), 2*math.Pi)
			assert.InDelta(t, 3*math.Pi/4, s.Theta(), Epsilon)
			assert.InDelta(t, c.Vector().Norm(), s.Radius(), Epsilon)
		})
	}
}

func TestCartesian_AsSpherical_Singularities(t *testing.T) {
	r := newTestRegistry(t)
	tests := []struct {
		name    string
		x, y, z float64
	}{
		{"zero x", 0, -4, 6.7},
		{"x within epsilon", 1e-9, 2, 0.675654},
		{"origin", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustCartesian(t, r, tt.x, tt.y, tt.z)
			s, err := c.AsSpherical()
			require.ErrorIs(t, err, ErrConversionFailed)
			assert.NotErrorIs(t, err, ErrInvalidArgument)
			assert.Nil(t, s)

			var opErr *OpError
			require.ErrorAs(t, err, &opErr)
			assert.Same(t, c, opErr.Coord)
			assert.Contains(t, err.Error(), c.String())
		})
	}
}

func TestCartesian_RoundTrip(t *testing.T) {
	r := newTestRegistry(t)
	points := [][3]float64{
		{3, 4, 6.7},
		{12, 3, 9},
		{4.2, 0, -1},
		{-2, 1, 5},
		{-2, -1, -5},
		{0.001, -7, 0.5},
		{1.2328323, 3.352732, 31.2323},
		{-1e4, 2.5e3, -7e3},
	}
	for _, p := range points {
		c := mustCartesian(t, r, p[0], p[1], p[2])
		s, err := c.AsSpherical()
		require.NoError(t, err, "point %v", p)
		back, err := s.AsCartesian()
		require.NoError(t, err, "point %v", p)

		assert.True(t, c.Equal(back), "round trip of %v gave %v", p, back)
	}
}

func TestCartesian_WithSetters(t *testing.T) {
	r := newTestRegistry(t)
	c := mustCartesian(t, r, 1, 2, 3)

	x, err := c.WithX(10)
	require.NoError(t, err)
	assert.Equal(t, [3]float64{10, 2, 3}, triple(x))
	assert.Equal(t, [3]float64{1, 2, 3}, triple(c), "receiver must not change")

	y, err := c.WithY(20)
	require.NoError(t, err)
	assert.Equal(t, [3]float64{1, 20, 3}, triple(y))

	z, err := c.WithZ(30)
	require.NoError(t, err)
	assert.Equal(t, [3]float64{1, 2, 30}, triple(z))

	same, err := c.WithX(1)
	require.NoError(t, err)
	assert.Same(t, c, same, "setter with an unchanged value must return the interned instance")

	_, err = c.WithZ(math.NaN())
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCartesian_Hash(t *testing.T) {
	r := newTestRegistry(t)
	a := mustCartesian(t, r, 0, -4, 6.7)
	b := mustCartesian(t, NewRegistry(RegistryConfig{}), 0, -4, 6.7)
	assert.NotSame(t, a, b)
	assert.Equal(t, a.Hash(), b.Hash())

	negZero := mustCartesian(t, r, math.Copysign(0, -1), -4, 6.7)
	assert.NotEqual(t, a.Hash(), negZero.Hash(), "hash follows raw bits")
	assert.True(t, a.Equal(negZero))
}
