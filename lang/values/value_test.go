package values_test

import (
	"math"
	"testing"

	"github.com/mna/loxwalk/lang/values"
	"github.com/stretchr/testify/require"
)

func TestNumberStringIntegralHasNoTrailingZero(t *testing.T) {
	require.Equal(t, "3", values.Number(3).String())
	require.Equal(t, "-4", values.Number(-4).String())
	require.Equal(t, "0", values.Number(0).String())
}

func TestNumberStringDecimal(t *testing.T) {
	require.Equal(t, "0.5", values.Number(0.5).String())
	require.Equal(t, "3.14", values.Number(3.14).String())
}

func TestNumberStringInfAndNaN(t *testing.T) {
	require.Equal(t, "inf", values.Number(math.Inf(1)).String())
	require.Equal(t, "-inf", values.Number(math.Inf(-1)).String())
	require.Equal(t, "NaN", values.Number(math.NaN()).String())
}

func TestTruthy(t *testing.T) {
	require.False(t, values.Truthy(values.NilValue))
	require.False(t, values.Truthy(values.Bool(false)))
	require.True(t, values.Truthy(values.Bool(true)))
	require.True(t, values.Truthy(values.Number(0)))
	require.True(t, values.Truthy(values.String("")))
	require.True(t, values.Truthy(values.Number(math.NaN())))
}

func TestEqualAcrossKindsIsFalse(t *testing.T) {
	require.False(t, values.Equal(values.Number(1), values.String("1")))
	require.False(t, values.Equal(values.NilValue, values.Bool(false)))
	require.True(t, values.Equal(values.Number(1), values.Number(1)))
	require.True(t, values.Equal(values.String("a"), values.String("a")))
	require.True(t, values.Equal(values.NilValue, values.NilValue))
}

func TestEnvironmentGetAtAndAssignAt(t *testing.T) {
	global := values.NewEnvironment(nil)
	global.Define("a", values.Number(1))

	child := values.NewEnvironment(global)
	child.Define("b", values.Number(2))

	v := child.GetAt(1, "a")
	require.Equal(t, values.Number(1), v)

	child.AssignAt(1, "a", values.Number(9))
	v, err := global.Get("a")
	require.NoError(t, err)
	require.Equal(t, values.Number(9), v)
}

func TestEnvironmentGetUndefinedReturnsError(t *testing.T) {
	env := values.NewEnvironment(nil)
	_, err := env.Get("missing")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Undefined variable 'missing'.")
}
