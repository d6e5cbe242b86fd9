package palette

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSwatches(t *testing.T) {
	require.Len(t, Keys(), 8)
	for _, k := range Keys() {
		require.True(t, k.Valid(), k)
		require.NotEmpty(t, k.Saturated())
		require.NotEmpty(t, k.Desaturated())
	}
	require.Equal(t, "#2196f3", Blue.Saturated())
	require.Equal(t, "#f3f4f6", Gray.Desaturated())
}

func TestUnknownFallsBackToGray(t *testing.T) {
	require.False(t, Key("teal").Valid())
	require.Equal(t, Gray.Swatch(), Key("teal").Swatch())
}

func TestParse(t *testing.T) {
	k, err := Parse(" Violet ")
	require.NoError(t, err)
	require.Equal(t, Violet, k)

	_, err = Parse("teal")
	require.Error(t, err)
}

func TestNextCycles(t *testing.T) {
	k := Red
	for range Keys() {
		k = k.Next()
	}
	require.Equal(t, Red, k)
	require.Equal(t, Red, Key("nope").Next())
	require.Equal(t, Gray, Red.Prev())
	require.Equal(t, Red, Orange.Prev())
}

func TestTextOn(t *testing.T) {
	require.Equal(t, lightText, TextOn(Indigo.Saturated()))
	require.Equal(t, darkText, TextOn(Yellow.Saturated()))
	require.Equal(t, darkText, TextOn(Blue.Desaturated()))
	require.Equal(t, darkText, TextOn("not-a-color"))
}

func TestNearest(t *testing.T) {
	k, err := Nearest("#ff4040")
	require.NoError(t, err)
	require.Equal(t, Red, k)

	_, err = Nearest("zz")
	require.Error(t, err)
}
