package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	got, err := Convert("NGN", 100)
	require.NoError(t, err)
	assert.Equal(t, 165000.0, got)

	got, err = Convert("USD", 42.5)
	require.NoError(t, err)
	assert.Equal(t, 42.5, got)

	_, err = Convert("XXX", 100)
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	got, err := Format("USD", 71000, false)
	require.NoError(t, err)
	assert.Equal(t, "$71000", got)

	got, err = Format("USD", 71000, true)
	require.NoError(t, err)
	assert.Equal(t, "$71.0K", got)

	got, err = Format("NGN", 71000, true)
	require.NoError(t, err)
	assert.Equal(t, "₦117.2M", got)

	_, err = Format("XXX", 1, false)
	assert.Error(t, err)
}

func TestAllSortedAndComplete(t *testing.T) {
	all := All()
	require.Len(t, all, 10)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Code, all[i].Code)
	}

	usd, ok := Lookup("USD")
	require.True(t, ok)
	assert.Equal(t, 1.0, usd.Rate)
}
