package shipping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteTiers(t *testing.T) {
	cases := []struct {
		postal string
		base   float64
	}{
		{"0900", 5500},
		{"1000", 5500},
		{"1001", 6800},
		{"1414", 6800},
		{"4000", 6800},
		{"4001", 8500},
		{"9410", 8500},
	}
	for _, tc := range cases {
		opts, err := Quote(tc.postal)
		require.NoError(t, err, "postal %s", tc.postal)
		require.Len(t, opts, 3)
		assert.Equal(t, tc.base, opts[0].Price, "postal %s", tc.postal)
	}
}

func TestQuoteOptionSpread(t *testing.T) {
	opts, err := Quote("1414")
	require.NoError(t, err)
	require.Len(t, opts, 3)

	base := opts[0]
	assert.Equal(t, "correo-arg-clasico", base.ID)
	assert.Equal(t, "Correo Argentino", base.Provider)

	// The two premium couriers always sit above the base quote.
	assert.Equal(t, base.Price+1200, opts[1].Price)
	assert.Equal(t, base.Price+2500, opts[2].Price)
	for _, o := range opts {
		assert.NotEmpty(t, o.ID)
		assert.NotEmpty(t, o.DeliveryDays)
	}
}

func TestQuoteTrimsInput(t *testing.T) {
	opts, err := Quote("  1414  ")
	require.NoError(t, err)
	assert.Equal(t, float64(6800), opts[0].Price)
}

func TestQuoteRejectsBadPostalCodes(t *testing.T) {
	for _, postal := range []string{"", "141", "abcd", "14a4", "-999", "0000"} {
		_, err := Quote(postal)
		assert.ErrorIs(t, err, ErrInvalidPostalCode, "postal %q", postal)
	}
}
