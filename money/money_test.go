package money_test

import (
	"encoding/json"
	"testing"

	"github.com/andyle182810/storefront/money"
	"github.com/stretchr/testify/require"
)

type payment struct {
	OrderID int64        `json:"orderId"`
	Amount  money.Amount `json:"amount"`
}

func TestAmount_MarshalsAsNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		amount   money.Amount
		expected string
	}{
		{name: "fraction", amount: money.RequireFromString("44.95"), expected: `{"orderId":1,"amount":44.95}`},
		{name: "whole", amount: money.NewFromInt(21), expected: `{"orderId":1,"amount":21}`},
		{name: "zero value", amount: money.Zero, expected: `{"orderId":1,"amount":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			body, err := json.Marshal(payment{OrderID: 1, Amount: tt.amount})
			require.NoError(t, err)
			require.Equal(t, tt.expected, string(body))
		})
	}
}

func TestAmount_UnmarshalsNumbersAndStrings(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{`{"amount":44.95}`, `{"amount":"44.95"}`} {
		var got payment

		require.NoError(t, json.Unmarshal([]byte(raw), &got), raw)
		require.True(t, money.RequireFromString("44.95").Equal(got.Amount), raw)
	}

	var bad payment
	require.Error(t, json.Unmarshal([]byte(`{"amount":"lots"}`), &bad))
}

func TestAmount_Arithmetic(t *testing.T) {
	t.Parallel()

	price := money.RequireFromString("39.50")

	total := price.MulInt(2).Add(money.RequireFromString("44.95"))

	require.Equal(t, "123.95", total.String())
	require.True(t, total.Equal(money.RequireFromString("123.950")))

	_, err := money.NewFromString("12,50")
	require.Error(t, err)
}
