package payload

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFields(t *testing.T) {
	f, err := Unmarshal([]byte(`{
		"account_id": "alice.near",
		"amount": "340282366920938463463374607431768211455",
		"block": 1234,
		"active": true,
		"config": {"reserve_ratio": 2000},
		"assets": [{"token_id": "wrap.near"}, {"token_id": "usn"}]
	}`))
	require.NoError(t, err)

	account, err := f.String("account_id")
	require.NoError(t, err)
	require.Equal(t, "alice.near", account)

	amount, err := f.Decimal("amount")
	require.NoError(t, err)
	require.Equal(t, "340282366920938463463374607431768211455", amount.String())

	block, err := f.Int64("block")
	require.NoError(t, err)
	require.Equal(t, int64(1234), block)

	active, err := f.Bool("active")
	require.NoError(t, err)
	require.True(t, active)

	config, err := f.Object("config")
	require.NoError(t, err)
	ratio, err := config.Int64("reserve_ratio")
	require.NoError(t, err)
	require.Equal(t, int64(2000), ratio)

	assets, err := f.Array("assets")
	require.NoError(t, err)
	require.Len(t, assets, 2)
}

func TestFieldErrors(t *testing.T) {
	f, err := Unmarshal([]byte(`{"amount": "not-a-number", "assets": [1, 2]}`))
	require.NoError(t, err)

	_, err = f.String("account_id")
	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	require.Equal(t, "account_id", fieldErr.Key)

	_, err = f.Decimal("amount")
	require.ErrorAs(t, err, &fieldErr)
	require.Equal(t, "amount", fieldErr.Key)

	_, err = f.Array("assets")
	require.Error(t, err)
}
