package walletrpc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rpcCall struct {
	Jsonrpc string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

func newTestServer(t *testing.T, handler func(call rpcCall) (any, *rpcError)) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/json_rpc", r.URL.Path)

		var call rpcCall
		require.NoError(t, json.NewDecoder(r.Body).Decode(&call))
		require.Equal(t, "2.0", call.Jsonrpc)

		result, rpcErr := handler(call)
		resp := map[string]any{"jsonrpc": "2.0", "id": call.ID}
		if rpcErr != nil {
			resp["error"] = rpcErr
		} else {
			resp["result"] = result
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestGetAddress(t *testing.T) {
	srv := newTestServer(t, func(call rpcCall) (any, *rpcError) {
		assert.Equal(t, "get_address", call.Method)
		return map[string]any{"address": "4AdUndXHHZ6cfufTMvppY6JwXNouMBzSkbLYfpAV5Usx3skxNgYeYTRj5UzqtReoS44qo9mtmXCqY45DJ852K5Jv2684Rge"}, nil
	})
	defer srv.Close()

	client := New(srv.URL, "user", "pass")
	address, err := client.GetAddress(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, byte('4'), address[0])
}

func TestCreateAddress(t *testing.T) {
	srv := newTestServer(t, func(call rpcCall) (any, *rpcError) {
		assert.Equal(t, "create_address", call.Method)

		var params struct {
			AccountIndex uint32 `json:"account_index"`
			Label        string `json:"label"`
		}
		require.NoError(t, json.Unmarshal(call.Params, &params))
		assert.Equal(t, uint32(0), params.AccountIndex)
		assert.Equal(t, "deposit", params.Label)

		return map[string]any{
			"address":       "8BnRai3GLkzVSg1QN2vXdgpuCRKZ1GsDJHQGJfqANhNCcySHBtB9dSH5417QvKnHPBoHvqj9kojJcfrYDRcTD3Zx2zqUExr",
			"address_index": 3,
		}, nil
	})
	defer srv.Close()

	client := New(srv.URL, "", "")
	address, index, err := client.CreateAddress(context.Background(), 0, "deposit")
	require.NoError(t, err)
	assert.Equal(t, byte('8'), address[0])
	assert.Equal(t, uint32(3), index)
}

func TestGetBalance(t *testing.T) {
	srv := newTestServer(t, func(call rpcCall) (any, *rpcError) {
		assert.Equal(t, "get_balance", call.Method)
		return map[string]any{
			"balance":          3_700_000_000_000,
			"unlocked_balance": 1_200_000_000_000,
		}, nil
	})
	defer srv.Close()

	client := New(srv.URL, "", "")
	balance, err := client.GetBalance(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(3_700_000_000_000), balance.Balance)
	assert.Equal(t, uint64(1_200_000_000_000), balance.UnlockedBalance)
	assert.True(t, AtomicToDecimal(balance.UnlockedBalance).Equal(decimal.RequireFromString("1.2")))
}

func TestTransfer(t *testing.T) {
	srv := newTestServer(t, func(call rpcCall) (any, *rpcError) {
		assert.Equal(t, "transfer", call.Method)

		var params TransferParams
		require.NoError(t, json.Unmarshal(call.Params, &params))
		require.Len(t, params.Destinations, 1)
		assert.Equal(t, uint64(2_500_000_000_000), params.Destinations[0].Amount)
		assert.Equal(t, uint32(DefaultRingSize), params.RingSize)

		return map[string]any{
			"tx_hash": "c60a64ddae46154a75af65544f73a7064c76dc13140bc71e7ce552a17a50c417",
			"amount":  2_500_000_000_000,
			"fee":     30_000_000_000,
		}, nil
	})
	defer srv.Close()

	client := New(srv.URL, "", "")
	result, err := client.Transfer(context.Background(), TransferParams{
		Destinations: []Destination{{Amount: 2_500_000_000_000, Address: "4AdUnd..."}},
	})
	require.NoError(t, err)
	assert.Equal(t, "c60a64ddae46154a75af65544f73a7064c76dc13140bc71e7ce552a17a50c417", result.TxHash)
	assert.Equal(t, uint64(30_000_000_000), result.Fee)
}

func TestRPCErrorIsSurfaced(t *testing.T) {
	srv := newTestServer(t, func(call rpcCall) (any, *rpcError) {
		return nil, &rpcError{Code: -21, Message: "Wallet already exists."}
	})
	defer srv.Close()

	client := New(srv.URL, "", "")
	err := client.CreateWallet(context.Background(), "user_1_xmr", "pw", "English")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Wallet already exists.")
	assert.NotErrorIs(t, err, ErrDaemonUnavailable)
}

func TestUnreachableDaemon(t *testing.T) {
	client := New("http://127.0.0.1:1", "", "")
	_, err := client.GetBalance(context.Background(), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDaemonUnavailable)
}

func TestValidateAddress(t *testing.T) {
	srv := newTestServer(t, func(call rpcCall) (any, *rpcError) {
		var params struct {
			Address string `json:"address"`
		}
		require.NoError(t, json.Unmarshal(call.Params, &params))
		return map[string]any{"valid": params.Address[0] == '4'}, nil
	})
	defer srv.Close()

	client := New(srv.URL, "", "")

	valid, err := client.ValidateAddress(context.Background(), "4AdUnd")
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = client.ValidateAddress(context.Background(), "bogus")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestAtomicConversion(t *testing.T) {
	tests := []struct {
		name   string
		xmr    string
		atomic uint64
	}{
		{
			name:   "One XMR",
			xmr:    "1",
			atomic: 1_000_000_000_000,
		},
		{
			name:   "Fractional",
			xmr:    "0.5",
			atomic: 500_000_000_000,
		},
		{
			name:   "Sub-atomic truncated",
			xmr:    "0.0000000000001",
			atomic: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.xmr)
			assert.Equal(t, tt.atomic, DecimalToAtomic(amount))
		})
	}

	back := AtomicToDecimal(2_500_000_000_000)
	assert.True(t, back.Equal(decimal.RequireFromString("2.5")))
}
