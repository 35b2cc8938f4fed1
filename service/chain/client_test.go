package chain

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/domain"
)

const totalSupplyAbi = `[{"name":"totalSupply","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]}]`

var token = domain.Address("0x0000000000000000000000000000000000000e01")

// rpcServer answers eth_chainId with BSC and fails every other method.
func rpcServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var msg struct {
			Id     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		_ = json.NewDecoder(r.Body).Decode(&msg)
		w.Header().Set("Content-Type", "application/json")
		if msg.Method == "eth_chainId" {
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":"0x38"}`, msg.Id)
			return
		}
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"error":{"code":-32000,"message":"execution reverted"}}`, msg.Id)
	}))
}

func TestNewClientChecksChainId(t *testing.T) {
	req := require.New(t)
	srv := rpcServer()
	defer srv.Close()

	_, err := NewClient(ctx.Background(), ClientCfg{RpcUrl: srv.URL, ChainId: 1})
	req.Equal(ErrWrongChain, err)

	cl, err := NewClient(ctx.Background(), ClientCfg{RpcUrl: srv.URL, ChainId: 56})
	req.NoError(err)
	req.True(cl.Operator().IsEmpty())
}

func TestCallWrapsBackendError(t *testing.T) {
	req := require.New(t)
	srv := rpcServer()
	defer srv.Close()

	cl, err := NewClient(ctx.Background(), ClientCfg{RpcUrl: srv.URL})
	req.NoError(err)
	parsed, err := abi.JSON(strings.NewReader(totalSupplyAbi))
	req.NoError(err)

	_, err = cl.Call(ctx.Background(), token, parsed, "totalSupply")
	req.Error(err)
	req.Contains(err.Error(), "call totalSupply on "+string(token))
	req.Contains(err.Error(), "execution reverted")

	_, err = cl.Transact(ctx.Background(), token, parsed, "totalSupply")
	req.Equal(ErrNoOperator, err)
}
