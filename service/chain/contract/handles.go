package contract

import (
	bCtx "github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/log"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/asset"
	"github.com/x-xyz/market/domain/market"
	"github.com/x-xyz/market/domain/treasury"
	"github.com/x-xyz/market/service/chain"
)

type handles struct {
	client chain.Client
}

// NewHandles binds contracts to the operator of client, which acts as custodian.
func NewHandles(client chain.Client) market.Chain {
	return &handles{client}
}

func (h *handles) Custodian() domain.Address {
	return h.client.Operator()
}

func (h *handles) Payment(token domain.Address) domain.PaymentToken {
	return NewErc20(h.client, token)
}

func (h *handles) Unique(c bCtx.Ctx, contract domain.Address) (asset.UniqueAssetTransfer, error) {
	e := NewErc721(h.client, contract)
	if ok, err := e.Supports721Interface(c); err != nil {
		c.WithFields(log.Fields{"err": err, "contract": contract}).Error("Supports721Interface failed")
		return nil, err
	} else if !ok {
		return nil, domain.ErrUnsupportedAsset
	}
	return e, nil
}

func (h *handles) Countable(c bCtx.Ctx, contract domain.Address) (asset.CountableAssetTransfer, error) {
	e := NewErc1155(h.client, contract)
	if ok, err := e.Supports1155Interface(c); err != nil {
		c.WithFields(log.Fields{"err": err, "contract": contract}).Error("Supports1155Interface failed")
		return nil, err
	} else if !ok {
		return nil, domain.ErrUnsupportedAsset
	}
	return e, nil
}

func (h *handles) Pool(router domain.Address) treasury.LiquidityPool {
	return NewRouter(h.client, router)
}
