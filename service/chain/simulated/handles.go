package simulated

import (
	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/asset"
	"github.com/x-xyz/market/domain/market"
	"github.com/x-xyz/market/domain/treasury"
)

type handles struct {
	chain     *Chain
	custodian domain.Address
}

// Handles binds the simulated contracts to custodian.
func (ch *Chain) Handles(custodian domain.Address) market.Chain {
	return &handles{ch, custodian.ToLower()}
}

func (h *handles) Custodian() domain.Address {
	return h.custodian
}

func (h *handles) Payment(token domain.Address) domain.PaymentToken {
	return h.chain.Token(token, "").As(h.custodian)
}

func (h *handles) Unique(c ctx.Ctx, contract domain.Address) (asset.UniqueAssetTransfer, error) {
	h.chain.mu.Lock()
	_, taken := h.chain.countables[contract.ToLower()]
	h.chain.mu.Unlock()
	if taken {
		return nil, domain.ErrUnsupportedAsset
	}
	return h.chain.Unique(contract).As(h.custodian), nil
}

func (h *handles) Countable(c ctx.Ctx, contract domain.Address) (asset.CountableAssetTransfer, error) {
	h.chain.mu.Lock()
	_, taken := h.chain.uniques[contract.ToLower()]
	h.chain.mu.Unlock()
	if taken {
		return nil, domain.ErrUnsupportedAsset
	}
	return h.chain.Countable(contract).As(h.custodian), nil
}

func (h *handles) Pool(router domain.Address) treasury.LiquidityPool {
	return h.chain.Router(router).As(h.custodian)
}
