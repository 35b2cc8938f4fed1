package usecase

import (
	"math/big"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/log"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/asset"
)

type impl struct {
	custodian domain.Address
	registry  asset.Registry
}

func New(custodian domain.Address, registry asset.Registry) asset.Custody {
	return &impl{
		custodian: custodian.ToLower(),
		registry:  registry,
	}
}

func (im *impl) Custodian() domain.Address {
	return im.custodian
}

func (im *impl) KindOf(c ctx.Ctx, contract domain.Address) (asset.Kind, error) {
	return im.registry.Kind(c, contract)
}

func (im *impl) Authorize(c ctx.Ctx, ref asset.Ref, owner domain.Address) error {
	if ref.Quantity == nil || ref.Quantity.Sign() <= 0 || ref.Id == nil {
		return domain.ErrInvalidQuantity
	}
	switch ref.Kind {
	case asset.KindUnique:
		if ref.Quantity.Cmp(domain.Big1) != 0 {
			return domain.ErrInvalidQuantity
		}
		h, err := im.registry.Unique(c, ref.Contract)
		if err != nil {
			return err
		}
		holder, err := h.OwnerOf(c, ref.Id)
		if err == domain.ErrNotFound {
			return domain.ErrNotAssetOwner
		} else if err != nil {
			c.WithFields(log.Fields{"err": err, "contract": ref.Contract, "id": ref.Id}).Error("OwnerOf failed")
			return err
		}
		if !holder.Equals(owner) {
			return domain.ErrNotAssetOwner
		}
		return im.checkApproval(c, h.IsApprovedForAll, ref, owner)
	case asset.KindCountable:
		h, err := im.registry.Countable(c, ref.Contract)
		if err != nil {
			return err
		}
		bal, err := h.BalanceOf(c, owner, ref.Id)
		if err != nil {
			c.WithFields(log.Fields{"err": err, "contract": ref.Contract, "id": ref.Id}).Error("BalanceOf failed")
			return err
		}
		if bal.Cmp(ref.Quantity) < 0 {
			return domain.ErrNotAssetOwner
		}
		return im.checkApproval(c, h.IsApprovedForAll, ref, owner)
	}
	return domain.ErrUnsupportedAsset
}

func (im *impl) checkApproval(c ctx.Ctx, approved func(ctx.Ctx, domain.Address, domain.Address) (bool, error), ref asset.Ref, owner domain.Address) error {
	ok, err := approved(c, owner, im.custodian)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "contract": ref.Contract, "owner": owner}).Error("IsApprovedForAll failed")
		return err
	}
	if !ok {
		return domain.ErrCustodyNotAuthorized
	}
	return nil
}

func (im *impl) TakeCustody(c ctx.Ctx, ref asset.Ref, from domain.Address) error {
	return im.move(c, ref, from, im.custodian)
}

func (im *impl) ReleaseCustody(c ctx.Ctx, ref asset.Ref, to domain.Address) error {
	return im.move(c, ref, im.custodian, to)
}

// move is a no-op when the asset already sits with to.
func (im *impl) move(c ctx.Ctx, ref asset.Ref, from, to domain.Address) error {
	switch ref.Kind {
	case asset.KindUnique:
		h, err := im.registry.Unique(c, ref.Contract)
		if err != nil {
			return err
		}
		holder, err := h.OwnerOf(c, ref.Id)
		if err != nil && err != domain.ErrNotFound {
			c.WithFields(log.Fields{"err": err, "contract": ref.Contract, "id": ref.Id}).Error("OwnerOf failed")
			return err
		}
		if err == nil && holder.Equals(to) {
			return nil
		}
		if err := h.TransferFrom(c, from, to, ref.Id); err != nil {
			c.WithFields(log.Fields{"err": err, "contract": ref.Contract, "id": ref.Id, "from": from, "to": to}).Error("TransferFrom failed")
			return err
		}
		return nil
	case asset.KindCountable:
		if from.Equals(to) {
			return nil
		}
		h, err := im.registry.Countable(c, ref.Contract)
		if err != nil {
			return err
		}
		if err := h.SafeTransferFrom(c, from, to, ref.Id, ref.Quantity); err != nil {
			c.WithFields(log.Fields{"err": err, "contract": ref.Contract, "id": ref.Id, "from": from, "to": to}).Error("SafeTransferFrom failed")
			return err
		}
		return nil
	}
	return domain.ErrUnsupportedAsset
}

func (im *impl) Holding(c ctx.Ctx, kind asset.Kind, contract domain.Address, id *big.Int) (*big.Int, error) {
	switch kind {
	case asset.KindUnique:
		h, err := im.registry.Unique(c, contract)
		if err != nil {
			return nil, err
		}
		holder, err := h.OwnerOf(c, id)
		if err == domain.ErrNotFound {
			return big.NewInt(0), nil
		} else if err != nil {
			c.WithFields(log.Fields{"err": err, "contract": contract, "id": id}).Error("OwnerOf failed")
			return nil, err
		}
		if holder.Equals(im.custodian) {
			return big.NewInt(1), nil
		}
		return big.NewInt(0), nil
	case asset.KindCountable:
		h, err := im.registry.Countable(c, contract)
		if err != nil {
			return nil, err
		}
		bal, err := h.BalanceOf(c, im.custodian, id)
		if err != nil {
			c.WithFields(log.Fields{"err": err, "contract": contract, "id": id}).Error("BalanceOf failed")
			return nil, err
		}
		return bal, nil
	}
	return nil, domain.ErrUnsupportedAsset
}
