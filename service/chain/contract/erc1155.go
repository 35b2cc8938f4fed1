package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	baseabi "github.com/x-xyz/market/base/abi"
	bCtx "github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/journal"
	"github.com/x-xyz/market/base/log"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/service/chain"
)

// Erc1155 is a countable asset collection driven by the operator account.
type Erc1155 struct {
	chainService       chain.Client
	abi                ethabi.ABI
	addr               domain.Address
	erc1155InterfaceId [4]byte
}

func NewErc1155(chainService chain.Client, addr domain.Address) *Erc1155 {
	var interfaceId [4]byte
	copy(interfaceId[:], common.Hex2Bytes("d9b67a26"))
	return &Erc1155{
		chainService:       chainService,
		abi:                baseabi.ERC1155TokenABI,
		addr:               addr,
		erc1155InterfaceId: interfaceId,
	}
}

func (e *Erc1155) Supports1155Interface(c bCtx.Ctx) (bool, error) {
	unpacked, err := e.chainService.Call(c, e.addr, e.abi, "supportsInterface", e.erc1155InterfaceId)
	if err != nil {
		return false, err
	}
	return unpacked[0].(bool), nil
}

func (e *Erc1155) SafeTransferFrom(c bCtx.Ctx, from, to domain.Address, id, amount *big.Int) error {
	return e.SafeBatchTransferFrom(c, from, to, []*big.Int{id}, []*big.Int{amount})
}

func (e *Erc1155) SafeBatchTransferFrom(c bCtx.Ctx, from, to domain.Address, ids, amounts []*big.Int) error {
	if len(ids) != len(amounts) {
		return domain.ErrLengthMismatch
	}
	if len(ids) == 1 {
		_, err := e.chainService.Transact(c, e.addr, e.abi, "safeTransferFrom", from.ToCommon(), to.ToCommon(), ids[0], amounts[0], []byte{})
		if err != nil {
			return err
		}
	} else if _, err := e.chainService.Transact(c, e.addr, e.abi, "safeBatchTransferFrom", from.ToCommon(), to.ToCommon(), ids, amounts, []byte{}); err != nil {
		return err
	}

	if to.Equals(e.chainService.Operator()) {
		journal.OnRevert(c, func() {
			if _, err := e.chainService.Transact(c, e.addr, e.abi, "safeBatchTransferFrom", to.ToCommon(), from.ToCommon(), ids, amounts, []byte{}); err != nil {
				c.WithFields(log.Fields{"err": err, "contract": e.addr, "ids": ids}).Error("failed to return tokens")
			}
		})
	}
	return nil
}

func (e *Erc1155) BalanceOf(c bCtx.Ctx, holder domain.Address, id *big.Int) (*big.Int, error) {
	unpacked, err := e.chainService.Call(c, e.addr, e.abi, "balanceOf", holder.ToCommon(), id)
	if err != nil {
		return nil, err
	}
	return unpacked[0].(*big.Int), nil
}

func (e *Erc1155) IsApprovedForAll(c bCtx.Ctx, owner, operator domain.Address) (bool, error) {
	unpacked, err := e.chainService.Call(c, e.addr, e.abi, "isApprovedForAll", owner.ToCommon(), operator.ToCommon())
	if err != nil {
		return false, err
	}
	return unpacked[0].(bool), nil
}
