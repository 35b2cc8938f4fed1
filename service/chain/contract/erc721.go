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

// Erc721 is a unique asset collection driven by the operator account.
type Erc721 struct {
	chainService      chain.Client
	abi               ethabi.ABI
	addr              domain.Address
	erc721InterfaceId [4]byte
}

func NewErc721(chainService chain.Client, addr domain.Address) *Erc721 {
	var interfaceId [4]byte
	copy(interfaceId[:], common.Hex2Bytes("80ac58cd"))
	return &Erc721{
		chainService:      chainService,
		abi:               baseabi.ERC721TokenABI,
		addr:              addr,
		erc721InterfaceId: interfaceId,
	}
}

func (e *Erc721) Supports721Interface(c bCtx.Ctx) (bool, error) {
	unpacked, err := e.chainService.Call(c, e.addr, e.abi, "supportsInterface", e.erc721InterfaceId)
	if err != nil {
		return false, err
	}
	return unpacked[0].(bool), nil
}

func (e *Erc721) TransferFrom(c bCtx.Ctx, from, to domain.Address, id *big.Int) error {
	if _, err := e.chainService.Transact(c, e.addr, e.abi, "transferFrom", from.ToCommon(), to.ToCommon(), id); err != nil {
		return err
	}
	if to.Equals(e.chainService.Operator()) {
		tokenId := domain.Copy(id)
		journal.OnRevert(c, func() {
			if _, err := e.chainService.Transact(c, e.addr, e.abi, "transferFrom", to.ToCommon(), from.ToCommon(), tokenId); err != nil {
				c.WithFields(log.Fields{"err": err, "contract": e.addr, "tokenId": tokenId}).Error("failed to return token")
			}
		})
	}
	return nil
}

func (e *Erc721) OwnerOf(c bCtx.Ctx, id *big.Int) (domain.Address, error) {
	unpacked, err := e.chainService.Call(c, e.addr, e.abi, "ownerOf", id)
	if err != nil {
		return "", err
	}
	return domain.FromCommon(unpacked[0].(common.Address)), nil
}

func (e *Erc721) IsApprovedForAll(c bCtx.Ctx, owner, operator domain.Address) (bool, error) {
	unpacked, err := e.chainService.Call(c, e.addr, e.abi, "isApprovedForAll", owner.ToCommon(), operator.ToCommon())
	if err != nil {
		return false, err
	}
	return unpacked[0].(bool), nil
}
