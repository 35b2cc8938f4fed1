package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"

	baseabi "github.com/x-xyz/market/base/abi"
	bCtx "github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/journal"
	"github.com/x-xyz/market/base/log"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/service/chain"
)

// Erc20 is the payment token handle of the operator account.
type Erc20 struct {
	chainService chain.Client
	abi          ethabi.ABI
	addr         domain.Address
}

func NewErc20(chainService chain.Client, addr domain.Address) *Erc20 {
	return &Erc20{
		chainService: chainService,
		abi:          baseabi.ERC20ABI,
		addr:         addr,
	}
}

func (e *Erc20) Address() domain.Address {
	return e.addr
}

// TransferFrom checks balance and allowance first so a short payer fails with a domain
// error instead of a reverted transaction. A pull into the operator account is undone
// by sending the amount back.
func (e *Erc20) TransferFrom(c bCtx.Ctx, payer, payee domain.Address, amount *big.Int) error {
	bal, err := e.BalanceOf(c, payer)
	if err != nil {
		return err
	}
	if bal.Cmp(amount) < 0 {
		return domain.ErrInsufficientFunds
	}
	allowance, err := e.Allowance(c, payer, e.chainService.Operator())
	if err != nil {
		return err
	}
	if allowance.Cmp(amount) < 0 {
		return domain.ErrInsufficientApproval
	}

	if _, err := e.chainService.Transact(c, e.addr, e.abi, "transferFrom", payer.ToCommon(), payee.ToCommon(), amount); err != nil {
		return err
	}
	if payee.Equals(e.chainService.Operator()) {
		refund := domain.Copy(amount)
		journal.OnRevert(c, func() {
			if _, err := e.chainService.Transact(c, e.addr, e.abi, "transfer", payer.ToCommon(), refund); err != nil {
				c.WithFields(log.Fields{"err": err, "payer": payer, "amount": refund}).Error("failed to refund transferFrom")
			}
		})
	}
	return nil
}

// Transfer pays out of the operator balance. It cannot be compensated.
func (e *Erc20) Transfer(c bCtx.Ctx, to domain.Address, amount *big.Int) error {
	bal, err := e.BalanceOf(c, e.chainService.Operator())
	if err != nil {
		return err
	}
	if bal.Cmp(amount) < 0 {
		return domain.ErrInsufficientFunds
	}
	_, err = e.chainService.Transact(c, e.addr, e.abi, "transfer", to.ToCommon(), amount)
	return err
}

func (e *Erc20) Approve(c bCtx.Ctx, spender domain.Address, amount *big.Int) error {
	prev, err := e.Allowance(c, e.chainService.Operator(), spender)
	if err != nil {
		return err
	}
	if _, err := e.chainService.Transact(c, e.addr, e.abi, "approve", spender.ToCommon(), amount); err != nil {
		return err
	}
	journal.OnRevert(c, func() {
		if _, err := e.chainService.Transact(c, e.addr, e.abi, "approve", spender.ToCommon(), prev); err != nil {
			c.WithFields(log.Fields{"err": err, "spender": spender}).Error("failed to restore allowance")
		}
	})
	return nil
}

func (e *Erc20) BalanceOf(c bCtx.Ctx, holder domain.Address) (*big.Int, error) {
	unpacked, err := e.chainService.Call(c, e.addr, e.abi, "balanceOf", holder.ToCommon())
	if err != nil {
		return nil, err
	}
	return unpacked[0].(*big.Int), nil
}

func (e *Erc20) Allowance(c bCtx.Ctx, owner, spender domain.Address) (*big.Int, error) {
	unpacked, err := e.chainService.Call(c, e.addr, e.abi, "allowance", owner.ToCommon(), spender.ToCommon())
	if err != nil {
		return nil, err
	}
	return unpacked[0].(*big.Int), nil
}
