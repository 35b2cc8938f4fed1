package domain

import (
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

var (
	Big0 = big.NewInt(0)
	Big1 = big.NewInt(1)
	Big2 = big.NewInt(2)
)

type ChainId int32

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0 || a.Equals(EmptyAddress)
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

func (a Address) ToCommon() common.Address {
	return common.HexToAddress(string(a))
}

func FromCommon(a common.Address) Address {
	return Address(a.Hex()).ToLower()
}

type Addresses []Address

func (as Addresses) Contains(a Address) bool {
	for _, b := range as {
		if b.Equals(a) {
			return true
		}
	}
	return false
}

func ToAddresses(strs []string) Addresses {
	res := make(Addresses, 0, len(strs))
	for _, s := range strs {
		res = append(res, Address(s).ToLower())
	}
	return res
}

type TxHash string

// Clock returns the ledger time. Every time-window check reads it exactly once per call.
type Clock func() time.Time

func ToBigInt(nums []string) ([]*big.Int, error) {
	var bns []*big.Int
	for _, n := range nums {
		bn, ok := new(big.Int).SetString(n, 10)
		if !ok {
			return nil, ErrInvalidNumberFormat
		}
		bns = append(bns, bn)
	}
	return bns, nil
}

// ParseAmount parses a non-negative base-10 integer amount.
func ParseAmount(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 {
		return nil, ErrInvalidNumberFormat
	}
	return n, nil
}

// AmountString renders nil as "0".
func AmountString(n *big.Int) string {
	if n == nil {
		return "0"
	}
	return n.String()
}

// Copy returns a detached copy so callers never alias stored amounts.
func Copy(n *big.Int) *big.Int {
	if n == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(n)
}
