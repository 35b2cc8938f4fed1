package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"
	"sync"
	"time"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/ethereum"
	"github.com/x-xyz/market/base/log"
	"github.com/x-xyz/market/base/metrics"
	"github.com/x-xyz/market/domain"
)

var (
	ErrTxReverted  = errors.New("transaction reverted")
	ErrNoOperator  = errors.New("operator key is not configured")
	ErrWrongChain  = errors.New("rpc serves another chain")
)

const defaultTimeout = 2 * time.Minute

var met = metrics.New("chain")

type ClientCfg struct {
	RpcUrl         string        `mapstructure:"rpcUrl"`
	ChainId        int32         `mapstructure:"chainId"`
	OperatorKey    string        `mapstructure:"operatorKey"`
	MaxConcurrency int           `mapstructure:"maxConcurrency"`
	ConfirmTimeout time.Duration `mapstructure:"confirmTimeout"`
}

// Client talks to one chain on behalf of the operator account, which is the custodian
// of every market bound to it.
type Client interface {
	// Call runs a view method at the latest block.
	Call(c bCtx.Ctx, addr domain.Address, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error)
	// Simulate runs a state changing method as the operator without sending it.
	Simulate(c bCtx.Ctx, addr domain.Address, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error)
	// Transact sends a method signed by the operator and waits for the receipt.
	Transact(c bCtx.Ctx, addr domain.Address, _abi abi.ABI, method string, params ...interface{}) (*types.Receipt, error)
	Operator() domain.Address
}

type clientImpl struct {
	backend  *ethereum.ThrottledClient
	chainId  *big.Int
	key      *ecdsa.PrivateKey
	operator domain.Address
	timeout  time.Duration

	// one pending nonce at a time
	sendMu sync.Mutex
}

func NewClient(c bCtx.Ctx, cfg ClientCfg) (Client, error) {
	raw, err := ethclient.DialContext(c, cfg.RpcUrl)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "url": cfg.RpcUrl}).Error("failed to dial rpc")
		return nil, err
	}
	backend := ethereum.NewThrottledClient(raw, cfg.MaxConcurrency)

	chainId, err := backend.ChainID(c)
	if err != nil {
		c.WithField("err", err).Error("backend.ChainID failed")
		return nil, err
	}
	if cfg.ChainId != 0 && chainId.Int64() != int64(cfg.ChainId) {
		c.WithFields(log.Fields{"want": cfg.ChainId, "got": chainId}).Error("chain id mismatch")
		return nil, ErrWrongChain
	}

	im := &clientImpl{
		backend: backend,
		chainId: chainId,
		timeout: cfg.ConfirmTimeout,
	}
	if im.timeout <= 0 {
		im.timeout = defaultTimeout
	}
	if cfg.OperatorKey != "" {
		key, err := ethereum.ParseKey(cfg.OperatorKey)
		if err != nil {
			c.WithField("err", err).Error("failed to parse operator key")
			return nil, err
		}
		im.key = key
		im.operator = ethereum.AddressOf(key)
	}
	return im, nil
}

func (im *clientImpl) Operator() domain.Address {
	return im.operator
}

func (im *clientImpl) Call(c bCtx.Ctx, addr domain.Address, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	return im.call(c, geth.CallMsg{}, addr, _abi, method, params...)
}

func (im *clientImpl) Simulate(c bCtx.Ctx, addr domain.Address, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	if im.key == nil {
		return nil, ErrNoOperator
	}
	return im.call(c, geth.CallMsg{From: im.operator.ToCommon()}, addr, _abi, method, params...)
}

func (im *clientImpl) call(c bCtx.Ctx, msg geth.CallMsg, addr domain.Address, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	defer met.BumpTime("call.latency", "method", method).End()

	data, err := _abi.Pack(method, params...)
	if err != nil {
		c.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}
	to := addr.ToCommon()
	msg.To = &to
	msg.Data = data
	res, err := im.backend.CallContract(c, msg, nil)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "method": method, "addr": addr}).Warn("client.CallContract failed")
		met.BumpSum("call.err", 1, "method", method)
		return nil, xerrors.Errorf("call %s on %s: %w", method, addr, err)
	}
	unpacked, err := _abi.Unpack(method, res)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "method": method}).Error("abi.Unpack failed")
		return nil, err
	}
	return unpacked, nil
}

func (im *clientImpl) Transact(c bCtx.Ctx, addr domain.Address, _abi abi.ABI, method string, params ...interface{}) (*types.Receipt, error) {
	if im.key == nil {
		return nil, ErrNoOperator
	}
	defer met.BumpTime("transact.latency", "method", method).End()

	im.sendMu.Lock()
	defer im.sendMu.Unlock()

	opts, err := bind.NewKeyedTransactorWithChainID(im.key, im.chainId)
	if err != nil {
		c.WithField("err", err).Error("bind.NewKeyedTransactorWithChainID failed")
		return nil, err
	}
	opts.Context = c

	contract := bind.NewBoundContract(addr.ToCommon(), _abi, im.backend, im.backend, im.backend)
	tx, err := contract.Transact(opts, method, params...)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "method": method, "addr": addr}).Error("contract.Transact failed")
		met.BumpSum("transact.err", 1, "method", method)
		return nil, xerrors.Errorf("transact %s on %s: %w", method, addr, err)
	}

	wc, cancel := context.WithTimeout(c, im.timeout)
	defer cancel()
	receipt, err := bind.WaitMined(wc, im.backend, tx)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "tx": tx.Hash().Hex()}).Error("bind.WaitMined failed")
		return nil, xerrors.Errorf("wait for %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		c.WithFields(log.Fields{"tx": tx.Hash().Hex(), "method": method}).Warn("transaction reverted")
		met.BumpSum("transact.reverted", 1, "method", method)
		return receipt, xerrors.Errorf("%s %s: %w", method, tx.Hash().Hex(), ErrTxReverted)
	}
	return receipt, nil
}
