package ethereum

import (
	"errors"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	ErrSignatureLength = errors.New("signature must be 65 bytes long")
	ErrSignatureV      = errors.New("invalid Ethereum signature (V is not 27 or 28)")
)

// ValidateMsgSignature checks a personal_sign signature of message.
func ValidateMsgSignature(message []byte, signature, signer string) (bool, error) {
	return validateSignature(accounts.TextHash(message), signature, signer)
}

// ValidateHashSignature checks a signature of an already hashed payload.
func ValidateHashSignature(hash []byte, signature, signer string) (bool, error) {
	return validateSignature(hash, signature, signer)
}

func validateSignature(hash []byte, signature, signer string) (bool, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return false, err
	}
	recovered, err := ecRecover(hash, sig)
	if err != nil {
		return false, err
	}
	return recovered == common.HexToAddress(signer), nil
}

// ecRecover mirrors personal_ecRecover; sig is modified in place.
func ecRecover(hash []byte, sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, ErrSignatureLength
	}

	// wallets emit V as 0/1 or 27/28
	if sig[crypto.RecoveryIDOffset] < 27 {
		sig[crypto.RecoveryIDOffset] += 27
	}
	if v := sig[crypto.RecoveryIDOffset]; v != 27 && v != 28 {
		return common.Address{}, ErrSignatureV
	}
	sig[crypto.RecoveryIDOffset] -= 27

	pub, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(*pub), nil
}
