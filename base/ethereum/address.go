package ethereum

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/x-xyz/market/domain"
)

func GenerateKey() (*ecdsa.PrivateKey, *ecdsa.PublicKey, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, nil, err
	}
	return privateKey, privateKey.Public().(*ecdsa.PublicKey), nil
}

// AddressOf is the lower-cased account address of key.
func AddressOf(key *ecdsa.PrivateKey) domain.Address {
	return domain.FromCommon(crypto.PubkeyToAddress(key.PublicKey))
}

// ParseKey reads a hex private key with or without the 0x prefix.
func ParseKey(hexKey string) (*ecdsa.PrivateKey, error) {
	if len(hexKey) > 1 && hexKey[:2] == "0x" {
		hexKey = hexKey[2:]
	}
	return crypto.HexToECDSA(hexKey)
}
