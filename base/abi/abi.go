package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

func mustParse(name, json string) abi.ABI {
	_abi, err := abi.JSON(strings.NewReader(json))
	if err != nil {
		panic("Failed to parse " + name + " abi: " + err.Error())
	}
	return _abi
}
