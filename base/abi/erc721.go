package abi

import "github.com/ethereum/go-ethereum/accounts/abi"

var ERC721TokenABI abi.ABI

var erc721ABI = `[{"type":"function","name":"transferFrom","stateMutability":"nonpayable","inputs":[{"type":"address","name":"from"},{"type":"address","name":"to"},{"type":"uint256","name":"tokenId"}],"outputs":[]},{"type":"function","name":"ownerOf","stateMutability":"view","inputs":[{"type":"uint256","name":"tokenId"}],"outputs":[{"type":"address"}]},{"type":"function","name":"isApprovedForAll","stateMutability":"view","inputs":[{"type":"address","name":"owner"},{"type":"address","name":"operator"}],"outputs":[{"type":"bool"}]},{"type":"function","name":"supportsInterface","stateMutability":"view","inputs":[{"type":"bytes4","name":"interfaceId"}],"outputs":[{"type":"bool"}]},{"type":"event","anonymous":false,"name":"Transfer","inputs":[{"type":"address","name":"from","indexed":true},{"type":"address","name":"to","indexed":true},{"type":"uint256","name":"tokenId","indexed":true}]}]`

func init() {
	ERC721TokenABI = mustParse("erc721", erc721ABI)
}
