package abi

import "github.com/ethereum/go-ethereum/accounts/abi"

var ERC1155TokenABI abi.ABI

var erc1155ABI = `[{"type":"function","name":"safeTransferFrom","stateMutability":"nonpayable","inputs":[{"type":"address","name":"from"},{"type":"address","name":"to"},{"type":"uint256","name":"id"},{"type":"uint256","name":"amount"},{"type":"bytes","name":"data"}],"outputs":[]},{"type":"function","name":"safeBatchTransferFrom","stateMutability":"nonpayable","inputs":[{"type":"address","name":"from"},{"type":"address","name":"to"},{"type":"uint256[]","name":"ids"},{"type":"uint256[]","name":"amounts"},{"type":"bytes","name":"data"}],"outputs":[]},{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"type":"address","name":"account"},{"type":"uint256","name":"id"}],"outputs":[{"type":"uint256"}]},{"type":"function","name":"isApprovedForAll","stateMutability":"view","inputs":[{"type":"address","name":"account"},{"type":"address","name":"operator"}],"outputs":[{"type":"bool"}]},{"type":"function","name":"supportsInterface","stateMutability":"view","inputs":[{"type":"bytes4","name":"interfaceID"}],"outputs":[{"type":"bool"}]},{"type":"event","anonymous":false,"name":"TransferSingle","inputs":[{"type":"address","name":"_operator","indexed":true},{"type":"address","name":"_from","indexed":true},{"type":"address","name":"_to","indexed":true},{"type":"uint256","name":"_id"},{"type":"uint256","name":"_value"}]}]`

func init() {
	ERC1155TokenABI = mustParse("erc1155", erc1155ABI)
}
