// Package chainaddr defines the EVM-side byte identifiers shared across the
// logger: chain ids, 20-byte addresses and 32-byte transaction hashes.
package chainaddr

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Address is a 20-byte EVM address, aliasing go-ethereum's representation so
// that hex parsing/formatting and checksum rules match the chains the
// minters observe.
type Address = common.Address

// Hash is a 32-byte value, used for transaction hashes and block hashes.
type Hash = common.Hash

// NativeAddress is the sentinel ERC-20 contract address that denotes a
// chain's native token rather than a real token contract.
var NativeAddress = Address{}

// IsNative reports whether addr is the native-token sentinel.
func IsNative(addr Address) bool {
	return addr == NativeAddress
}

// ParseAddress parses a 0x-prefixed 20-byte hex address.
func ParseAddress(s string) (Address, error) {
	if !common.IsHexAddress(s) {
		return Address{}, fmt.Errorf("chainaddr: invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

// ParseHash parses a 0x-prefixed 32-byte hex hash.
func ParseHash(s string) (Hash, error) {
	s = strings.TrimPrefix(s, "0x")
	if len(s) != 64 {
		return Hash{}, fmt.Errorf("chainaddr: invalid hash %q", s)
	}
	return common.HexToHash(s), nil
}
