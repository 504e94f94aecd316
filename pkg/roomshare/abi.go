package roomshare

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// The contract's interface descriptor. The embedded copy matches the
// deployed RoomShare contract; a different build can be pointed at via the
// abi_path config key.
//
//go:embed abi.json
var embeddedABI []byte

// LoadABI parses the contract interface descriptor. An empty path selects
// the embedded descriptor.
func LoadABI(path string) (abi.ABI, error) {
	raw := embeddedABI
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return abi.ABI{}, fmt.Errorf("roomshare.LoadABI: %w", err)
		}
		raw = data
	}
	parsed, err := abi.JSON(bytes.NewReader(raw))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("roomshare.LoadABI: parse descriptor: %w", err)
	}
	return parsed, nil
}
