// Package browser hands addresses and transactions off to the block
// explorer in the user's default browser.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/ethereum/go-ethereum/common"
)

// Explorer builds block-explorer URLs rooted at a base like
// https://sepolia.etherscan.io.
type Explorer struct {
	baseURL string
}

func NewExplorer(baseURL string) Explorer {
	return Explorer{baseURL: baseURL}
}

// AddressURL links to the account page.
func (e Explorer) AddressURL(addr common.Address) string {
	return fmt.Sprintf("%s/address/%s", e.baseURL, addr.Hex())
}

// TxURL links to the transaction page.
func (e Explorer) TxURL(hash common.Hash) string {
	return fmt.Sprintf("%s/tx/%s", e.baseURL, hash.Hex())
}

// OpenAddress opens the account page in the default browser.
func (e Explorer) OpenAddress(addr common.Address) error {
	return OpenURL(e.AddressURL(addr))
}

// OpenTx opens the transaction page in the default browser.
func (e Explorer) OpenTx(hash common.Hash) error {
	return OpenURL(e.TxURL(hash))
}

// OpenURL opens any URL in the user's default browser.
func OpenURL(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "linux":
		return exec.Command("xdg-open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
}
