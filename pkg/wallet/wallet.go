// Package wallet adapts a local go-ethereum keystore into the capability
// surface the client needs: list accounts, select one by index, query its
// balance, and sign transactions. It stands in for the browser wallet the
// contract was originally driven from.
package wallet

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"

	"github.com/BecomeWeasel/dapp-project/pkg/domain"
)

// node is the subset of the RPC client the provider reads from.
type node interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

// Provider is a keystore-backed wallet bound to one RPC endpoint.
type Provider struct {
	ks       *keystore.KeyStore
	node     node
	expected *big.Int // chain id the contract is deployed on
}

// NewProvider opens (or creates) the keystore directory and binds it to the
// given node. expectedChainID is checked at login; a mismatch warns but
// does not block.
func NewProvider(keystoreDir string, n node, expectedChainID uint64) *Provider {
	return &Provider{
		ks:       keystore.NewKeyStore(keystoreDir, keystore.StandardScryptN, keystore.StandardScryptP),
		node:     n,
		expected: new(big.Int).SetUint64(expectedChainID),
	}
}

// Accounts lists the keystore accounts in stable (file) order.
func (p *Provider) Accounts() []common.Address {
	accs := p.ks.Accounts()
	addrs := make([]common.Address, len(accs))
	for i, a := range accs {
		addrs[i] = a.Address
	}
	return addrs
}

// AccountAt selects the account at the given index.
func (p *Provider) AccountAt(index int) (common.Address, error) {
	accs := p.ks.Accounts()
	if len(accs) == 0 {
		return common.Address{}, fmt.Errorf("wallet.AccountAt: keystore holds no accounts")
	}
	if index < 0 || index >= len(accs) {
		return common.Address{}, fmt.Errorf("wallet.AccountAt: index %d out of range (have %d accounts)", index, len(accs))
	}
	return accs[index].Address, nil
}

// Unlock decrypts the account's key for the life of the process.
func (p *Provider) Unlock(addr common.Address, passphrase string) error {
	if err := p.ks.Unlock(accounts.Account{Address: addr}, passphrase); err != nil {
		return fmt.Errorf("wallet.Unlock: %w", err)
	}
	return nil
}

// Balance returns the account's balance in wei at the latest block.
func (p *Provider) Balance(ctx context.Context, addr common.Address) (*big.Int, error) {
	bal, err := p.node.BalanceAt(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("wallet.Balance: %w", err)
	}
	return bal, nil
}

// VerifyNetwork compares the node's chain id against the expected one.
// A mismatch returns a non-empty warning; only an RPC failure is an error.
func (p *Provider) VerifyNetwork(ctx context.Context) (string, error) {
	id, err := p.node.ChainID(ctx)
	if err != nil {
		return "", fmt.Errorf("wallet.VerifyNetwork: %w", err)
	}
	if id.Cmp(p.expected) != 0 {
		return fmt.Sprintf("connected to chain %s, expected %s — switch networks", id, p.expected), nil
	}
	return "", nil
}

// TransactOpts builds signing options for the unlocked account, using the
// chain id the node actually reports.
func (p *Provider) TransactOpts(ctx context.Context, addr common.Address) (*bind.TransactOpts, error) {
	id, err := p.node.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("wallet.TransactOpts: %w", err)
	}
	opts, err := bind.NewKeyStoreTransactorWithChainID(p.ks, accounts.Account{Address: addr}, id)
	if err != nil {
		return nil, fmt.Errorf("wallet.TransactOpts: %w", err)
	}
	opts.Context = ctx
	return opts, nil
}

// Login runs the whole sign-in sequence: pick the account at index, unlock
// it, check the network (warning only), and fetch the starting balance.
// A later login simply produces a new session; nothing guards against it.
func (p *Provider) Login(ctx context.Context, index int, passphrase string) (*domain.Session, error) {
	addr, err := p.AccountAt(index)
	if err != nil {
		return nil, err
	}
	if err := p.Unlock(addr, passphrase); err != nil {
		return nil, err
	}

	sess := domain.NewSession(index, addr)
	warning, err := p.VerifyNetwork(ctx)
	if err != nil {
		return nil, err
	}
	sess.NetworkWarning = warning

	bal, err := p.Balance(ctx, addr)
	if err != nil {
		return nil, err
	}
	sess.Balance = bal

	log.Debug().Str("address", addr.Hex()).Int("index", index).Msg("session started")
	return sess, nil
}
