package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/vanagogh/mint-gateway/internal/adapter"
	"github.com/vanagogh/mint-gateway/internal/domain"
)

// mintContractABI covers the read-only surface of the mint contract
const mintContractABI = `[
	{"constant":true,"inputs":[],"name":"name","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"description","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"owner","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"maxSupply","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"mintPrice","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"isMintActive","outputs":[{"name":"","type":"bool"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"maxMintPerTx","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"maxMintPerWallet","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"wallet","type":"address"}],"name":"getWalletMintCount","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

// ContractReader reads the fixed set of tracked mint contract fields
//
//go:generate mockgen -source=client.go -destination=../../mocks/contract_reader.go -package=mocks -mock_names=ContractReader=MockContractReader
type ContractReader interface {
	// Name fetches the collection name
	Name(ctx context.Context) (string, error)

	// Description fetches the collection description
	Description(ctx context.Context) (string, error)

	// Owner fetches the contract owner address
	Owner(ctx context.Context) (string, error)

	// TotalSupply fetches the number of tokens minted so far
	TotalSupply(ctx context.Context) (*big.Int, error)

	// MaxSupply fetches the supply cap
	MaxSupply(ctx context.Context) (*big.Int, error)

	// MintPrice fetches the price per token in the smallest currency unit
	MintPrice(ctx context.Context) (*big.Int, error)

	// IsMintActive fetches whether minting is currently enabled
	IsMintActive(ctx context.Context) (bool, error)

	// MaxMintPerTx fetches the per-transaction mint cap
	MaxMintPerTx(ctx context.Context) (*big.Int, error)

	// MaxMintPerWallet fetches the per-wallet mint cap
	MaxMintPerWallet(ctx context.Context) (*big.Int, error)

	// WalletMintCount fetches the number of tokens already minted by account
	WalletMintCount(ctx context.Context, account common.Address) (*big.Int, error)
}

type contractReader struct {
	client   adapter.EthClient
	contract common.Address
	abi      abi.ABI
}

// NewContractReader creates a reader bound to the configured mint contract
func NewContractReader(client adapter.EthClient, contract common.Address) (ContractReader, error) {
	parsed, err := abi.JSON(strings.NewReader(mintContractABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI: %w", err)
	}
	return &contractReader{client: client, contract: contract, abi: parsed}, nil
}

// call packs and executes a read-only contract call and returns the raw result
func (c *contractReader) call(ctx context.Context, method string, args ...interface{}) ([]byte, error) {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, domain.NewChainReadError(method, fmt.Errorf("failed to pack data: %w", err))
	}

	result, err := c.client.CallContract(ctx, ethereum.CallMsg{
		To:   &c.contract,
		Data: data,
	}, nil)
	if err != nil {
		return nil, domain.NewChainReadError(method, fmt.Errorf("failed to call contract: %w", err))
	}

	return result, nil
}

func (c *contractReader) readString(ctx context.Context, method string) (string, error) {
	result, err := c.call(ctx, method)
	if err != nil {
		return "", err
	}

	var value string
	if err := c.abi.UnpackIntoInterface(&value, method, result); err != nil {
		return "", domain.NewChainReadError(method, fmt.Errorf("failed to unpack result: %w", err))
	}
	return value, nil
}

func (c *contractReader) readBigInt(ctx context.Context, method string, args ...interface{}) (*big.Int, error) {
	result, err := c.call(ctx, method, args...)
	if err != nil {
		return nil, err
	}

	var value *big.Int
	if err := c.abi.UnpackIntoInterface(&value, method, result); err != nil {
		return nil, domain.NewChainReadError(method, fmt.Errorf("failed to unpack result: %w", err))
	}
	return value, nil
}

// Name fetches the collection name
func (c *contractReader) Name(ctx context.Context) (string, error) {
	return c.readString(ctx, "name")
}

// Description fetches the collection description
func (c *contractReader) Description(ctx context.Context) (string, error) {
	return c.readString(ctx, "description")
}

// Owner fetches the contract owner address
func (c *contractReader) Owner(ctx context.Context) (string, error) {
	result, err := c.call(ctx, "owner")
	if err != nil {
		return "", err
	}

	var owner common.Address
	if err := c.abi.UnpackIntoInterface(&owner, "owner", result); err != nil {
		return "", domain.NewChainReadError("owner", fmt.Errorf("failed to unpack result: %w", err))
	}
	return owner.Hex(), nil
}

// TotalSupply fetches the number of tokens minted so far
func (c *contractReader) TotalSupply(ctx context.Context) (*big.Int, error) {
	return c.readBigInt(ctx, "totalSupply")
}

// MaxSupply fetches the supply cap
func (c *contractReader) MaxSupply(ctx context.Context) (*big.Int, error) {
	return c.readBigInt(ctx, "maxSupply")
}

// MintPrice fetches the price per token in the smallest currency unit
func (c *contractReader) MintPrice(ctx context.Context) (*big.Int, error) {
	return c.readBigInt(ctx, "mintPrice")
}

// IsMintActive fetches whether minting is currently enabled
func (c *contractReader) IsMintActive(ctx context.Context) (bool, error) {
	result, err := c.call(ctx, "isMintActive")
	if err != nil {
		return false, err
	}

	var active bool
	if err := c.abi.UnpackIntoInterface(&active, "isMintActive", result); err != nil {
		return false, domain.NewChainReadError("isMintActive", fmt.Errorf("failed to unpack result: %w", err))
	}
	return active, nil
}

// MaxMintPerTx fetches the per-transaction mint cap
func (c *contractReader) MaxMintPerTx(ctx context.Context) (*big.Int, error) {
	return c.readBigInt(ctx, "maxMintPerTx")
}

// MaxMintPerWallet fetches the per-wallet mint cap
func (c *contractReader) MaxMintPerWallet(ctx context.Context) (*big.Int, error) {
	return c.readBigInt(ctx, "maxMintPerWallet")
}

// WalletMintCount fetches the number of tokens already minted by account
func (c *contractReader) WalletMintCount(ctx context.Context, account common.Address) (*big.Int, error) {
	return c.readBigInt(ctx, "getWalletMintCount", account)
}
