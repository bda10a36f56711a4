package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/vanagogh/mint-gateway/internal/adapter"
	"github.com/vanagogh/mint-gateway/internal/domain"
)

// writeABI covers the two value-bearing calls the gateway submits
const writeABI = `[
	{"inputs":[{"name":"quantity","type":"uint256"}],"name":"mint","outputs":[],"stateMutability":"payable","type":"function"},
	{"inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"tokenId","type":"uint256"}],"name":"transferFrom","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`

// Wallet signs and submits transactions. Implementations may be backed by a
// remote signer that can decline a signature request; such declines surface
// as errors matching domain.IsUserRejection.
//
//go:generate mockgen -source=wallet.go -destination=../mocks/wallet.go -package=mocks -mock_names=Wallet=MockWallet
type Wallet interface {
	// Address returns the connected account address
	Address() common.Address

	// SubmitMint submits mint(quantity) with the given value attached
	SubmitMint(ctx context.Context, quantity *big.Int, value *big.Int) (common.Hash, error)

	// SubmitTransfer submits transferFrom(wallet, to, tokenID) against contract
	SubmitTransfer(ctx context.Context, contract common.Address, to common.Address, tokenID *big.Int) (common.Hash, error)
}

type keyedWallet struct {
	client       adapter.EthClient
	key          *ecdsa.PrivateKey
	address      common.Address
	chainID      *big.Int
	mintContract common.Address
	abi          abi.ABI
}

// NewKeyedWallet creates a wallet backed by a local private key
func NewKeyedWallet(client adapter.EthClient, privateKeyHex string, chain domain.Chain, mintContract common.Address) (Wallet, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	parsed, err := abi.JSON(strings.NewReader(writeABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI: %w", err)
	}

	return &keyedWallet{
		client:       client,
		key:          key,
		address:      crypto.PubkeyToAddress(key.PublicKey),
		chainID:      new(big.Int).SetUint64(uint64(chain)),
		mintContract: mintContract,
		abi:          parsed,
	}, nil
}

// Address returns the connected account address
func (w *keyedWallet) Address() common.Address {
	return w.address
}

// SubmitMint submits mint(quantity) with the given value attached
func (w *keyedWallet) SubmitMint(ctx context.Context, quantity *big.Int, value *big.Int) (common.Hash, error) {
	data, err := w.abi.Pack("mint", quantity)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to pack mint call: %w", err)
	}
	return w.submit(ctx, w.mintContract, data, value)
}

// SubmitTransfer submits transferFrom(wallet, to, tokenID) against contract
func (w *keyedWallet) SubmitTransfer(ctx context.Context, contract common.Address, to common.Address, tokenID *big.Int) (common.Hash, error) {
	data, err := w.abi.Pack("transferFrom", w.address, to, tokenID)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to pack transferFrom call: %w", err)
	}
	return w.submit(ctx, contract, data, nil)
}

// submit builds, signs and sends a transaction carrying data to contract
func (w *keyedWallet) submit(ctx context.Context, contract common.Address, data []byte, value *big.Int) (common.Hash, error) {
	nonce, err := w.client.PendingNonceAt(ctx, w.address)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := w.client.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to get gas price: %w", err)
	}

	gasLimit, err := w.client.EstimateGas(ctx, ethereum.CallMsg{
		From:  w.address,
		To:    &contract,
		Value: value,
		Data:  data,
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to estimate gas: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gasLimit,
		To:       &contract,
		Value:    value,
		Data:     data,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(w.chainID), w.key)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := w.client.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("failed to send transaction: %w", err)
	}

	return signed.Hash(), nil
}
