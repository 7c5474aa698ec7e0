package utils

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

var (
	// ErrInvalidAddress is returned before any network call when the
	// recipient wallet address is not a valid hex address
	ErrInvalidAddress = errors.New("invalid wallet address")

	// ErrInvalidContract is returned when the badge has no usable
	// contract address configured
	ErrInvalidContract = errors.New("invalid contract address")

	// ErrContractNotDeployed is returned when no code exists at the
	// configured contract address
	ErrContractNotDeployed = errors.New("contract does not exist at the specified address")

	// ErrTransactionReverted is returned when the mint transaction was
	// mined but reverted on chain
	ErrTransactionReverted = errors.New("mint transaction reverted")
)

var privateKeyPattern = regexp.MustCompile(`^[0-9a-fA-F]{64}$`)

// minimal ERC721 fragment; the badge flow only ever calls safeMint(to)
const erc721MintABI = `[{"inputs":[{"internalType":"address","name":"to","type":"address"}],"name":"safeMint","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"nonpayable","type":"function"}]`

// ethBackend is the subset of the Ethereum client the minter uses.
// *ethclient.Client satisfies it; tests provide a stub.
type ethBackend interface {
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// RetryPolicy bounds the retry loops around gas estimation and
// transaction submission.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
	FallbackGas uint64 // used when every estimation attempt fails
}

// MintResult describes a confirmed on-chain mint
type MintResult struct {
	TxHash  string
	TokenID string
	GasUsed uint64
}

// Minter signs and submits badge mint transactions with the admin key
type Minter struct {
	backend ethBackend
	key     *ecdsa.PrivateKey
	from    common.Address
	chainID *big.Int
	retry   RetryPolicy
}

// NewMinter dials the configured provider and loads the admin signing key
func NewMinter(providerURL, privateKeyHex string, chainID int64, retry RetryPolicy) (*Minter, error) {
	client, err := ethclient.Dial(providerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Ethereum provider: %w", err)
	}
	return newMinter(client, privateKeyHex, chainID, retry)
}

func newMinter(backend ethBackend, privateKeyHex string, chainID int64, retry RetryPolicy) (*Minter, error) {
	cleanKey := strings.TrimPrefix(privateKeyHex, "0x")
	if !privateKeyPattern.MatchString(cleanKey) {
		return nil, errors.New("invalid admin private key format")
	}

	key, err := crypto.HexToECDSA(cleanKey)
	if err != nil {
		return nil, fmt.Errorf("invalid admin private key: %w", err)
	}

	if retry.MaxAttempts < 1 {
		retry.MaxAttempts = 1
	}

	return &Minter{
		backend: backend,
		key:     key,
		from:    crypto.PubkeyToAddress(key.PublicKey),
		chainID: big.NewInt(chainID),
		retry:   retry,
	}, nil
}

// AdminAddress returns the signing wallet's address
func (m *Minter) AdminAddress() string {
	return m.from.Hex()
}

// IsValidAddress reports whether s is a well-formed hex address
func IsValidAddress(s string) bool {
	return common.IsHexAddress(s)
}

// Mint calls safeMint(to) on the badge contract and waits for the
// transaction to be mined. All address and key validation happens
// before the first network call; on any failure no result is returned
// and nothing must be recorded locally.
func (m *Minter) Mint(ctx context.Context, contractAddress, toAddress, reference string) (*MintResult, error) {
	if !common.IsHexAddress(toAddress) {
		return nil, ErrInvalidAddress
	}
	if !common.IsHexAddress(contractAddress) {
		return nil, ErrInvalidContract
	}

	contract := common.HexToAddress(contractAddress)
	to := common.HexToAddress(toAddress)

	code, err := m.backend.CodeAt(ctx, contract, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check contract code: %w", err)
	}
	if len(code) == 0 {
		return nil, ErrContractNotDeployed
	}

	gasPrice, err := m.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gas price: %w", err)
	}
	// 20% buffer over the suggested price
	gasPrice = new(big.Int).Div(new(big.Int).Mul(gasPrice, big.NewInt(120)), big.NewInt(100))

	parsed, err := abi.JSON(strings.NewReader(erc721MintABI))
	if err != nil {
		return nil, err
	}
	data, err := parsed.Pack("safeMint", to)
	if err != nil {
		return nil, err
	}

	gas := m.estimateGas(ctx, ethereum.CallMsg{
		From:     m.from,
		To:       &contract,
		GasPrice: gasPrice,
		Data:     data,
	})

	nonce, err := m.backend.PendingNonceAt(ctx, m.from)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account nonce: %w", err)
	}

	tx := types.NewTransaction(nonce, contract, big.NewInt(0), gas, gasPrice, data)
	signed, err := types.SignTx(tx, types.NewEIP155Signer(m.chainID), m.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := m.send(ctx, signed); err != nil {
		return nil, err
	}

	receipt, err := m.waitMined(ctx, signed.Hash())
	if err != nil {
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, ErrTransactionReverted
	}

	tokenID := new(big.Int).SetBytes(crypto.Keccak256(
		[]byte(fmt.Sprintf("%s:%d", reference, time.Now().UnixNano()))))

	return &MintResult{
		TxHash:  signed.Hash().Hex(),
		TokenID: tokenID.String(),
		GasUsed: receipt.GasUsed,
	}, nil
}

// estimateGas retries estimation up to the policy bound and falls back
// to the configured gas ceiling when every attempt fails. Estimation is
// a read, so retrying is always safe.
func (m *Minter) estimateGas(ctx context.Context, call ethereum.CallMsg) uint64 {
	for attempt := 1; attempt <= m.retry.MaxAttempts; attempt++ {
		gas, err := m.backend.EstimateGas(ctx, call)
		if err == nil {
			// 20% buffer over the estimate
			return gas * 120 / 100
		}
		log.Printf("[MINTER] gas estimation attempt %d failed: %v", attempt, err)
		if attempt < m.retry.MaxAttempts {
			time.Sleep(m.retry.Backoff)
		}
	}
	log.Printf("[MINTER] using fallback gas limit: %d", m.retry.FallbackGas)
	return m.retry.FallbackGas
}

// send submits the signed transaction with bounded retries. The chain's
// nonce handling deduplicates a replayed submission, so retrying a
// transient failure cannot double-mint. Terminal errors abort
// immediately.
func (m *Minter) send(ctx context.Context, tx *types.Transaction) error {
	var lastErr error
	for attempt := 1; attempt <= m.retry.MaxAttempts; attempt++ {
		lastErr = m.backend.SendTransaction(ctx, tx)
		if lastErr == nil {
			return nil
		}
		if isTerminalSendError(lastErr) {
			return fmt.Errorf("mint transaction rejected: %w", lastErr)
		}
		log.Printf("[MINTER] transaction attempt %d failed: %v", attempt, lastErr)
		if attempt < m.retry.MaxAttempts {
			time.Sleep(m.retry.Backoff)
		}
	}
	return fmt.Errorf("failed to send mint transaction after %d attempts: %w", m.retry.MaxAttempts, lastErr)
}

func isTerminalSendError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "insufficient funds") ||
		strings.Contains(msg, "nonce too low")
}

// waitMined polls for the transaction receipt until the context expires
func (m *Minter) waitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		receipt, err := m.backend.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("failed to fetch transaction receipt: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("timed out waiting for transaction %s to be mined", hash.Hex())
		case <-ticker.C:
		}
	}
}
