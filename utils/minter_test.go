package utils

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// well-known throwaway development key, never used on a real network
const testPrivateKey = "59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"

const (
	testContract = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	testWallet   = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
)

type fakeBackend struct {
	code        []byte
	codeErr     error
	gasPrice    *big.Int
	estimateErr error
	estimate    uint64
	nonce       uint64
	sendErr     error
	receipt     *types.Receipt

	calls         int
	estimateCalls int
	sendCalls     int
	sentTx        *types.Transaction
}

func (f *fakeBackend) CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error) {
	f.calls++
	return f.code, f.codeErr
}

func (f *fakeBackend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	f.calls++
	if f.gasPrice == nil {
		return big.NewInt(1000000000), nil
	}
	return f.gasPrice, nil
}

func (f *fakeBackend) EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error) {
	f.calls++
	f.estimateCalls++
	return f.estimate, f.estimateErr
}

func (f *fakeBackend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	f.calls++
	return f.nonce, nil
}

func (f *fakeBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	f.calls++
	f.sendCalls++
	f.sentTx = tx
	return f.sendErr
}

func (f *fakeBackend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	f.calls++
	if f.receipt == nil {
		return nil, ethereum.NotFound
	}
	return f.receipt, nil
}

func healthyBackend() *fakeBackend {
	return &fakeBackend{
		code:     []byte{0x60, 0x80},
		estimate: 100000,
		receipt: &types.Receipt{
			Status:  types.ReceiptStatusSuccessful,
			GasUsed: 94213,
		},
	}
}

func testMinter(t *testing.T, backend *fakeBackend) *Minter {
	t.Helper()
	m, err := newMinter(backend, testPrivateKey, 11155111, RetryPolicy{
		MaxAttempts: 3,
		Backoff:     0,
		FallbackGas: 300000,
	})
	require.NoError(t, err)
	return m
}

func TestNewMinterRejectsMalformedKey(t *testing.T) {
	_, err := newMinter(&fakeBackend{}, "not-a-key", 1, RetryPolicy{})
	assert.Error(t, err)

	_, err = newMinter(&fakeBackend{}, "abc123", 1, RetryPolicy{})
	assert.Error(t, err)
}

func TestNewMinterAcceptsPrefixedKey(t *testing.T) {
	m, err := newMinter(&fakeBackend{}, "0x"+testPrivateKey, 1, RetryPolicy{})
	require.NoError(t, err)
	assert.True(t, IsValidAddress(m.AdminAddress()))
}

func TestMintRejectsInvalidRecipientBeforeAnyCall(t *testing.T) {
	backend := healthyBackend()
	m := testMinter(t, backend)

	_, err := m.Mint(context.Background(), testContract, "not-an-address", "ref")
	assert.ErrorIs(t, err, ErrInvalidAddress)
	assert.Zero(t, backend.calls)
}

func TestMintRejectsInvalidContractBeforeAnyCall(t *testing.T) {
	backend := healthyBackend()
	m := testMinter(t, backend)

	_, err := m.Mint(context.Background(), "0x123", testWallet, "ref")
	assert.ErrorIs(t, err, ErrInvalidContract)
	assert.Zero(t, backend.calls)
}

func TestMintRejectsUndeployedContract(t *testing.T) {
	backend := healthyBackend()
	backend.code = nil
	m := testMinter(t, backend)

	_, err := m.Mint(context.Background(), testContract, testWallet, "ref")
	assert.ErrorIs(t, err, ErrContractNotDeployed)
	assert.Zero(t, backend.sendCalls)
}

func TestMintSucceeds(t *testing.T) {
	backend := healthyBackend()
	m := testMinter(t, backend)

	result, err := m.Mint(context.Background(), testContract, testWallet, "badge:1:user:2")
	require.NoError(t, err)

	assert.NotEmpty(t, result.TxHash)
	assert.NotEmpty(t, result.TokenID)
	assert.Equal(t, uint64(94213), result.GasUsed)
	assert.Equal(t, 1, backend.sendCalls)

	// estimate plus 20% buffer
	require.NotNil(t, backend.sentTx)
	assert.Equal(t, uint64(120000), backend.sentTx.Gas())
}

func TestMintUsesFallbackGasWhenEstimationFails(t *testing.T) {
	backend := healthyBackend()
	backend.estimateErr = errors.New("execution reverted")
	m := testMinter(t, backend)

	_, err := m.Mint(context.Background(), testContract, testWallet, "ref")
	require.NoError(t, err)

	assert.Equal(t, 3, backend.estimateCalls)
	require.NotNil(t, backend.sentTx)
	assert.Equal(t, uint64(300000), backend.sentTx.Gas())
}

func TestMintDoesNotRetryTerminalSendError(t *testing.T) {
	backend := healthyBackend()
	backend.sendErr = errors.New("insufficient funds for gas * price + value")
	m := testMinter(t, backend)

	_, err := m.Mint(context.Background(), testContract, testWallet, "ref")
	require.Error(t, err)
	assert.Equal(t, 1, backend.sendCalls)
}

func TestMintRetriesTransientSendError(t *testing.T) {
	backend := healthyBackend()
	backend.sendErr = errors.New("connection reset by peer")
	m := testMinter(t, backend)

	_, err := m.Mint(context.Background(), testContract, testWallet, "ref")
	require.Error(t, err)
	assert.Equal(t, 3, backend.sendCalls)
}

func TestMintRevertedTransaction(t *testing.T) {
	backend := healthyBackend()
	backend.receipt.Status = types.ReceiptStatusFailed
	m := testMinter(t, backend)

	_, err := m.Mint(context.Background(), testContract, testWallet, "ref")
	assert.ErrorIs(t, err, ErrTransactionReverted)
}

func TestMintTimesOutWaitingForReceipt(t *testing.T) {
	backend := healthyBackend()
	backend.receipt = nil
	m := testMinter(t, backend)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Mint(ctx, testContract, testWallet, "ref")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}
