package application_test

import (
	"context"
	"crypto/sha512"

	"github.com/stretchr/testify/mock"
	"github.com/tdex-network/byron-wallet/pkg/explorer"
	"github.com/tdex-network/byron-wallet/pkg/wallet"
)

// **** Crypto provider ****

type mockCryptoProvider struct {
	mock.Mock
	scheme wallet.DerivationScheme
}

func newMockCryptoProvider(t wallet.SchemeType) *mockCryptoProvider {
	scheme, _ := wallet.NewDerivationScheme(t)
	p := &mockCryptoProvider{scheme: scheme}
	p.On("DeriveXpub", mock.Anything, mock.Anything).Return(deterministicXpub, nil)
	p.On("HDPassphrase", mock.Anything).Return(repeatByte(0x11, 32), nil)
	return p
}

func (m *mockCryptoProvider) DeriveXpub(
	ctx context.Context, path wallet.DerivationPath,
) ([]byte, error) {
	args := m.Called(ctx, path)

	var res []byte
	switch a := args.Get(0).(type) {
	case func(wallet.DerivationPath) []byte:
		res = a(path)
	case []byte:
		res = a
	}
	return res, args.Error(1)
}

func (m *mockCryptoProvider) DerivationScheme() wallet.DerivationScheme {
	return m.scheme
}

func (m *mockCryptoProvider) HDPassphrase(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)

	var res []byte
	if a := args.Get(0); a != nil {
		res = a.([]byte)
	}
	return res, args.Error(1)
}

// deterministicXpub maps every path to a distinct 64 byte key.
func deterministicXpub(path wallet.DerivationPath) []byte {
	sum := sha512.Sum512([]byte(path.String()))
	return sum[:]
}

// **** Usage oracle ****

type mockUsageOracle struct {
	mock.Mock
}

func (m *mockUsageOracle) IsAnyAddressUsed(
	ctx context.Context, addresses []string,
) (bool, error) {
	args := m.Called(ctx, addresses)

	var res bool
	switch a := args.Get(0).(type) {
	case func([]string) bool:
		res = a(addresses)
	case bool:
		res = a
	}
	return res, args.Error(1)
}

func (m *mockUsageOracle) FilterUsedAddresses(
	ctx context.Context, addresses []string,
) (explorer.AddressSet, error) {
	args := m.Called(ctx, addresses)

	var res explorer.AddressSet
	switch a := args.Get(0).(type) {
	case func([]string) explorer.AddressSet:
		res = a(addresses)
	case explorer.AddressSet:
		res = a
	}
	return res, args.Error(1)
}

// newUsageOracle returns an oracle reporting as used only the given
// addresses.
func newUsageOracle(used ...string) *mockUsageOracle {
	usedSet := explorer.NewAddressSet(used...)
	o := &mockUsageOracle{}
	o.On("IsAnyAddressUsed", mock.Anything, mock.Anything).Return(
		func(addresses []string) bool {
			for _, addr := range addresses {
				if usedSet.Has(addr) {
					return true
				}
			}
			return false
		}, nil,
	)
	o.On("FilterUsedAddresses", mock.Anything, mock.Anything).Return(
		func(addresses []string) explorer.AddressSet {
			res := explorer.NewAddressSet()
			for _, addr := range addresses {
				if usedSet.Has(addr) {
					res[addr] = struct{}{}
				}
			}
			return res
		}, nil,
	)
	return o
}

// **** Witness signer ****

type mockWitnessSigner struct {
	mock.Mock
}

func (m *mockWitnessSigner) Sign(
	ctx context.Context, path wallet.DerivationPath, message []byte,
) ([]byte, []byte, error) {
	args := m.Called(ctx, path, message)

	var xpub, sig []byte
	if a := args.Get(0); a != nil {
		xpub = a.([]byte)
	}
	if a := args.Get(1); a != nil {
		sig = a.([]byte)
	}
	return xpub, sig, args.Error(2)
}

// **** Tx broadcaster ****

type mockTxBroadcaster struct {
	mock.Mock
}

func (m *mockTxBroadcaster) SubmitTransaction(
	ctx context.Context, txHex string,
) (string, error) {
	args := m.Called(ctx, txHex)

	var res string
	if a := args.Get(0); a != nil {
		res = a.(string)
	}
	return res, args.Error(1)
}

func repeatByte(b byte, n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = b
	}
	return buf
}
