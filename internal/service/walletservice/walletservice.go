package walletservice

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mkorolev/cryptomart/internal/domain"
	addressrepo "github.com/mkorolev/cryptomart/internal/repo/address-repo"
)

type AddressRepo interface {
	FindByUserAndCurrency(ctx context.Context, userID int, currency string) (*domain.UserAddress, error)
	Save(ctx context.Context, addr *domain.UserAddress) (*domain.UserAddress, error)
}

type BalanceRepo interface {
	GetBalance(ctx context.Context, userID int, currency string) (*domain.WalletBalance, error)
	CreateBalance(ctx context.Context, userID int, currency string) (*domain.WalletBalance, error)
}

// Daemon is the subset of the wallet-rpc client used for address issuance.
type Daemon interface {
	CreateWallet(ctx context.Context, filename, password, language string) error
	OpenWallet(ctx context.Context, filename, password string) error
	GetAddress(ctx context.Context, accountIndex uint32) (string, error)
	QueryKey(ctx context.Context, keyType string) (string, error)
}

type Cipher interface {
	Encode(data string) string
	Decode(msg string) (string, error)
}

type Service struct {
	addressRepo AddressRepo
	balanceRepo BalanceRepo
	daemon      Daemon
	cipher      Cipher
}

func New(addressRepo AddressRepo, balanceRepo BalanceRepo, daemon Daemon, cipher Cipher) *Service {
	return &Service{
		addressRepo: addressRepo,
		balanceRepo: balanceRepo,
		daemon:      daemon,
		cipher:      cipher,
	}
}

// keyBlob is the key material sealed into user_addresses.key_blob_encrypted.
type keyBlob struct {
	WalletFilename string `json:"wallet_filename,omitempty"`
	WalletPassword string `json:"wallet_password,omitempty"`
	ViewKey        string `json:"view_key,omitempty"`
	SpendKey       string `json:"spend_key,omitempty"`
	PrivateKey     string `json:"private_key,omitempty"`
}

// GetOrCreateAddress returns the stored deposit address for (user, currency)
// or issues a new one. The daemon path opens or creates a per-user wallet;
// when the daemon is unreachable a simulated address is fabricated and the
// row is marked simulated so it can never pass for a real one.
func (s *Service) GetOrCreateAddress(ctx context.Context, userID int, currency string) (*domain.UserAddress, error) {
	existing, err := s.addressRepo.FindByUserAndCurrency(ctx, userID, currency)
	if err != nil {
		zap.L().Error("failed to look up user address", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	addr, err := s.issueDaemonAddress(ctx, userID, currency)
	if err != nil {
		zap.L().Warn("wallet daemon path failed, falling back to simulated address",
			zap.Int("userID", userID), zap.Error(err))
		addr, err = s.issueSimulatedAddress(userID, currency)
		if err != nil {
			return nil, err
		}
	}

	saved, err := s.addressRepo.Save(ctx, addr)
	if err != nil {
		if err == addressrepo.ErrAddressExists {
			// lost the race to a concurrent request; the stored row wins
			return s.addressRepo.FindByUserAndCurrency(ctx, userID, currency)
		}
		return nil, err
	}
	zap.L().Info("issued deposit address",
		zap.Int("userID", userID), zap.String("currency", currency), zap.Bool("simulated", saved.Simulated))
	return saved, nil
}

func (s *Service) issueDaemonAddress(ctx context.Context, userID int, currency string) (*domain.UserAddress, error) {
	filename := fmt.Sprintf("user_%d_%s", userID, strings.ToLower(currency))
	password, err := randomHex(16)
	if err != nil {
		return nil, err
	}

	if err := s.daemon.CreateWallet(ctx, filename, password, "English"); err != nil {
		// the wallet may exist from an earlier attempt
		if openErr := s.daemon.OpenWallet(ctx, filename, password); openErr != nil {
			return nil, fmt.Errorf("can't create or open wallet %s: %w", filename, err)
		}
	}

	address, err := s.daemon.GetAddress(ctx, 0)
	if err != nil {
		return nil, err
	}
	viewKey, err := s.daemon.QueryKey(ctx, "view_key")
	if err != nil {
		return nil, err
	}
	spendKey, err := s.daemon.QueryKey(ctx, "spend_key")
	if err != nil {
		return nil, err
	}

	blob, err := json.Marshal(keyBlob{
		WalletFilename: filename,
		WalletPassword: password,
		ViewKey:        viewKey,
		SpendKey:       spendKey,
	})
	if err != nil {
		return nil, err
	}

	return &domain.UserAddress{
		UserID:           userID,
		Currency:         currency,
		Address:          address,
		PublicKey:        viewKey,
		KeyBlobEncrypted: s.cipher.Encode(string(blob)),
		Simulated:        false,
	}, nil
}

// issueSimulatedAddress fabricates an address with the surface shape of a
// Monero standard address. The key pair has no Monero semantics.
func (s *Service) issueSimulatedAddress(userID int, currency string) (*domain.UserAddress, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}

	material := hex.EncodeToString(publicKey) + hex.EncodeToString(privateKey)
	address := "4" + material[:94]

	blob, err := json.Marshal(keyBlob{
		PrivateKey: hex.EncodeToString(privateKey),
	})
	if err != nil {
		return nil, err
	}

	return &domain.UserAddress{
		UserID:           userID,
		Currency:         currency,
		Address:          address,
		PublicKey:        hex.EncodeToString(publicKey),
		KeyBlobEncrypted: s.cipher.Encode(string(blob)),
		Simulated:        true,
	}, nil
}

func (s *Service) GetBalance(ctx context.Context, userID int, currency string) (*domain.WalletBalance, error) {
	balance, err := s.balanceRepo.GetBalance(ctx, userID, currency)
	if err != nil {
		zap.L().Error("failed to get balance", zap.Error(err))
		return nil, err
	}
	if balance == nil {
		return &domain.WalletBalance{
			UserID:   userID,
			Currency: currency,
			Balance:  decimal.Zero,
		}, nil
	}
	return balance, nil
}

func (s *Service) CreateBalance(ctx context.Context, userID int, currency string) (*domain.WalletBalance, error) {
	balance, err := s.balanceRepo.CreateBalance(ctx, userID, currency)
	if err != nil {
		zap.L().Error("failed to create balance", zap.Error(err))
		return nil, err
	}
	return balance, nil
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
