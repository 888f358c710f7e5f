package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger/domain/entities"
	domainerrors "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger/domain/errors"
)

// accountState carries its own mutex so mutations on different accounts
// proceed in parallel while credit/debit on one account stay serialized.
type accountState struct {
	mu      sync.Mutex
	account entities.Account
	history []entities.Transaction
}

type Store struct {
	mu       sync.RWMutex
	accounts map[string]*accountState
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[string]*accountState),
	}
}

func (s *Store) CreateAccount(_ context.Context, account entities.Account) error {
	accountID := strings.TrimSpace(account.ID)
	if accountID == "" {
		return domainerrors.ErrInvalidAccountID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[accountID]; exists {
		return domainerrors.ErrAccountExists
	}
	account.ID = accountID
	s.accounts[accountID] = &accountState{account: account}
	return nil
}

func (s *Store) GetAccount(_ context.Context, accountID string) (entities.Account, error) {
	state, err := s.state(accountID)
	if err != nil {
		return entities.Account{}, err
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.account, nil
}

func (s *Store) AppendTransaction(_ context.Context, tx entities.Transaction) (entities.Account, error) {
	state, err := s.state(tx.AccountID)
	if err != nil {
		return entities.Account{}, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	if tx.Kind == entities.TransactionKindDebit && state.account.Balance.LessThan(tx.Amount) {
		return entities.Account{}, domainerrors.ErrInsufficientFunds
	}
	state.account.Balance = state.account.Balance.Add(tx.SignedAmount())
	state.account.UpdatedAt = tx.CreatedAt
	state.history = append(state.history, tx)
	return state.account, nil
}

func (s *Store) ListTransactions(
	_ context.Context,
	accountID string,
	limit int,
	offset int,
) ([]entities.Transaction, error) {
	state, err := s.state(accountID)
	if err != nil {
		return nil, err
	}

	state.mu.Lock()
	items := append([]entities.Transaction(nil), state.history...)
	state.mu.Unlock()

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if offset >= len(items) {
		return []entities.Transaction{}, nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) state(accountID string) (*accountState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.accounts[strings.TrimSpace(accountID)]
	if !ok {
		return nil, domainerrors.ErrAccountNotFound
	}
	return state, nil
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
