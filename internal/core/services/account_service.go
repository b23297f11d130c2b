package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/banking_backoffice/internal/core/ports/services"
	"github.com/SscSPs/banking_backoffice/internal/dto"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	balanceSvc  portssvc.BalanceSvc
}

// NewAccountService creates a new account service. Balances are read through
// balanceSvc and are never stored on the account.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, balanceSvc portssvc.BalanceSvc) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		balanceSvc:  balanceSvc,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.AccountWithBalance, error) {
	accountType, err := domain.ParseAccountType(req.AccountType)
	if err != nil {
		return nil, err
	}
	holderType, err := domain.ParseHolderType(req.HolderType)
	if err != nil {
		return nil, err
	}
	account, err := domain.NewAccount(accountType, req.CurrencyCode, req.HolderID, holderType)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.SaveAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("holder_id", req.HolderID))
		return nil, err
	}
	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("type", string(account.Type)),
		slog.String("currency", account.Currency.Code()))

	// A new account has no journal entries.
	return &domain.AccountWithBalance{Account: *account}, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.AccountWithBalance, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.withBalance(ctx, account)
}

func (s *accountService) ListAccountsByHolder(ctx context.Context, holderID string) ([]domain.AccountWithBalance, error) {
	accounts, err := s.accountRepo.ListAccountsByHolder(ctx, holderID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("holder_id", holderID))
		return nil, err
	}
	result := make([]domain.AccountWithBalance, 0, len(accounts))
	for i := range accounts {
		acc, err := s.withBalance(ctx, &accounts[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *acc)
	}
	return result, nil
}

func (s *accountService) AddHolder(ctx context.Context, accountID string, req dto.AddAccountHolderRequest) (*domain.AccountWithBalance, error) {
	holderType, err := domain.ParseHolderType(req.HolderType)
	if err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	holder, err := account.AddHolder(req.HolderID, holderType)
	if err != nil {
		return nil, err
	}
	if err := s.accountRepo.AddHolder(ctx, holder); err != nil {
		s.LogError(ctx, err, "Failed to add account holder",
			slog.String("account_id", accountID),
			slog.String("holder_id", holder.HolderID))
		return nil, err
	}
	return s.withBalance(ctx, account)
}

func (s *accountService) RemoveHolder(ctx context.Context, accountID, holderID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if _, err := account.RemoveHolder(holderID); err != nil {
		return err
	}
	if err := s.accountRepo.RemoveHolder(ctx, accountID, holderID); err != nil {
		s.LogError(ctx, err, "Failed to remove account holder",
			slog.String("account_id", accountID),
			slog.String("holder_id", holderID))
		return err
	}
	return nil
}

func (s *accountService) FreezeAccount(ctx context.Context, accountID string) (*domain.AccountWithBalance, error) {
	return s.changeStatus(ctx, accountID, (*domain.Account).Freeze)
}

func (s *accountService) UnfreezeAccount(ctx context.Context, accountID string) (*domain.AccountWithBalance, error) {
	return s.changeStatus(ctx, accountID, (*domain.Account).Unfreeze)
}

func (s *accountService) CloseAccount(ctx context.Context, accountID string) error {
	_, err := s.changeStatus(ctx, accountID, (*domain.Account).Close)
	return err
}

func (s *accountService) changeStatus(ctx context.Context, accountID string, apply func(*domain.Account) error) (*domain.AccountWithBalance, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := apply(account); err != nil {
		return nil, err
	}
	if err := s.accountRepo.UpdateAccountStatus(ctx, accountID, account.Status, account.LastUpdatedAt); err != nil {
		s.LogError(ctx, err, "Failed to update account status", slog.String("account_id", accountID))
		return nil, err
	}
	s.LogInfo(ctx, "Account status changed",
		slog.String("account_id", accountID),
		slog.String("status", string(account.Status)))
	return s.withBalance(ctx, account)
}

func (s *accountService) withBalance(ctx context.Context, account *domain.Account) (*domain.AccountWithBalance, error) {
	balance, err := s.balanceSvc.GetBalance(ctx, account.AccountID)
	if err != nil {
		return nil, err
	}
	return &domain.AccountWithBalance{Account: *account, Balance: balance}, nil
}
