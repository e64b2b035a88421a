package services

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/wrsoft/branchledger/internal/core/domain"
	portsrepo "github.com/wrsoft/branchledger/internal/core/ports/repositories"
	portssvc "github.com/wrsoft/branchledger/internal/core/ports/services"
)

const defaultCurrencyCacheKey = "default_currency"

// currencyService serves currency lookups. The default currency is stamped
// onto every posting, so it is cached; it changes rarely and a short TTL
// bounds the staleness window.
type currencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
	cache        *gocache.Cache
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{
		currencyRepo: currencyRepo,
		cache:        gocache.New(5*time.Minute, 10*time.Minute),
	}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// GetDefaultCurrency returns the currency stamped onto postings.
// Implements portssvc.CurrencySvcFacade.
func (s *currencyService) GetDefaultCurrency(ctx context.Context) (*domain.Currency, error) {
	if cached, found := s.cache.Get(defaultCurrencyCacheKey); found {
		if currency, ok := cached.(*domain.Currency); ok {
			return currency, nil
		}
	}

	currency, err := s.currencyRepo.FindDefaultCurrency(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load default currency: %w", err)
	}

	s.cache.Set(defaultCurrencyCacheKey, currency, gocache.DefaultExpiration)
	return currency, nil
}

// GetCurrencyByCode retrieves a single currency, cached by code.
// Implements portssvc.CurrencySvcFacade.
func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	cacheKey := "currency_" + currencyCode
	if cached, found := s.cache.Get(cacheKey); found {
		if currency, ok := cached.(*domain.Currency); ok {
			return currency, nil
		}
	}

	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cacheKey, currency, gocache.DefaultExpiration)
	return currency, nil
}

// ListCurrencies retrieves all configured currencies.
// Implements portssvc.CurrencySvcFacade.
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return s.currencyRepo.ListCurrencies(ctx)
}
