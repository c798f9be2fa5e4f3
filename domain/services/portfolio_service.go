package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"playbook/ledger-service/domain"
	"playbook/ledger-service/domain/entities"
	"playbook/ledger-service/domain/interfaces"
)

type portfolioService struct {
	userRepo             interfaces.UserRepository
	holdingRepo          interfaces.HoldingRepository
	assetTransactionRepo interfaces.AssetTransactionRepository
	priceSource          interfaces.PriceSource
}

// NewPortfolioService creates a new portfolio service
func NewPortfolioService(
	userRepo interfaces.UserRepository,
	holdingRepo interfaces.HoldingRepository,
	assetTransactionRepo interfaces.AssetTransactionRepository,
	priceSource interfaces.PriceSource,
) interfaces.PortfolioService {
	return &portfolioService{
		userRepo:             userRepo,
		holdingRepo:          holdingRepo,
		assetTransactionRepo: assetTransactionRepo,
		priceSource:          priceSource,
	}
}

func (s *portfolioService) GetPortfolio(ctx context.Context, userID int64) (*entities.Portfolio, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
	}

	holdings, err := s.holdingRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	portfolio := &entities.Portfolio{
		UserID:      userID,
		CashBalance: user.Balance,
		Positions:   make([]*entities.Position, 0, len(holdings)),
	}

	positionValue := decimal.Zero
	for _, holding := range holdings {
		position, err := s.buildPosition(ctx, userID, holding)
		if err != nil {
			return nil, err
		}
		portfolio.Positions = append(portfolio.Positions, position)
		positionValue = positionValue.Add(position.MarketValue)
	}

	portfolio.PositionValue = positionValue
	portfolio.TotalValue = user.Balance.Add(positionValue)

	return portfolio, nil
}

func (s *portfolioService) GetPerformance(ctx context.Context, userID int64) (*entities.Performance, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
	}

	byAsset, err := s.assetTransactionRepo.RealizedPerformance(ctx, userID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, perf := range byAsset {
		total = total.Add(perf.RealizedPL)
	}

	return &entities.Performance{
		UserID:          userID,
		ByAsset:         byAsset,
		TotalRealizedPL: total,
	}, nil
}

func (s *portfolioService) GetTransactionHistory(ctx context.Context, userID int64, limit int) ([]*entities.AssetTransaction, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.assetTransactionRepo.GetByUser(ctx, userID, limit)
}

// buildPosition prices one holding. An unquoted asset values at zero; a
// holding with no priced acquisition history is costed at the current
// price, so its unrealized figure reads zero instead of inventing a gain.
func (s *portfolioService) buildPosition(ctx context.Context, userID int64, holding *entities.Holding) (*entities.Position, error) {
	currentPrice := decimal.Zero
	price, err := s.priceSource.GetPrice(ctx, holding.Asset())
	if err != nil {
		return nil, err
	}
	if price != nil {
		currentPrice = price.Price
	}

	avgCost := currentPrice
	avg, err := s.assetTransactionRepo.AverageAcquisitionPrice(ctx, userID, holding.Asset())
	if err != nil {
		return nil, err
	}
	if avg != nil {
		avgCost = avg.Round(2)
	}

	qty := decimal.NewFromInt(holding.Quantity)
	return &entities.Position{
		AssetType:    holding.AssetType,
		AssetName:    holding.AssetName,
		Quantity:     holding.Quantity,
		CurrentPrice: currentPrice,
		MarketValue:  currentPrice.Mul(qty).Round(2),
		AverageCost:  avgCost,
		UnrealizedPL: currentPrice.Sub(avgCost).Mul(qty).Round(2),
	}, nil
}
