package usecase

import (
	"context"
	"errors"
	"strings"

	"jo3qma.com/listify/internal/domain/model"
	"jo3qma.com/listify/internal/domain/repository"
)

// DefaultTimeframeDays は集計期間が指定されない場合の日数です
const DefaultTimeframeDays = 7

// ErrSellerRequired は出品者が指定されていない場合のエラーです
var ErrSellerRequired = errors.New("seller (string) is required")

// SalesUsecase は出品者の販売実績取得のビジネスロジックを担当します
type SalesUsecase struct {
	repo repository.SoldListingRepository
}

// NewSalesUsecase は新しいSalesUsecaseインスタンスを作成します
func NewSalesUsecase(repo repository.SoldListingRepository) *SalesUsecase {
	return &SalesUsecase{
		repo: repo,
	}
}

// GetSellerSales は指定された出品者の直近 timeframeDays 日分の販売実績を取得します
// timeframeDays が0以下の場合は DefaultTimeframeDays 日として扱います
func (u *SalesUsecase) GetSellerSales(ctx context.Context, seller string, timeframeDays int) (*model.SellerSales, error) {
	seller = strings.TrimSpace(seller)
	if seller == "" {
		return nil, ErrSellerRequired
	}
	if timeframeDays <= 0 {
		timeframeDays = DefaultTimeframeDays
	}
	return u.repo.FetchSellerSales(ctx, seller, timeframeDays)
}
