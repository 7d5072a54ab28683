package repository

import (
	"context"

	"jo3qma.com/listify/internal/domain/model"
)

// SoldListingRepository は出品者の販売実績の取得方法を抽象化します。
// 実装がDBなのか、外部APIなのか、スクレイピングなのかはドメイン層は知りません。
type SoldListingRepository interface {
	// FetchSellerSales は指定された出品者の直近 timeframeDays 日分の販売実績を取得します
	FetchSellerSales(ctx context.Context, seller string, timeframeDays int) (*model.SellerSales, error)
}
