package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"jo3qma.com/listify/internal/domain/model"
	"jo3qma.com/listify/internal/usecase"
)

// GetSellerSalesProcedure はConnectのプロシージャ名です
const GetSellerSalesProcedure = "/listify.v1.SellerSalesService/GetSellerSales"

// sellerSalesGetter は販売実績を取得するユースケースです
type sellerSalesGetter interface {
	GetSellerSales(ctx context.Context, seller string, timeframeDays int) (*model.SellerSales, error)
}

// SellerSalesHandler はConnectのハンドラー実装です
// プロトコル層（JSONメッセージ）とドメイン層（usecase）を橋渡しします
type SellerSalesHandler struct {
	uc  sellerSalesGetter
	log *slog.Logger
}

// NewSellerSalesHandler は新しいSellerSalesHandlerインスタンスを作成します
func NewSellerSalesHandler(uc sellerSalesGetter, log *slog.Logger) *SellerSalesHandler {
	return &SellerSalesHandler{
		uc:  uc,
		log: log,
	}
}

// NewSellerSalesServiceHandler はハンドラーをConnectのhttp.Handlerとして組み立て、
// マウントすべきパスと一緒に返します
func NewSellerSalesServiceHandler(h *SellerSalesHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
	return GetSellerSalesProcedure, connect.NewUnaryHandler(GetSellerSalesProcedure, h.GetSellerSales, opts...)
}

// GetSellerSales は出品者の販売実績を取得するRPCハンドラーです
func (h *SellerSalesHandler) GetSellerSales(
	ctx context.Context,
	req *connect.Request[GetSellerSalesRequest],
) (*connect.Response[GetSellerSalesResponse], error) {
	sales, err := h.uc.GetSellerSales(ctx, req.Msg.Seller, int(req.Msg.TimeframeDays))
	if err != nil {
		if errors.Is(err, usecase.ErrSellerRequired) {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		h.log.Error("failed to handle seller sales", slog.String("seller", req.Msg.Seller), slog.Any("err", err))
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(toResponse(sales)), nil
}

// toResponse はドメインモデルをレスポンスに変換します
func toResponse(s *model.SellerSales) *GetSellerSalesResponse {
	resp := &GetSellerSalesResponse{
		Seller:        s.Seller,
		TimeframeDays: s.TimeframeDays,
		TotalFound:    s.TotalFound(),
		Sales:         make([]Sale, 0, len(s.Sales)),
		Source:        s.Source,
	}

	for _, r := range s.Sales {
		sale := Sale{
			Title:    r.Title,
			Price:    json.Number(r.Price.StringFixed(2)),
			Currency: string(r.Currency),
			DateSold: r.DateSold.Format(time.DateOnly),
		}
		// URLがない場合は null
		if r.ListingURL != "" {
			u := r.ListingURL
			sale.ListingURL = &u
		}
		resp.Sales = append(resp.Sales, sale)
	}

	return resp
}
