package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"jo3qma.com/listify/internal/domain/model"
	"jo3qma.com/listify/internal/usecase"
)

type fakeSalesGetter struct {
	sales *model.SellerSales
	err   error

	mu               sync.Mutex
	gotSeller        string
	gotTimeframeDays int
}

func (f *fakeSalesGetter) GetSellerSales(ctx context.Context, seller string, timeframeDays int) (*model.SellerSales, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotSeller = seller
	f.gotTimeframeDays = timeframeDays
	return f.sales, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleSellerSales() *model.SellerSales {
	return &model.SellerSales{
		Seller:        "vintage_seller",
		TimeframeDays: 7,
		Sales: []*model.SaleRecord{
			{
				Title:      "Widget A",
				Price:      decimal.RequireFromString("45"),
				Currency:   model.CurrencyUSD,
				DateSold:   time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC),
				ListingURL: "https://www.ebay.com/itm/111",
			},
			{
				Title:    "Gadget B",
				Price:    decimal.RequireFromString("12.5"),
				Currency: model.CurrencyGBP,
				DateSold: time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC),
			},
		},
		Source: "ebay-direct",
	}
}

func TestSellerSalesHandler_GetSellerSales_mapsDomainToResponse(t *testing.T) {
	t.Parallel()

	uc := &fakeSalesGetter{sales: sampleSellerSales()}
	h := NewSellerSalesHandler(uc, discardLogger())

	req := connect.NewRequest(&GetSellerSalesRequest{Seller: "vintage_seller", TimeframeDays: 7})
	resp, err := h.GetSellerSales(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if uc.gotSeller != "vintage_seller" || uc.gotTimeframeDays != 7 {
		t.Fatalf("usecase got (%q, %d), want (%q, %d)", uc.gotSeller, uc.gotTimeframeDays, "vintage_seller", 7)
	}

	msg := resp.Msg
	if msg.Seller != "vintage_seller" {
		t.Fatalf("Seller got %q, want %q", msg.Seller, "vintage_seller")
	}
	if msg.TimeframeDays != 7 {
		t.Fatalf("TimeframeDays got %d, want %d", msg.TimeframeDays, 7)
	}
	if msg.TotalFound != 2 {
		t.Fatalf("TotalFound got %d, want %d", msg.TotalFound, 2)
	}
	if msg.Source != "ebay-direct" {
		t.Fatalf("Source got %q, want %q", msg.Source, "ebay-direct")
	}
	if len(msg.Sales) != 2 {
		t.Fatalf("Sales len got %d, want %d", len(msg.Sales), 2)
	}

	first := msg.Sales[0]
	if first.Title != "Widget A" {
		t.Fatalf("Sales[0].Title got %q, want %q", first.Title, "Widget A")
	}
	if first.Price != "45.00" {
		t.Fatalf("Sales[0].Price got %q, want %q", first.Price, "45.00")
	}
	if first.Currency != "USD" {
		t.Fatalf("Sales[0].Currency got %q, want %q", first.Currency, "USD")
	}
	if first.DateSold != "2024-03-02" {
		t.Fatalf("Sales[0].DateSold got %q, want %q", first.DateSold, "2024-03-02")
	}
	if first.ListingURL == nil || *first.ListingURL != "https://www.ebay.com/itm/111" {
		t.Fatalf("Sales[0].ListingURL got %v, want %q", first.ListingURL, "https://www.ebay.com/itm/111")
	}

	second := msg.Sales[1]
	if second.Price != "12.50" {
		t.Fatalf("Sales[1].Price got %q, want %q", second.Price, "12.50")
	}
	if second.ListingURL != nil {
		t.Fatalf("Sales[1].ListingURL got %q, want nil", *second.ListingURL)
	}
}

func TestSellerSalesHandler_GetSellerSales_errorCodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want connect.Code
	}{
		{name: "missing seller", err: usecase.ErrSellerRequired, want: connect.CodeInvalidArgument},
		{name: "scrape failure", err: errors.New("failed to fetch page: status 503"), want: connect.CodeInternal},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := NewSellerSalesHandler(&fakeSalesGetter{err: tc.err}, discardLogger())
			_, err := h.GetSellerSales(context.Background(), connect.NewRequest(&GetSellerSalesRequest{}))
			if err == nil {
				t.Fatalf("expected error")
			}

			var ce *connect.Error
			if !errors.As(err, &ce) {
				t.Fatalf("expected *connect.Error, got %T: %v", err, err)
			}
			if ce.Code() != tc.want {
				t.Fatalf("code got %v, want %v", ce.Code(), tc.want)
			}
		})
	}
}

func TestGetSellerSalesRequest_timeframeDaysDecoding(t *testing.T) {
	t.Parallel()

	cases := []struct {
		body string
		want int
	}{
		{body: `{"seller":"s","timeframeDays":14}`, want: 14},
		{body: `{"seller":"s","timeframeDays":"30"}`, want: 30},
		{body: `{"seller":"s","timeframeDays":null}`, want: 0},
		{body: `{"seller":"s","timeframeDays":"soon"}`, want: 0},
		{body: `{"seller":"s"}`, want: 0},
	}

	for _, tc := range cases {
		var req GetSellerSalesRequest
		if err := json.Unmarshal([]byte(tc.body), &req); err != nil {
			t.Fatalf("Unmarshal(%s) failed: %v", tc.body, err)
		}
		if int(req.TimeframeDays) != tc.want {
			t.Errorf("Unmarshal(%s) TimeframeDays got %d, want %d", tc.body, req.TimeframeDays, tc.want)
		}
	}
}
