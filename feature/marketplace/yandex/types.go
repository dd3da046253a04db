package yandex

import (
	"encoding/json"
	"fmt"
	"strings"

	"catalog-sync/core/reconcile"

	"github.com/shopspring/decimal"
)

type paging struct {
	NextPageToken string `json:"nextPageToken"`
}

type offerMappingsResponse struct {
	Result struct {
		Paging              paging `json:"paging"`
		OfferMappingEntries []struct {
			Offer struct {
				ShopSku string `json:"shopSku"`
				Name    string `json:"name"`
			} `json:"offer"`
		} `json:"offerMappingEntries"`
	} `json:"result"`
}

type offerPricesResponse struct {
	Result struct {
		Paging paging `json:"paging"`
		Offers []struct {
			ID    string `json:"id"`
			Price struct {
				Value decimal.Decimal `json:"value"`
			} `json:"price"`
		} `json:"offers"`
	} `json:"result"`
}

type stocksQuery struct {
	OfferIDs []string `json:"offerIds"`
}

type stocksResponse struct {
	Result struct {
		Warehouses []struct {
			WarehouseID int64 `json:"warehouseId"`
			Offers      []struct {
				OfferID string `json:"offerId"`
				Stocks  []struct {
					Type  string `json:"type"`
					Count int    `json:"count"`
				} `json:"stocks"`
			} `json:"offers"`
		} `json:"warehouses"`
	} `json:"result"`
}

// price is sent as a JSON number; decimal.Decimal would marshal as a string.
type price struct {
	Value      json.Number `json:"value"`
	CurrencyID string      `json:"currencyId"`
}

type priceOffer struct {
	ID    string `json:"id"`
	Price price  `json:"price"`
}

type priceUpdateRequest struct {
	Offers []priceOffer `json:"offers"`
}

type stockItem struct {
	Count     int    `json:"count"`
	Type      string `json:"type"`
	UpdatedAt string `json:"updatedAt"`
}

type stockSku struct {
	Sku         string      `json:"sku"`
	WarehouseID int64       `json:"warehouseId"`
	Items       []stockItem `json:"items"`
}

type stockUpdateRequest struct {
	Skus []stockSku `json:"skus"`
}

type mappingOffer struct {
	OfferID    string `json:"offerId"`
	Name       string `json:"name"`
	BasicPrice price  `json:"basicPrice"`
}

type mappingEntry struct {
	Offer mappingOffer `json:"offer"`
}

type mappingUpdateRequest struct {
	OfferMappings []mappingEntry `json:"offerMappings"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type statusResponse struct {
	Status string     `json:"status"`
	Errors []apiError `json:"errors"`
}

// check returns an error unless the API reported OK.
func (r statusResponse) check(what string) error {
	if r.Status == "" || r.Status == "OK" {
		return nil
	}
	return fmt.Errorf("%w: %s: status %s: %s", reconcile.ErrClientFailure, what, r.Status, joinErrors(r.Errors))
}

func joinErrors(errs []apiError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Code+": "+e.Message)
	}
	return strings.Join(msgs, "; ")
}
