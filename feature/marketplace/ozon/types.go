package ozon

import (
	"fmt"
	"strings"

	"catalog-sync/core/reconcile"
)

type productFilter struct {
	Visibility string `json:"visibility"`
}

type productListRequest struct {
	Filter productFilter `json:"filter"`
	LastID string        `json:"last_id"`
	Limit  int           `json:"limit"`
}

type productListResponse struct {
	Result struct {
		Items []struct {
			ProductID int64  `json:"product_id"`
			OfferID   string `json:"offer_id"`
		} `json:"items"`
		Total  int    `json:"total"`
		LastID string `json:"last_id"`
	} `json:"result"`
}

type productInfoRequest struct {
	OfferID []string `json:"offer_id"`
}

type productInfoResponse struct {
	Items []struct {
		OfferID string `json:"offer_id"`
		Price   string `json:"price"`
		Stocks  struct {
			Stocks []struct {
				Present  int    `json:"present"`
				Reserved int    `json:"reserved"`
				Source   string `json:"source"`
			} `json:"stocks"`
		} `json:"stocks"`
	} `json:"items"`
}

type importItem struct {
	OfferID      string `json:"offer_id"`
	Name         string `json:"name"`
	Price        string `json:"price"`
	CurrencyCode string `json:"currency_code"`
}

type importRequest struct {
	Items []importItem `json:"items"`
}

type importResponse struct {
	Result struct {
		TaskID int64 `json:"task_id"`
	} `json:"result"`
}

type priceItem struct {
	OfferID      string `json:"offer_id"`
	Price        string `json:"price"`
	OldPrice     string `json:"old_price"`
	CurrencyCode string `json:"currency_code"`
}

type pricesRequest struct {
	Prices []priceItem `json:"prices"`
}

type stockItem struct {
	OfferID string `json:"offer_id"`
	Stock   int    `json:"stock"`
}

type stocksRequest struct {
	Stocks []stockItem `json:"stocks"`
}

type itemError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type updateResponse struct {
	Result []struct {
		OfferID string      `json:"offer_id"`
		Updated bool        `json:"updated"`
		Errors  []itemError `json:"errors"`
	} `json:"result"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// check returns an error when the offer was not updated.
func (r updateResponse) check(offerID string) error {
	for _, item := range r.Result {
		if item.OfferID != offerID || item.Updated {
			continue
		}
		msgs := make([]string, 0, len(item.Errors))
		for _, e := range item.Errors {
			msgs = append(msgs, e.Code+": "+e.Message)
		}
		return fmt.Errorf("%w: %s not updated: %s", reconcile.ErrClientFailure, offerID, strings.Join(msgs, "; "))
	}
	return nil
}
