package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/DRSN-tech/pos-backend/pkg/e"
)

func TestParseAmountToCents(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr error
	}{
		{"599.99", 59999, nil},
		{"600", 60000, nil},
		{"0", 0, nil},
		{"0.05", 5, nil},
		{" 12.50 ", 1250, nil},
		{"", 0, e.ErrInvalidPrice},
		{"abc", 0, e.ErrInvalidPrice},
		{"-1", 0, e.ErrInvalidPrice},
		{"1.005", 0, e.ErrPricePrecision},
		{"99999999999", 0, e.ErrInvalidPrice},
	}

	for _, tc := range cases {
		got, err := parseAmountToCents(tc.in)
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("parseAmountToCents(%q): expected %v, got %v", tc.in, tc.wantErr, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseAmountToCents(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseAmountToCents(%q): expected %d, got %d", tc.in, tc.want, got)
		}
	}
}

func TestParseIDParam(t *testing.T) {
	if id, err := parseIDParam("42"); err != nil || id != 42 {
		t.Errorf("expected 42, got %d (%v)", id, err)
	}

	for _, in := range []string{"", "0", "-5", "abc"} {
		if _, err := parseIDParam(in); !errors.Is(err, e.ErrInvalidProductID) {
			t.Errorf("parseIDParam(%q): expected ErrInvalidProductID, got %v", in, err)
		}
	}
}

func TestParseStock(t *testing.T) {
	if stock, err := parseStock("0"); err != nil || stock != 0 {
		t.Errorf("expected 0, got %d (%v)", stock, err)
	}
	if stock, err := parseStock("15"); err != nil || stock != 15 {
		t.Errorf("expected 15, got %d (%v)", stock, err)
	}
	if _, err := parseStock("-1"); !errors.Is(err, e.ErrStockMustBePositive) {
		t.Errorf("expected ErrStockMustBePositive, got %v", err)
	}
}

func TestToHTTPResponse(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{e.ErrEmptyCart, http.StatusBadRequest},
		{e.ErrNotFound, http.StatusNotFound},
		{e.ErrProductNameRequired, http.StatusBadRequest},
		{e.ErrInvalidQuantity, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		code, _ := ToHTTPResponse(tc.err)
		if code != tc.code {
			t.Errorf("ToHTTPResponse(%v): expected %d, got %d", tc.err, tc.code, code)
		}
	}

	// Обёрнутые ошибки тоже должны распознаваться
	code, _ := ToHTTPResponse(e.Wrap("CheckoutUseCase.Checkout", e.ErrEmptyCart))
	if code != http.StatusBadRequest {
		t.Errorf("expected 400 for wrapped ErrEmptyCart, got %d", code)
	}
}
