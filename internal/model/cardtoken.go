package model

import "time"

// CardToken maps an opaque token to non-sensitive card details. The full
// card number and CVV are never stored.
type CardToken struct {
	ID             int64     `json:"id" db:"id"`
	Token          string    `json:"token" db:"token"`
	LastFourDigits string    `json:"lastFourDigits" db:"last_four_digits"`
	CardBrand      string    `json:"cardBrand" db:"card_brand"`
	ExpirationDate string    `json:"expirationDate" db:"expiration_date"`
	CardholderName string    `json:"cardholderName" db:"cardholder_name"`
	Active         bool      `json:"active" db:"active"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// TokenizationRequest is the payload for tokenizing a card. The CVV is
// validated for presence only and never persisted.
type TokenizationRequest struct {
	CardNumber     string `json:"cardNumber"`
	CVV            string `json:"cvv"`
	ExpirationDate string `json:"expirationDate"`
	CardholderName string `json:"cardholderName"`
}

// TokenizationResponse is the projection returned for a created token.
type TokenizationResponse struct {
	Token          string    `json:"token"`
	LastFourDigits string    `json:"lastFourDigits"`
	CardBrand      string    `json:"cardBrand"`
	ExpirationDate string    `json:"expirationDate"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"createdAt"`
}
