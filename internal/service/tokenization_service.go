package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	mathrand "math/rand"
	"strconv"
	"strings"
	"time"
	"unicode"

	"kartpay/internal/config"
	"kartpay/internal/model"
	"kartpay/internal/repository"

	"github.com/rs/zerolog"
)

// maxTokenGenerationAttempts bounds the retry loop when a freshly
// generated token collides with an existing one.
const maxTokenGenerationAttempts = 10

// tokenizationService implements TokenizationService. It simulates an
// external tokenization provider: validation failures are deterministic,
// provider rejections are a configurable random draw.
type tokenizationService struct {
	tokenRepo repository.CardTokenRepository
	audit     AuditService
	cfg       config.TokenizationConfig
	logger    zerolog.Logger

	randFloat func() float64
}

// NewTokenizationService creates a new tokenization service.
func NewTokenizationService(tokenRepo repository.CardTokenRepository, audit AuditService, cfg config.TokenizationConfig, logger zerolog.Logger) TokenizationService {
	return &tokenizationService{
		tokenRepo: tokenRepo,
		audit:     audit,
		cfg:       cfg,
		logger:    logger.With().Str("service", "tokenization").Logger(),
		randFloat: mathrand.Float64,
	}
}

// CreateToken validates the card data, simulates the provider decision
// and stores the token with the last four digits and brand. The card
// number and CVV never reach the store.
func (s *tokenizationService) CreateToken(ctx context.Context, req *model.TokenizationRequest) (*model.TokenizationResponse, error) {
	s.logger.Info().Msg("tokenizing card")

	s.audit.LogEvent(ctx, string(model.EventTokenizationInitiated), "CARD_TOKEN", "", "",
		"Card tokenization requested", nil, model.EventStatusPending, "")

	if err := validateCardData(req); err != nil {
		s.audit.LogFailure(ctx, string(model.EventTokenizationFailed), "CARD_TOKEN", "", "",
			"Card tokenization rejected due to invalid card data", err.Error(), nil)
		return nil, err
	}

	if s.randFloat() < s.cfg.RejectionProbability {
		s.logger.Warn().Msg("tokenization rejected by simulated provider")
		s.audit.LogFailure(ctx, string(model.EventTokenizationFailed), "CARD_TOKEN", "", "",
			"Card tokenization rejected by provider", "provider rejected the card", nil)
		return nil, model.ErrTokenizationRejected("Card tokenization was rejected by the provider")
	}

	// Validation accepted the trimmed number, so derive everything else
	// from the same value.
	cardNumber := strings.TrimSpace(req.CardNumber)

	token, err := s.generateUniqueToken(ctx, cardNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize card: %w", err)
	}

	cardToken := &model.CardToken{
		Token:          token,
		LastFourDigits: cardNumber[len(cardNumber)-4:],
		CardBrand:      detectCardBrand(cardNumber),
		ExpirationDate: strings.TrimSpace(req.ExpirationDate),
		CardholderName: req.CardholderName,
		Active:         true,
		CreatedAt:      time.Now(),
	}

	if err := s.tokenRepo.Create(ctx, cardToken); err != nil {
		return nil, fmt.Errorf("failed to tokenize card: %w", err)
	}

	s.audit.LogSuccess(ctx, string(model.EventTokenizationCompleted), "CARD_TOKEN", strconv.FormatInt(cardToken.ID, 10), "",
		fmt.Sprintf("Card ending in %s tokenized", cardToken.LastFourDigits), nil)

	s.logger.Info().
		Str("card_brand", cardToken.CardBrand).
		Str("last_four", cardToken.LastFourDigits).
		Msg("card tokenized successfully")

	return &model.TokenizationResponse{
		Token:          cardToken.Token,
		LastFourDigits: cardToken.LastFourDigits,
		CardBrand:      cardToken.CardBrand,
		ExpirationDate: cardToken.ExpirationDate,
		Active:         cardToken.Active,
		CreatedAt:      cardToken.CreatedAt,
	}, nil
}

// generateUniqueToken derives an opaque token from the card number and a
// random salt, retrying on the unlikely collision with a stored token.
func (s *tokenizationService) generateUniqueToken(ctx context.Context, cardNumber string) (string, error) {
	for attempt := 0; attempt < maxTokenGenerationAttempts; attempt++ {
		salt := make([]byte, 16)
		if _, err := rand.Read(salt); err != nil {
			return "", fmt.Errorf("failed to generate token salt: %w", err)
		}

		sum := sha256.Sum256(append([]byte(cardNumber), salt...))
		token := "tok_" + hex.EncodeToString(sum[:])[:32]

		exists, err := s.tokenRepo.ExistsByToken(ctx, token)
		if err != nil {
			return "", err
		}
		if !exists {
			return token, nil
		}

		s.logger.Warn().Int("attempt", attempt+1).Msg("token collision, regenerating")
	}

	return "", fmt.Errorf("could not generate a unique token after %d attempts", maxTokenGenerationAttempts)
}

func validateCardData(req *model.TokenizationRequest) error {
	if req == nil {
		return model.ErrInvalidCardData("request body is required")
	}

	number := strings.TrimSpace(req.CardNumber)
	if !isDigits(number) || len(number) < 13 || len(number) > 19 {
		return model.ErrInvalidCardData("Card number must be 13 to 19 digits")
	}

	cvv := strings.TrimSpace(req.CVV)
	if !isDigits(cvv) || len(cvv) < 3 || len(cvv) > 4 {
		return model.ErrInvalidCardData("CVV must be 3 or 4 digits")
	}

	if strings.TrimSpace(req.CardholderName) == "" {
		return model.ErrInvalidCardData("Cardholder name is required")
	}

	if err := validateExpirationDate(req.ExpirationDate); err != nil {
		return err
	}

	return nil
}

// validateExpirationDate accepts MM/YY and rejects cards expired before
// the current month. A card expiring this month is still valid.
func validateExpirationDate(expiration string) error {
	parts := strings.Split(strings.TrimSpace(expiration), "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return model.ErrInvalidCardData("Expiration date must be in MM/YY format")
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return model.ErrInvalidCardData("Expiration month must be between 01 and 12")
	}

	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return model.ErrInvalidCardData("Expiration date must be in MM/YY format")
	}
	year += 2000

	now := time.Now()
	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		return model.ErrInvalidCardData("Card is expired")
	}

	return nil
}

func detectCardBrand(cardNumber string) string {
	switch cardNumber[0] {
	case '4':
		return "VISA"
	case '5':
		return "MASTERCARD"
	case '3':
		return "AMEX"
	default:
		return "UNKNOWN"
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
