package usecase

import (
	"math"
	"regexp"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
	"github.com/polkiloo/restaurant/internal/domain/model"
)

var mailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ParseID converts a textual identifier, rejecting empty and malformed values.
func ParseID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, domainErrors.ErrMissingField
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, domainErrors.ErrInvalidIdentifier
	}
	return id, nil
}

// ParseOrderType accepts the canonical snake_case names and their camelCase
// spelling.
func ParseOrderType(raw string) (model.OrderType, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", domainErrors.ErrMissingField
	}
	switch raw {
	case "toGo":
		return model.OrderTypeToGo, nil
	case "dineIn":
		return model.OrderTypeDineIn, nil
	}
	t := model.OrderType(strings.ToLower(raw))
	if !t.Valid() {
		return "", domainErrors.ErrInvalidOrderType
	}
	return t, nil
}

// QuantityFromNumber converts a decoded JSON number to a line item quantity.
func QuantityFromNumber(n *float64) (int, error) {
	if n == nil {
		return 0, domainErrors.ErrMissingField
	}
	v := *n
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) || v <= 0 || v > math.MaxInt32 {
		return 0, domainErrors.ErrInvalidQuantity
	}
	return int(v), nil
}

func validQuantity(quantity int) error {
	if quantity <= 0 {
		return domainErrors.ErrInvalidQuantity
	}
	return nil
}

func validMail(mail string) bool {
	return mailPattern.MatchString(mail)
}
