package shipping

import (
	"errors"
	"strconv"
	"strings"
)

// Quote simulates a carrier quote API: three fixed price tiers keyed
// off the numeric postal code, three courier options per quote. It
// stands in for a real EnvioPack/Zippin integration.

type Option struct {
	ID           string  `json:"id"`
	Provider     string  `json:"provider"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	DeliveryDays string  `json:"delivery_days"`
}

var ErrInvalidPostalCode = errors.New("shipping: invalid postal code")

const minPostalLen = 4

// Tier thresholds (ARS): CABA-range codes ship cheapest, far provinces
// cost the most.
const (
	tierNear = 5500
	tierMid  = 6800
	tierFar  = 8500
)

func Quote(postalCode string) ([]Option, error) {
	pc := strings.TrimSpace(postalCode)
	if len(pc) < minPostalLen {
		return nil, ErrInvalidPostalCode
	}
	cp, err := strconv.Atoi(pc)
	if err != nil || cp <= 0 {
		return nil, ErrInvalidPostalCode
	}

	base := float64(tierNear)
	switch {
	case cp > 4000:
		base = tierFar
	case cp > 1000:
		base = tierMid
	}

	return []Option{
		{
			ID:           "correo-arg-clasico",
			Provider:     "Correo Argentino",
			Name:         "Clásico a Domicilio",
			Price:        base,
			DeliveryDays: "3 a 6 días hábiles",
		},
		{
			ID:           "andreani-estandar",
			Provider:     "Andreani",
			Name:         "Estándar",
			Price:        base + 1200,
			DeliveryDays: "2 a 3 días hábiles",
		},
		{
			ID:           "andreani-express",
			Provider:     "Andreani",
			Name:         "Express",
			Price:        base + 2500,
			DeliveryDays: "1 a 2 días hábiles",
		},
	}, nil
}
