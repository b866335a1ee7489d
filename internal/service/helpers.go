package service

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/alexanderramin/genba/internal/domain"
)

// ErrDuplicateID is returned by Reorder when an ID appears twice.
var ErrDuplicateID = errors.New("duplicate id in order")

// randomColor picks the palette entry for a project saved without a color.
func randomColor() domain.ColorOption {
	return domain.ColorOptions[rand.IntN(len(domain.ColorOptions))]
}

// borderFor returns the border matching a palette color, or a "-dark"
// variant for colors outside the palette.
func borderFor(color string) string {
	for _, c := range domain.ColorOptions {
		if c.Color == color {
			return c.BorderColor
		}
	}
	return color + "-dark"
}

// checkUnique rejects an order list that names an ID twice.
func checkUnique(ids []string) error {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return fmt.Errorf("%w: %q", ErrDuplicateID, id)
		}
		seen[id] = true
	}
	return nil
}

func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// matchesTerm reports whether any field contains term, ignoring case.
// An empty term matches everything.
func matchesTerm(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
