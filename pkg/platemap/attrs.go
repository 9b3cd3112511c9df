package platemap

import (
	"fmt"
	"slices"
	"strings"

	"github.com/wellmap/wellmap/pkg/errors"
	"github.com/wellmap/wellmap/pkg/wells"
)

// PickAttrs decides which attributes to draw.
//
// Requested names must all be attributes of the table. Without a request,
// every attribute that takes more than one value is drawn.
func PickAttrs(t *wells.Table, requested []string) ([]string, error) {
	var user []string
	for _, a := range t.Attrs {
		if !wells.IsReserved(a) {
			user = append(user, a)
		}
	}

	if len(requested) > 0 {
		var unknown []string
		for _, a := range requested {
			if !slices.Contains(user, a) {
				unknown = append(unknown, a)
			}
		}
		if len(unknown) > 0 {
			msg := fmt.Sprintf("No such %s: %s", plural("attribute", len(unknown)), quoteJoin(unknown))
			if len(user) > 0 {
				msg += "\nDid you mean: " + quoteJoin(user)
			}
			return nil, errors.New(errors.ErrCodeInvalidSelection, "%s", msg)
		}
		return slices.Clone(requested), nil
	}

	var picked, degenerate []string
	for _, a := range user {
		if t.NUnique(a) > 1 {
			picked = append(picked, a)
		} else {
			degenerate = append(degenerate, a)
		}
	}
	switch {
	case len(picked) > 0:
		return picked, nil
	case len(degenerate) > 0:
		return nil, errors.New(errors.ErrCodeInvalidSelection,
			"Found only degenerate attributes (i.e. with the same value in every well): %s", quoteJoin(degenerate))
	default:
		return nil, errors.New(errors.ErrCodeInvalidSelection, "No attributes defined.")
	}
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func quoteJoin(names []string) string {
	q := make([]string, len(names))
	for i, n := range names {
		q[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(q, ", ")
}
