package github

import (
	"github.com/douhashi/kensaku/internal/api"
	"github.com/douhashi/kensaku/internal/decode"
)

// SearchResult is the envelope the search API wraps around its matches.
// Items holds the current page only, so its length need not equal
// TotalCount.
type SearchResult[T any] struct {
	TotalCount        int
	IncompleteResults bool
	Items             []T
}

// DecodeSearchResult returns a decode constructor for the envelope around
// the given element constructor. Elements decode in array order and the
// first failing element fails the whole envelope; a partially populated
// Items slice is never observable.
func DecodeSearchResult[T any](decodeItem api.DecodeFunc[T]) api.DecodeFunc[SearchResult[T]] {
	return func(obj decode.Object) (SearchResult[T], error) {
		totalCount, err := decode.Int(obj, "total_count")
		if err != nil {
			return SearchResult[T]{}, err
		}
		incomplete, err := decode.Bool(obj, "incomplete_results")
		if err != nil {
			return SearchResult[T]{}, err
		}
		rawItems, err := decode.Value[[]any](obj, "items")
		if err != nil {
			return SearchResult[T]{}, err
		}

		items := make([]T, 0, len(rawItems))
		for _, raw := range rawItems {
			elem, ok := raw.(map[string]any)
			if !ok {
				return SearchResult[T]{}, &decode.Error{
					Type:     decode.ErrorTypeUnexpectedType,
					Key:      "items",
					Expected: "object",
					Actual:   decode.TypeName(raw),
				}
			}
			item, err := decodeItem(decode.Object(elem))
			if err != nil {
				return SearchResult[T]{}, err
			}
			items = append(items, item)
		}

		return SearchResult[T]{
			TotalCount:        totalCount,
			IncompleteResults: incomplete,
			Items:             items,
		}, nil
	}
}
