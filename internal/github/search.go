package github

import (
	"net/http"
	"net/url"

	"github.com/douhashi/kensaku/internal/api"
	"github.com/google/go-querystring/query"
)

// SearchOptions specifies the parameters of a repository search.
type SearchOptions struct {
	Query string `url:"q"`
	Sort  string `url:"sort,omitempty"`
	Order string `url:"order,omitempty"`
}

// SearchRepositories returns the endpoint descriptor for searching
// repositories matching the query.
func SearchRepositories(searchQuery string) api.Endpoint[SearchResult[Repository]] {
	return SearchRepositoriesWithOptions(SearchOptions{Query: searchQuery})
}

// SearchRepositoriesWithOptions is SearchRepositories with sort and order
// control.
func SearchRepositoriesWithOptions(opts SearchOptions) api.Endpoint[SearchResult[Repository]] {
	params, err := query.Values(opts)
	if err != nil {
		// query.Values only fails on unsupported field kinds; a flat
		// string struct cannot trigger it.
		params = url.Values{}
		params.Set("q", opts.Query)
	}

	return api.Endpoint[SearchResult[Repository]]{
		Path:   "search/repositories",
		Method: http.MethodGet,
		Params: params,
		Decode: DecodeSearchResult(DecodeRepository),
	}
}
