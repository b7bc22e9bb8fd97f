// Package github defines the typed domain objects for the repository
// search endpoint and their decode constructors. Construction is
// all-or-nothing: a value that exists decoded completely, and the first
// invalid field aborts the whole object.
package github

import (
	"net/url"
	"time"

	"github.com/douhashi/kensaku/internal/decode"
)

// Repository represents a GitHub repository as returned by the search API.
// Pointer fields are the ones the API may omit or send as null; everything
// else is required.
type Repository struct {
	ID              int
	Name            string
	FullName        string
	Private         bool
	Fork            bool
	HTMLURL         *url.URL
	URL             *url.URL
	Description     *string
	Homepage        *string
	Language        *string
	MasterBranch    *string
	DefaultBranch   string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	PushedAt        time.Time
	Size            int
	StargazersCount int
	WatchersCount   int
	ForksCount      int
	OpenIssuesCount int
	Score           float64
}

// DecodeRepository constructs a Repository from a raw JSON object. Fields
// are decoded in struct declaration order, which fixes the error reported
// when several fields are invalid at once.
func DecodeRepository(obj decode.Object) (Repository, error) {
	id, err := decode.Int(obj, "id")
	if err != nil {
		return Repository{}, err
	}
	name, err := decode.String(obj, "name")
	if err != nil {
		return Repository{}, err
	}
	fullName, err := decode.String(obj, "full_name")
	if err != nil {
		return Repository{}, err
	}
	private, err := decode.Bool(obj, "private")
	if err != nil {
		return Repository{}, err
	}
	fork, err := decode.Bool(obj, "fork")
	if err != nil {
		return Repository{}, err
	}
	htmlURL, err := decode.URL(obj, "html_url")
	if err != nil {
		return Repository{}, err
	}
	apiURL, err := decode.URL(obj, "url")
	if err != nil {
		return Repository{}, err
	}
	description, err := decode.OptionalString(obj, "description")
	if err != nil {
		return Repository{}, err
	}
	homepage, err := decode.OptionalString(obj, "homepage")
	if err != nil {
		return Repository{}, err
	}
	language, err := decode.OptionalString(obj, "language")
	if err != nil {
		return Repository{}, err
	}
	masterBranch, err := decode.OptionalString(obj, "master_branch")
	if err != nil {
		return Repository{}, err
	}
	defaultBranch, err := decode.String(obj, "default_branch")
	if err != nil {
		return Repository{}, err
	}
	createdAt, err := decode.Time(obj, "created_at")
	if err != nil {
		return Repository{}, err
	}
	updatedAt, err := decode.Time(obj, "updated_at")
	if err != nil {
		return Repository{}, err
	}
	pushedAt, err := decode.Time(obj, "pushed_at")
	if err != nil {
		return Repository{}, err
	}
	size, err := decode.Int(obj, "size")
	if err != nil {
		return Repository{}, err
	}
	stargazers, err := decode.Int(obj, "stargazers_count")
	if err != nil {
		return Repository{}, err
	}
	watchers, err := decode.Int(obj, "watchers_count")
	if err != nil {
		return Repository{}, err
	}
	forks, err := decode.Int(obj, "forks_count")
	if err != nil {
		return Repository{}, err
	}
	openIssues, err := decode.Int(obj, "open_issues_count")
	if err != nil {
		return Repository{}, err
	}
	score, err := decode.Float(obj, "score")
	if err != nil {
		return Repository{}, err
	}

	return Repository{
		ID:              id,
		Name:            name,
		FullName:        fullName,
		Private:         private,
		Fork:            fork,
		HTMLURL:         htmlURL,
		URL:             apiURL,
		Description:     description,
		Homepage:        homepage,
		Language:        language,
		MasterBranch:    masterBranch,
		DefaultBranch:   defaultBranch,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
		PushedAt:        pushedAt,
		Size:            size,
		StargazersCount: stargazers,
		WatchersCount:   watchers,
		ForksCount:      forks,
		OpenIssuesCount: openIssues,
		Score:           score,
	}, nil
}
