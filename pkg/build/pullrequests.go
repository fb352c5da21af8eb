package build

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/matzehuels/repograph/pkg/errors"
)

// DecodePullRequests reads pull-request records from r.
//
// Two shapes are accepted: a plain JSON array of [PullRequest], or a GraphQL
// response envelope of the form
//
//	{"data": {"repository": {"pullRequests": {"nodes": [...]}}}}
//
// A missing pullRequests connection yields an empty list. A missing
// repository, or a top-level "errors" array, is reported as
// [errors.ErrCodeInvalidInput].
func DecodePullRequests(r io.Reader) ([]PullRequest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read pull requests")
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "pull request input is empty")
	}

	if data[0] == '[' {
		var prs []PullRequest
		if err := json.Unmarshal(data, &prs); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode pull request list")
		}
		return prs, nil
	}

	var env struct {
		Data *struct {
			Repository *struct {
				PullRequests *struct {
					Nodes []PullRequest `json:"nodes"`
				} `json:"pullRequests"`
			} `json:"repository"`
		} `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode pull request envelope")
	}
	if len(env.Errors) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "query failed: %s", env.Errors[0].Message)
	}
	if env.Data == nil || env.Data.Repository == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "response has no repository")
	}
	if env.Data.Repository.PullRequests == nil {
		return []PullRequest{}, nil
	}
	return env.Data.Repository.PullRequests.Nodes, nil
}
