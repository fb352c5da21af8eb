package build

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/matzehuels/repograph/pkg/graph"
)

// Actor is a GitHub-style identity attached to a PR or review.
type Actor struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatarUrl"`
}

// Review is a single review submitted on a pull request.
type Review struct {
	Author      *Actor     `json:"author"`
	SubmittedAt *time.Time `json:"submittedAt"`
}

// UnmarshalJSON implements json.Unmarshaler. An unusable submittedAt is
// dropped instead of failing the record.
func (r *Review) UnmarshalJSON(data []byte) error {
	type plain Review
	aux := struct {
		*plain
		SubmittedAt optionalTime `json:"submittedAt"`
	}{plain: (*plain)(r), SubmittedAt: optionalTime{&r.SubmittedAt}}
	return json.Unmarshal(data, &aux)
}

// Reviews decodes either a plain JSON array of reviews or a GraphQL
// connection object ({"nodes": [...]}). null decodes to an empty list.
type Reviews []Review

// UnmarshalJSON implements json.Unmarshaler.
func (r *Reviews) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = nil
		return nil
	}
	if data[0] == '[' {
		var list []Review
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*r = list
		return nil
	}
	var conn struct {
		Nodes []Review `json:"nodes"`
	}
	if err := json.Unmarshal(data, &conn); err != nil {
		return err
	}
	*r = conn.Nodes
	return nil
}

// PullRequest is the record consumed by [BuildContributors].
type PullRequest struct {
	Author    *Actor     `json:"author"`
	CreatedAt *time.Time `json:"createdAt"`
	Reviews   Reviews    `json:"reviews"`
}

// UnmarshalJSON implements json.Unmarshaler. An unusable createdAt is
// dropped instead of failing the record.
func (p *PullRequest) UnmarshalJSON(data []byte) error {
	type plain PullRequest
	aux := struct {
		*plain
		CreatedAt optionalTime `json:"createdAt"`
	}{plain: (*plain)(p), CreatedAt: optionalTime{&p.CreatedAt}}
	return json.Unmarshal(data, &aux)
}

// optionalTime decodes an RFC 3339 string into *dst. null, "", non-string
// values and unparsable strings leave *dst nil.
type optionalTime struct {
	dst **time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (o optionalTime) UnmarshalJSON(data []byte) error {
	*o.dst = nil
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	*o.dst = &t
	return nil
}

// BuildContributors builds a reviewer → author graph from pull requests.
//
// PRs without an author login are skipped. Each author gets prCount+1 and
// each review by someone other than the author gets reviewCount+1 plus a
// single deduplicated edge "reviewer->author". lastActivity is the latest
// known createdAt/submittedAt for the login, independent of record order.
// The most recently seen non-empty avatar URL wins.
func BuildContributors(prs []PullRequest) graph.Graph {
	acc := newAccumulator()
	upsert := func(a *Actor) *graph.ContributorStats {
		n := acc.node(a.Login, func() graph.Node {
			return graph.Node{
				Label:            a.Login,
				Kind:             graph.KindContributor,
				ContributorStats: &graph.ContributorStats{},
			}
		})
		if a.AvatarURL != "" {
			n.AvatarURL = a.AvatarURL
		}
		return n.ContributorStats
	}

	for _, pr := range prs {
		if pr.Author == nil || pr.Author.Login == "" {
			continue
		}
		author := upsert(pr.Author)
		author.PRCount++
		author.LastActivity = latest(author.LastActivity, pr.CreatedAt)

		for _, rv := range pr.Reviews {
			if rv.Author == nil || rv.Author.Login == "" || rv.Author.Login == pr.Author.Login {
				continue
			}
			reviewer := upsert(rv.Author)
			reviewer.ReviewCount++
			reviewer.LastActivity = latest(reviewer.LastActivity, rv.SubmittedAt)
			acc.edge(rv.Author.Login, pr.Author.Login, true)
		}
	}
	return acc.snapshot()
}

// latest returns the later of two optional timestamps. A nil candidate never
// overrides a known value.
func latest(current, candidate *time.Time) *time.Time {
	if candidate == nil || candidate.IsZero() {
		return current
	}
	if current == nil || candidate.After(*current) {
		t := *candidate
		return &t
	}
	return current
}
