package git

import (
	"strings"

	"github.com/go-git/go-git/v5"
)

// Info contains repository state for diagnostics and the language census
// output. It never feeds the catalogue artifacts, which must stay identical
// across checkouts.
type Info struct {
	Branch    string `json:"branch,omitempty"`
	Commit    string `json:"commit,omitempty"`
	IsDirty   bool   `json:"is_dirty"`
	RemoteURL string `json:"remote_url,omitempty"`
}

// Get retrieves repository information for the given path, walking up to
// find the enclosing repository. Returns nil when there is none.
func Get(path string) *Info {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil
	}

	info := &Info{}

	head, err := repo.Head()
	if err == nil {
		// Short hash (first 7 characters)
		info.Commit = head.Hash().String()[:7]
		if head.Name().IsBranch() {
			info.Branch = head.Name().Short()
		} else {
			info.Branch = "HEAD" // Detached HEAD
		}
	}

	// Worktree status is expensive but runs once per invocation
	if worktree, err := repo.Worktree(); err == nil {
		if status, err := worktree.Status(); err == nil {
			info.IsDirty = !status.IsClean()
		}
	}

	if cfg, err := repo.Config(); err == nil {
		if origin := cfg.Remotes["origin"]; origin != nil && len(origin.URLs) > 0 {
			info.RemoteURL = sanitizeRemoteURL(origin.URLs[0])
		}
	}

	return info
}

// sanitizeRemoteURL strips credentials from http(s) remote URLs so tokens
// never show up in output. SSH and other formats pass through unchanged.
func sanitizeRemoteURL(url string) string {
	var scheme string
	switch {
	case strings.HasPrefix(url, "https://"):
		scheme = "https://"
	case strings.HasPrefix(url, "http://"):
		scheme = "http://"
	default:
		return url
	}

	rest := strings.TrimPrefix(url, scheme)
	authority := rest
	if slash := strings.Index(rest, "/"); slash >= 0 {
		authority = rest[:slash]
	}

	if at := strings.LastIndex(authority, "@"); at >= 0 {
		return scheme + rest[at+1:]
	}
	return url
}
