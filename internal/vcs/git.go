// Package vcs resolves repository provenance for discovered projects.
package vcs

import (
	"github.com/go-git/go-git/v5"
)

// RemoteURL returns the origin remote URL of the repository containing
// path, detecting .git in parent directories. Projects outside any
// repository, or in a repository without an origin remote, return "".
func RemoteURL(path string) string {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return ""
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return ""
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return ""
	}
	return urls[0]
}
