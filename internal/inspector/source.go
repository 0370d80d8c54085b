package inspector

import (
	"fmt"
	"net/url"
	"strings"

	giturl "github.com/kubescape/go-git-url"
)

type SourceKind int

const (
	SourceHTTP SourceKind = iota
	SourceS3
)

// Source is a resolved archive location.
type Source struct {
	Kind   SourceKind
	URL    string
	Bucket string
	Key    string
}

func (s Source) String() string {
	if s.Kind == SourceS3 {
		return "s3://" + s.Bucket + "/" + s.Key
	}
	return s.URL
}

const githubAPIBase = "https://api.github.com/repos"

// ResolveSource maps a repository identifier to an archive location.
//
//	https://github.com/o/r[/tree/b] -> https://api.github.com/repos/o/r/zipball/<b|defaultBranch>
//	http(s)://.../x.zip             -> fetched as-is
//	s3://bucket/key                 -> object store
func ResolveSource(raw, defaultBranch string) (Source, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Source{}, &FetchError{Source: raw, Err: fmt.Errorf("%w: empty repository url", ErrUnsupportedSource)}
	}
	if defaultBranch == "" {
		defaultBranch = "main"
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Source{}, &FetchError{Source: raw, Err: fmt.Errorf("%w: %v", ErrUnsupportedSource, err)}
	}

	switch strings.ToLower(u.Scheme) {
	case "s3":
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return Source{}, &FetchError{Source: raw, Err: fmt.Errorf("%w: s3 url needs bucket and key", ErrUnsupportedSource)}
		}
		return Source{Kind: SourceS3, Bucket: u.Host, Key: key}, nil
	case "http", "https":
	default:
		return Source{}, &FetchError{Source: raw, Err: fmt.Errorf("%w: scheme %q", ErrUnsupportedSource, u.Scheme)}
	}

	if strings.HasSuffix(strings.ToLower(u.Path), ".zip") {
		return Source{Kind: SourceHTTP, URL: raw}, nil
	}

	if !strings.EqualFold(strings.TrimPrefix(u.Hostname(), "www."), "github.com") {
		return Source{}, &FetchError{Source: raw, Err: fmt.Errorf("%w: only github.com repositories or .zip urls", ErrUnsupportedSource)}
	}
	gitURL, err := giturl.NewGitURL(raw)
	if err != nil {
		return Source{}, &FetchError{Source: raw, Err: fmt.Errorf("%w: %v", ErrUnsupportedSource, err)}
	}
	owner, repo := gitURL.GetOwnerName(), strings.TrimSuffix(gitURL.GetRepoName(), ".git")
	if owner == "" || repo == "" {
		return Source{}, &FetchError{Source: raw, Err: fmt.Errorf("%w: missing owner or repository", ErrUnsupportedSource)}
	}
	branch := treeRef(u.Path)
	if branch == "" {
		branch = gitURL.GetBranchName()
	}
	if branch == "" {
		branch = defaultBranch
	}
	return Source{
		Kind: SourceHTTP,
		URL:  fmt.Sprintf("%s/%s/%s/zipball/%s", githubAPIBase, url.PathEscape(owner), url.PathEscape(repo), branch),
	}, nil
}

// treeRef returns everything after "/tree/" in a GitHub web path, so
// slash-named branches like "feature/x" survive intact.
func treeRef(p string) string {
	_, ref, ok := strings.Cut(p, "/tree/")
	if !ok {
		return ""
	}
	return strings.Trim(ref, "/")
}
