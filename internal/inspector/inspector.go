package inspector

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// Inspector downloads a repository archive and classifies its tech stack.
type Inspector struct {
	http          Fetcher
	s3            Fetcher
	rules         []Rule
	defaultBranch string
	tempRoot      string
	maxExtract    int64
	log           logrus.FieldLogger
}

// DefaultMaxExtractBytes caps the uncompressed size of an archive.
const DefaultMaxExtractBytes int64 = 1 << 30

type Option func(*Inspector)

func WithHTTPFetcher(f Fetcher) Option {
	return func(i *Inspector) {
		if f != nil {
			i.http = f
		}
	}
}

// WithS3Fetcher enables s3:// identifiers.
func WithS3Fetcher(f Fetcher) Option {
	return func(i *Inspector) { i.s3 = f }
}

func WithRules(rules []Rule) Option {
	return func(i *Inspector) {
		if len(rules) > 0 {
			i.rules = rules
		}
	}
}

func WithDefaultBranch(branch string) Option {
	return func(i *Inspector) {
		if branch != "" {
			i.defaultBranch = branch
		}
	}
}

// WithTempRoot sets the parent of extraction directories (os.TempDir by default).
func WithTempRoot(dir string) Option {
	return func(i *Inspector) { i.tempRoot = dir }
}

// WithMaxExtractBytes caps the total bytes written while unpacking; n <= 0
// removes the cap.
func WithMaxExtractBytes(n int64) Option {
	return func(i *Inspector) { i.maxExtract = n }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(i *Inspector) {
		if l != nil {
			i.log = l
		}
	}
}

func New(opts ...Option) *Inspector {
	i := &Inspector{
		http:          NewHTTPFetcher(HTTPConfig{}),
		rules:         DefaultRules,
		defaultBranch: "main",
		maxExtract:    DefaultMaxExtractBytes,
		log:           logrus.StandardLogger(),
	}
	for _, o := range opts {
		o(i)
	}
	return i
}

// Inspect fetches repoURL, extracts it into a scratch directory that is
// always removed, and returns the detection result. Errors are *FetchError
// or *ExtractionError; no partial result is returned alongside an error.
func (i *Inspector) Inspect(ctx context.Context, repoURL string) (Result, error) {
	src, err := ResolveSource(repoURL, i.defaultBranch)
	if err != nil {
		return Result{}, err
	}
	log := i.log.WithField("source", src.String())

	fetcher := i.http
	if src.Kind == SourceS3 {
		if i.s3 == nil {
			return Result{}, &FetchError{Source: src.String(), Err: fmt.Errorf("%w: object store is not configured", ErrUnsupportedSource)}
		}
		fetcher = i.s3
	}

	data, err := fetcher.Fetch(ctx, src)
	if err != nil {
		log.WithError(err).Warn("archive download failed")
		return Result{}, err
	}
	log.WithField("bytes", len(data)).Debug("archive downloaded")

	dir, err := os.MkdirTemp(i.tempRoot, "dockergen-repo-*")
	if err != nil {
		return Result{}, fmt.Errorf("create extraction dir: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			log.WithError(rmErr).Warn("remove extraction dir")
		}
	}()

	if err := extractZip(data, dir, i.maxExtract); err != nil {
		log.WithError(err).Warn("archive extraction failed")
		return Result{}, err
	}

	res, err := Detect(dir, i.rules)
	if err != nil {
		return Result{}, fmt.Errorf("walk extracted archive: %w", err)
	}
	log.WithFields(logrus.Fields{
		"platforms": res.Platforms,
		"manifests": res.Manifests,
	}).Info("repository inspected")
	return res, nil
}
