// Package scanner runs a full dependency inventory over a directory tree.
//
// A scan walks the tree, detects the ecosystems of each directory, parses
// every manifest found and folds the results into a models.ScanSummary.
// Failures attributable to a single file or directory are recorded in the
// summary and never stop the scan; only an unusable root does.
package scanner

import (
	"context"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/Art-Jashari/DevHealth/internal/aggregator"
	"github.com/Art-Jashari/DevHealth/internal/detector"
	"github.com/Art-Jashari/DevHealth/internal/errors"
	"github.com/Art-Jashari/DevHealth/internal/models"
	"github.com/Art-Jashari/DevHealth/internal/parsers"
	"github.com/Art-Jashari/DevHealth/internal/walker"
)

// Scanner orchestrates the dependency scanning process
type Scanner struct {
	config *models.Config
	logger *log.Logger
}

// New creates a new Scanner with the given configuration. A nil logger
// falls back to log.Default().
func New(config *models.Config, logger *log.Logger) (*Scanner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Scanner{config: config, logger: logger}, nil
}

// entry is one item produced by the walk: either a detected project or a
// directory that could not be read.
type entry struct {
	dir        string
	detections []detector.Detection
	err        error
}

// result is the outcome of scanning one entry.
type result struct {
	project *models.ProjectReport
	errs    []models.ScanError
}

// Scan performs the full dependency scan
func (s *Scanner) Scan(ctx context.Context) (*models.ScanSummary, error) {
	root, err := s.resolveRoot()
	if err != nil {
		return nil, err
	}

	// Step 1: Walk the tree and detect projects
	entries, err := s.discover(ctx, root)
	if err != nil {
		return nil, err
	}

	// Step 2: Parse projects concurrently, keeping discovery order
	results := make([]result, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.config.Workers, 1))
	for i, e := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.scanEntry(e)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Step 3: Fold into the summary
	var projects []models.ProjectReport
	var scanErrs []models.ScanError
	for _, r := range results {
		if r.project != nil {
			projects = append(projects, *r.project)
		}
		scanErrs = append(scanErrs, r.errs...)
	}
	for _, e := range scanErrs {
		s.logger.Warn("Skipped", "path", e.Path, "kind", e.Kind, "err", e.Message)
	}

	return aggregator.Summarize(root, projects, scanErrs), nil
}

// resolveRoot returns the absolute scan root, or an INVALID_PATH error when
// it is missing or not a directory.
func (s *Scanner) resolveRoot() (string, error) {
	root, err := filepath.Abs(s.config.Root)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve root").At(s.config.Root)
	}
	info, err := os.Stat(root)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "stat root").At(root)
	}
	if !info.IsDir() {
		return "", errors.New(errors.ErrCodeInvalidPath, "root is not a directory").At(root)
	}
	return root, nil
}

// discover walks root and returns projects and unreadable directories in
// walk order. The context is checked between directories.
func (s *Scanner) discover(ctx context.Context, root string) ([]entry, error) {
	opts := walker.Options{MaxDepth: s.config.MaxDepth, Ignore: s.config.Ignore}

	var entries []entry
	for dir, err := range walker.Walk(root, opts) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if err != nil {
			entries = append(entries, entry{dir: dir, err: err})
			continue
		}

		detections := detector.Detect(dir)
		if len(detections) == 0 {
			continue
		}
		s.logger.Debug("Detected project", "path", dir, "ecosystems", detector.Ecosystems(detections))
		entries = append(entries, entry{dir: dir, detections: detections})
	}
	return entries, nil
}

func (s *Scanner) scanEntry(e entry) result {
	if e.err != nil {
		return result{errs: []models.ScanError{scanError(e.err, e.dir)}}
	}

	var r result
	var reports []models.EcosystemReport
	for _, d := range e.detections {
		var manifests []string
		var parsed [][]models.Dependency
		for _, path := range d.Manifests {
			deps, err := s.parseFile(path)
			if err != nil {
				r.errs = append(r.errs, scanError(err, path))
				continue
			}
			manifests = append(manifests, path)
			parsed = append(parsed, deps)
		}
		// An ecosystem whose every manifest failed contributes no report
		if len(manifests) == 0 {
			continue
		}
		reports = append(reports, aggregator.Ecosystem(d.Ecosystem, parsers.NameKey(d.Ecosystem), manifests, parsed...))
	}

	if len(reports) > 0 {
		p := aggregator.Project(e.dir, reports...)
		r.project = &p
	}
	return r
}

// parseFile reads and parses a single manifest
func (s *Scanner) parseFile(path string) ([]models.Dependency, error) {
	parser, err := parsers.ForFile(path)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileSystem, err, "read manifest").At(path)
	}

	deps, err := parser.Parse(path, content)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Parsed manifest", "path", path, "dependencies", len(deps))
	return deps, nil
}

// scanError converts err into the record kept in the summary.
func scanError(err error, fallback string) models.ScanError {
	kind := models.ErrorKindParse
	switch errors.GetCode(err) {
	case errors.ErrCodeFileSystem, errors.ErrCodeInvalidPath:
		kind = models.ErrorKindFileSystem
	}

	return models.ScanError{
		Path:    errors.PathOf(err, fallback),
		Kind:    kind,
		Message: errors.UserMessage(err),
	}
}
