package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jpillora/backoff"
)

// Download defaults
const (
	DefaultMaxParallel = 2
	MaxRetries         = 2
	RequestTimeout     = 2 * time.Minute
	RetryMinDelay      = 500 * time.Millisecond
	RetryMaxDelay      = 5 * time.Second
	PartialSuffix      = ".part"
	FallbackName       = "media"
)

// StatusError is returned for unexpected HTTP responses
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.Code)
}

// Temporary reports whether retrying may succeed
func (e *StatusError) Temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// Service handles download operations
type Service struct {
	cacheDir   string
	client     *http.Client
	slots      chan struct{}
	retryMin   time.Duration
	retryMax   time.Duration
	onProgress func(src string, progress float64) // callback for UI updates

	locksMutex sync.Mutex
	locks      map[string]*sync.Mutex
}

// NewService creates a new download service
func NewService(cacheDir string, maxParallel int) *Service {
	if maxParallel < 1 {
		maxParallel = DefaultMaxParallel
	}
	return &Service{
		cacheDir: cacheDir,
		client:   &http.Client{Timeout: RequestTimeout},
		slots:    make(chan struct{}, maxParallel),
		retryMin: RetryMinDelay,
		retryMax: RetryMaxDelay,
		locks:    make(map[string]*sync.Mutex),
	}
}

// SetProgressCallback sets the callback function for download progress in 0..1
func (s *Service) SetProgressCallback(callback func(src string, progress float64)) {
	s.onProgress = callback
}

// IsRemote reports whether src is fetched over HTTP
func IsRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Prepare returns a local file for src, downloading remote sources once
func (s *Service) Prepare(ctx context.Context, src string) (string, error) {
	if !IsRemote(src) {
		return src, nil
	}
	output, err := s.OutputPath(src)
	if err != nil {
		return "", err
	}

	lock := s.lockFor(output)
	lock.Lock()
	defer lock.Unlock()

	if _, err := os.Stat(output); err == nil {
		return output, nil
	}
	if err := os.MkdirAll(s.cacheDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	select {
	case s.slots <- struct{}{}:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	defer func() { <-s.slots }()

	if err := s.downloadWithRetry(ctx, src, output); err != nil {
		return "", err
	}
	log.Printf("download: %s -> %s", src, output)
	return output, nil
}

// OutputPath returns the cache location for src, keeping its file extension
func (s *Service) OutputPath(src string) (string, error) {
	u, err := url.Parse(src)
	if err != nil {
		return "", fmt.Errorf("invalid media url %q: %w", src, err)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		name = FallbackName
	}
	ext := path.Ext(name)
	base := sanitize(strings.TrimSuffix(name, ext))
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(src))
	return filepath.Join(s.cacheDir, base+"-"+id.String()[:8]+ext), nil
}

// downloadWithRetry attempts download with retry logic
func (s *Service) downloadWithRetry(ctx context.Context, src, output string) error {
	b := s.newBackoff()
	var lastErr error

	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(b.Duration()):
			case <-ctx.Done():
				return ctx.Err()
			}
			log.Printf("download: retrying %s, attempt %d", src, attempt+1)
		}

		err := s.download(ctx, src, output)
		if err == nil {
			return nil
		}
		lastErr = err
		log.Printf("download: attempt %d failed for %s: %v", attempt+1, src, err)

		if ctx.Err() != nil {
			return ctx.Err()
		}
		var se *StatusError
		if errors.As(err, &se) && !se.Temporary() {
			return err
		}
	}
	return lastErr
}

// newBackoff returns the jittered exponential delays between attempts
func (s *Service) newBackoff() *backoff.Backoff {
	return &backoff.Backoff{Min: s.retryMin, Max: s.retryMax, Factor: 2, Jitter: true}
}

func (s *Service) download(ctx context.Context, src, output string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{URL: src, Code: resp.StatusCode}
	}

	partial := output + PartialSuffix
	f, err := os.Create(partial)
	if err != nil {
		return err
	}

	w := &progressWriter{total: resp.ContentLength, report: func(p float64) { s.notifyProgress(src, p) }}
	_, err = io.Copy(f, io.TeeReader(resp.Body, w))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(partial)
		return err
	}
	return os.Rename(partial, output)
}

// notifyProgress calls the progress callback if set
func (s *Service) notifyProgress(src string, progress float64) {
	if s.onProgress != nil {
		s.onProgress(src, progress)
	}
}

func (s *Service) lockFor(output string) *sync.Mutex {
	s.locksMutex.Lock()
	defer s.locksMutex.Unlock()
	l, ok := s.locks[output]
	if !ok {
		l = &sync.Mutex{}
		s.locks[output] = l
	}
	return l
}

// progressWriter reports the fraction written whenever it advances by a percent
type progressWriter struct {
	total   int64
	written int64
	last    int
	report  func(float64)
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.written += int64(len(p))
	if w.total > 0 {
		percent := int(w.written * 100 / w.total)
		if percent != w.last {
			w.last = percent
			w.report(float64(w.written) / float64(w.total))
		}
	}
	return len(p), nil
}

func sanitize(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	if name == "" {
		return FallbackName
	}
	return name
}
