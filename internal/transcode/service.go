package transcode

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// FFmpeg constants for decoding to PCM
const (
	AudioCodec      = "pcm_s16le"
	AudioSampleRate = "48000"
	AudioChannels   = "2"
	OutputFormat    = "wav"

	// Executable and I/O constants
	FFmpegCommand       = "ffmpeg"
	FFprobeCommand      = "ffprobe"
	FFprobeLogLevel     = "error"
	FFprobeShowEntries  = "format=duration"
	FFprobeOutputFormat = "csv=p=0"
	ProgressPipeTarget  = "pipe:2"
	ProgressTimePrefix  = "out_time_us="
	OutputExtensionWAV  = ".wav"
	PartialSuffix       = ".part"
)

// Service converts media the speaker cannot decode into cached WAV files
type Service struct {
	cacheDir   string
	onProgress func(input string, progress float64)

	locksMutex sync.Mutex
	locks      map[string]*sync.Mutex
}

// NewService creates a transcoder writing into cacheDir
func NewService(cacheDir string) *Service {
	return &Service{
		cacheDir: cacheDir,
		locks:    make(map[string]*sync.Mutex),
	}
}

// DefaultCacheDir returns the per-user cache directory for decoded media
func DefaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "unit-player", "media")
}

// SetProgressCallback sets the callback receiving conversion progress in 0..1
func (s *Service) SetProgressCallback(callback func(input string, progress float64)) {
	s.onProgress = callback
}

// NeedsTranscode reports whether path must be converted before playback
func NeedsTranscode(path string) bool {
	return !strings.EqualFold(filepath.Ext(path), OutputExtensionWAV)
}

// Prepare returns a WAV file for input, converting and caching it when needed
func (s *Service) Prepare(ctx context.Context, input string) (string, error) {
	if !NeedsTranscode(input) {
		return input, nil
	}
	inInfo, err := os.Stat(input)
	if err != nil {
		return "", fmt.Errorf("input file does not exist: %s", input)
	}

	output := s.OutputPath(input)
	lock := s.lockFor(output)
	lock.Lock()
	defer lock.Unlock()

	if outInfo, err := os.Stat(output); err == nil && !outInfo.ModTime().Before(inInfo.ModTime()) {
		return output, nil
	}
	if err := os.MkdirAll(s.cacheDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	duration, err := s.getDuration(ctx, input)
	if err != nil {
		// progress is not reported without a duration
		log.Printf("transcode: failed to get duration for %s: %v", input, err)
	}

	partial := output + PartialSuffix
	cmd := exec.CommandContext(ctx, FFmpegCommand, BuildFFmpegArgs(input, partial)...)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", fmt.Errorf("failed to create stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	// stderr must be drained before Wait
	s.monitorProgress(stderr, input, duration)
	err = cmd.Wait()

	if err != nil {
		os.Remove(partial)
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("ffmpeg failed for %s: %w", input, err)
	}
	if err := os.Rename(partial, output); err != nil {
		os.Remove(partial)
		return "", fmt.Errorf("failed to store %s: %w", output, err)
	}
	log.Printf("transcode: %s -> %s", input, output)
	return output, nil
}

// OutputPath returns the cache location for input. The name is stable for the same
// absolute input path.
func (s *Service) OutputPath(input string) string {
	abs, err := filepath.Abs(input)
	if err != nil {
		abs = input
	}
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.ToSlash(abs)))
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(s.cacheDir, base+"-"+id.String()[:8]+OutputExtensionWAV)
}

// BuildFFmpegArgs builds the ffmpeg command arguments. The format is given
// explicitly since the partial output file carries no usable extension.
func BuildFFmpegArgs(inputPath, outputPath string) []string {
	return []string{
		"-y",
		"-i", inputPath,
		"-vn",
		"-acodec", AudioCodec,
		"-ar", AudioSampleRate,
		"-ac", AudioChannels,
		"-f", OutputFormat,
		"-progress", ProgressPipeTarget,
		"-nostats",
		outputPath,
	}
}

// getDuration gets the duration of a media file using ffprobe
func (s *Service) getDuration(ctx context.Context, filePath string) (float64, error) {
	cmd := exec.CommandContext(ctx, FFprobeCommand, "-v", FFprobeLogLevel, "-show_entries", FFprobeShowEntries, "-of", FFprobeOutputFormat, filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}
	return duration, nil
}

// monitorProgress monitors ffmpeg progress output
func (s *Service) monitorProgress(stderr io.Reader, input string, totalDuration float64) {
	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		progress, ok := parseProgress(scanner.Text(), totalDuration)
		if ok && s.onProgress != nil {
			s.onProgress(input, progress)
		}
	}
}

// parseProgress reads a line like out_time_us=123456 as a fraction of totalDuration
func parseProgress(line string, totalDuration float64) (float64, bool) {
	line = strings.TrimSpace(line)
	if totalDuration <= 0 || !strings.HasPrefix(line, ProgressTimePrefix) {
		return 0, false
	}
	us, err := strconv.ParseInt(strings.TrimPrefix(line, ProgressTimePrefix), 10, 64)
	if err != nil {
		return 0, false
	}
	progress := float64(us) / 1000000.0 / totalDuration
	if progress > 1.0 {
		progress = 1.0
	}
	return progress, true
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
