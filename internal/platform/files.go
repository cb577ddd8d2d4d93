package platform

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
)

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// MaxNameDifference is how many characters a renamed media file may differ by
const MaxNameDifference = 10

var ErrRemoteSource = errors.New("remote media sources are not supported")

// OpenFileInManager opens the file in the system file manager and highlights it
func OpenFileInManager(filePath string) error {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return fmt.Errorf("file does not exist: %w", err)
	}

	if runtime.GOOS == OSLinux {
		return openFileInManagerLinux(absPath)
	}
	cmd, err := revealCommand(runtime.GOOS, absPath)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// revealCommand builds the command selecting path in the file manager of goos
func revealCommand(goos, path string) (*exec.Cmd, error) {
	switch goos {
	case OSDarwin:
		return exec.Command(OpenCommand, MacOSSelectFlag, path), nil
	case OSWindows:
		return exec.Command(ExplorerCommand, WindowsSelectParam, path), nil
	case OSLinux:
		// selection is not standardized on Linux, open the parent directory
		return exec.Command(XDGOpenCommand, filepath.Dir(path)), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}

func openFileInManagerLinux(filePath string) error {
	cmd, _ := revealCommand(OSLinux, filePath)
	if err := cmd.Run(); err == nil {
		return nil
	}

	dir := filepath.Dir(filePath)
	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}
	return fmt.Errorf("no suitable file manager found")
}

// ResolveSource turns the media location of an element into a local file path.
// Relative locations are taken relative to baseDir, the directory of the unit file.
// A missing file falls back to a file of the same type with a similar name,
// as left behind by renaming or re-encoding tools.
func ResolveSource(baseDir, src string) (string, error) {
	if src == "" {
		return "", fmt.Errorf("media source is empty")
	}
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return "", fmt.Errorf("%w: %s", ErrRemoteSource, src)
	}

	path := filepath.FromSlash(src)
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	return findSimilarFile(path)
}

func findSimilarFile(path string) (string, error) {
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		entryName := entry.Name()
		entryExt := filepath.Ext(entryName)
		if !strings.EqualFold(entryExt, ext) {
			continue
		}
		if isSimilarFileName(strings.TrimSuffix(entryName, entryExt), base) {
			candidates = append(candidates, filepath.Join(dir, entryName))
		}
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("file not found: %s", path)
	}
	sort.Strings(candidates)
	return candidates[0], nil
}

// isSimilarFileName reports whether two base names are close enough to be the same file
func isSimilarFileName(name1, name2 string) bool {
	clean1 := strings.ToLower(strings.TrimSpace(name1))
	clean2 := strings.ToLower(strings.TrimSpace(name2))
	if clean1 == "" || clean2 == "" {
		return false
	}
	if clean1 == clean2 {
		return true
	}

	norm := strings.NewReplacer("-", " ", "_", " ")
	if norm.Replace(clean1) == norm.Replace(clean2) {
		return true
	}

	// truncated or suffixed names
	if strings.Contains(clean1, clean2) || strings.Contains(clean2, clean1) {
		diff := len(clean1) - len(clean2)
		if diff < 0 {
			diff = -diff
		}
		return diff <= MaxNameDifference
	}
	return false
}
