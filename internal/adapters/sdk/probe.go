// Package sdk discovers the platform context from installed SDKs.
package sdk

import (
	"bufio"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/zerr"
)

// Environment variables naming the Android SDK, in lookup order.
var androidHomeVars = []string{"ANDROID_HOME", "ANDROID_SDK_ROOT"}

// Probe implements ports.PlatformProbe against the local filesystem.
type Probe struct {
	// LookupEnv reads the process environment. Replaced in tests.
	LookupEnv func(key string) (string, bool)
}

// NewProbe creates a Probe reading the process environment.
func NewProbe() *Probe {
	return &Probe{LookupEnv: os.LookupEnv}
}

// Probe inspects the SDK named by sdk.root and the Android SDK named by
// sdk.dir or ANDROID_HOME. Relative override paths are joined to root.
// Values it cannot find come from fallback.
func (p *Probe) Probe(ctx context.Context, root string, overrides domain.Overrides, fallback domain.PlatformFallback) (domain.PlatformContext, error) {
	if err := ctx.Err(); err != nil {
		return domain.PlatformContext{}, err
	}

	pc := domain.PlatformContext{
		CompileVersion: fallback.CompileVersion,
		TargetVersion:  fallback.TargetVersion,
		MinVersion:     fallback.MinVersion,
	}
	if fallback.KotlinVersion != "" {
		pc.Runtime = domain.RuntimeDependency(fallback.KotlinVersion)
	}

	if sdkRoot, ok := overrides.Value(domain.KeySDKRoot); ok && strings.TrimSpace(sdkRoot) != "" {
		info, err := inspectSDK(within(root, strings.TrimSpace(sdkRoot)))
		if err != nil {
			return domain.PlatformContext{}, err
		}
		pc.SDK = info
	}

	androidSDK := p.androidSDK(root, overrides)
	if androidSDK == "" {
		return pc, nil
	}

	level, err := latestPlatform(androidSDK)
	if err != nil {
		return domain.PlatformContext{}, err
	}
	if level > 0 {
		pc.AndroidSDK = androidSDK
		pc.CompileVersion = level
		pc.TargetVersion = level
	}

	ndk, err := latestNDK(androidSDK)
	if err != nil {
		return domain.PlatformContext{}, err
	}
	pc.NDKVersion = ndk

	return pc, nil
}

func (p *Probe) androidSDK(root string, overrides domain.Overrides) string {
	if dir, ok := overrides.Value(domain.KeyAndroidSDK); ok && strings.TrimSpace(dir) != "" {
		return within(root, strings.TrimSpace(dir))
	}
	lookup := p.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, key := range androidHomeVars {
		if dir, ok := lookup(key); ok && dir != "" {
			return dir
		}
	}
	return ""
}

// within resolves a configured path against the project root.
func within(root, path string) string {
	if root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func inspectSDK(root string) (domain.SDKInfo, error) {
	info := domain.SDKInfo{Root: root}

	stat, err := os.Stat(root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return info, nil
	case err != nil:
		return info, zerr.With(zerr.Wrap(err, domain.ErrProbeFailed.Error()), "path", root)
	}
	info.Exists = stat.IsDir()
	if !info.Exists {
		return info, nil
	}

	version, err := readVersionFile(filepath.Join(root, "version"))
	if err != nil {
		return info, err
	}
	info.Version = version
	return info, nil
}

// readVersionFile returns the first non-empty line of the SDK's version file.
func readVersionFile(path string) (string, error) {
	// #nosec G304 -- path is derived from the configured sdk.root
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", zerr.With(zerr.Wrap(err, domain.ErrProbeFailed.Error()), "path", path)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrProbeFailed.Error()), "path", path)
	}
	return "", nil
}

// latestPlatform returns the highest API level installed under <sdk>/platforms.
// It returns 0 when none is installed.
func latestPlatform(sdk string) (int, error) {
	all, err := filepath.Glob(filepath.Join(sdk, "platforms", "android-*"))
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrProbeFailed.Error()), "path", sdk)
	}

	best := 0
	for _, platform := range all {
		// The glob guarantees the "android-" prefix.
		level, err := strconv.Atoi(filepath.Base(platform)[len("android-"):])
		if err != nil {
			continue
		}
		if level > best {
			best = level
		}
	}
	return best, nil
}

// latestNDK returns the highest versioned directory under <sdk>/ndk, or "".
func latestNDK(sdk string) (string, error) {
	entries, err := os.ReadDir(filepath.Join(sdk, "ndk"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", zerr.With(zerr.Wrap(err, domain.ErrProbeFailed.Error()), "path", sdk)
	}

	var best []int
	var bestName string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		parts, ok := parseVersion(e.Name())
		if !ok {
			continue
		}
		if bestName == "" || compareVersions(parts, best) > 0 {
			best = parts
			bestName = e.Name()
		}
	}
	return bestName, nil
}

func parseVersion(s string) ([]int, bool) {
	fields := strings.Split(s, ".")
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

func compareVersions(a, b []int) int {
	for i := 0; i < len(a) || i < len(b); i++ {
		var x, y int
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		if x != y {
			if x > y {
				return 1
			}
			return -1
		}
	}
	return 0
}
