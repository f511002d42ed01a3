package archive

import (
	"os"
	"strconv"
	"strings"

	"go.trai.ch/mpy/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/mod/semver"
)

// baseVersion is bumped when no archive exists yet.
const baseVersion = "v0.0.0"

// LatestVersion returns the highest released version among the archives named
// name in dir. It returns baseVersion when there are none.
func LatestVersion(dir, name string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return baseVersion, nil
		}
		return "", zerr.With(zerr.Wrap(err, "failed to read archive directory"), "path", dir)
	}

	latest := baseVersion
	prefix := name + "-"
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		v, ok := strings.CutPrefix(e.Name(), prefix)
		if !ok {
			continue
		}
		v, ok = strings.CutSuffix(v, ".zip")
		if !ok || !semver.IsValid(v) || semver.Prerelease(v) != "" || semver.Build(v) != "" {
			continue
		}
		if semver.Compare(v, latest) > 0 {
			latest = semver.Canonical(v)
		}
	}
	return latest, nil
}

// NextVersion increments the component of current selected by bump.
func NextVersion(current string, bump domain.Bump) (string, error) {
	if !semver.IsValid(current) {
		return "", zerr.With(zerr.Wrap(domain.ErrArchiveFailed, "invalid version"), "version", current)
	}

	parts := strings.SplitN(strings.TrimPrefix(semver.Canonical(current), "v"), ".", 3)
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return "", zerr.With(zerr.Wrap(domain.ErrArchiveFailed, "invalid version"), "version", current)
		}
		nums[i] = n
	}

	switch bump {
	case domain.BumpMajor:
		nums = []int{nums[0] + 1, 0, 0}
	case domain.BumpMinor:
		nums = []int{nums[0], nums[1] + 1, 0}
	case domain.BumpPatch, "":
		nums[2]++
	default:
		return "", zerr.With(zerr.Wrap(domain.ErrInvalidBump, "failed to bump version"), "value", string(bump))
	}

	return "v" + strconv.Itoa(nums[0]) + "." + strconv.Itoa(nums[1]) + "." + strconv.Itoa(nums[2]), nil
}
