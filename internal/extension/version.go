package extension

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CompareVersions orders two extension versions. VSIX versions may carry a
// fourth "revision" component, which semver has no slot for, so it is
// compared separately after major.minor.patch.
func CompareVersions(a, b string) (int, error) {
	av, arev, err := splitVersion(a)
	if err != nil {
		return 0, err
	}
	bv, brev, err := splitVersion(b)
	if err != nil {
		return 0, err
	}

	if c := av.Compare(bv); c != 0 {
		return c, nil
	}
	switch {
	case arev < brev:
		return -1, nil
	case arev > brev:
		return 1, nil
	}
	return 0, nil
}

func splitVersion(s string) (*semver.Version, int, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ".")

	rev := 0
	if len(parts) == 4 {
		n, err := strconv.Atoi(parts[3])
		if err != nil {
			return nil, 0, fmt.Errorf("invalid extension version %q: %w", s, err)
		}
		rev = n
		parts = parts[:3]
	}

	v, err := semver.NewVersion(strings.Join(parts, "."))
	if err != nil {
		return nil, 0, fmt.Errorf("invalid extension version %q: %w", s, err)
	}
	return v, rev, nil
}
