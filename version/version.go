package version

import "fmt"

const (
	majorVersion uint32 = 1
	minorVersion uint32 = 0
	patchVersion uint32 = 0
)

// set with -ldflags "-X massnet.org/sha2/version.gitCommit=<hash>"
var gitCommit string

type version struct {
	majorVersion uint32
	minorVersion uint32
	patchVersion uint32
	commit       string
}

// Format version to "<majorVersion>.<minorVersion>.<patchVersion>[+<gitCommit>]",
// like "1.0.0", or "1.0.0+1a2b3c4d".
func (v version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.majorVersion, v.minorVersion, v.patchVersion)
	if len(v.commit) >= 8 {
		s += "+" + v.commit[:8]
	}
	return s
}

func current() version {
	return version{
		majorVersion: majorVersion,
		minorVersion: minorVersion,
		patchVersion: patchVersion,
		commit:       gitCommit,
	}
}

func GetVersion() string {
	return current().String()
}

// GitCommit returns the full commit hash the binary was built from, if known.
func GitCommit() string {
	return gitCommit
}
