package onepassword

import (
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
)

// ForceCLIEnv overrides the op presence check with "true" or "false"
const ForceCLIEnv = "SDLS_FORCE_OP_CLI"

var (
	availableOnce sync.Once
	available     bool

	lookPath = exec.LookPath
)

// CLIAvailable reports whether the op CLI is installed.
// The answer is computed once per process.
func CLIAvailable() bool {
	availableOnce.Do(func() {
		available = detectCLI()
	})
	return available
}

func detectCLI() bool {
	if forced := strings.TrimSpace(os.Getenv(ForceCLIEnv)); forced != "" {
		if v, err := strconv.ParseBool(forced); err == nil {
			return v
		}
	}

	_, err := lookPath(binary)
	return err == nil
}
