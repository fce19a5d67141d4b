package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Probe runs `<binary> -version` and reports whether it exited zero within
// timeout. The returned string is whatever the binary printed, trimmed.
func Probe(ctx context.Context, binary string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var out bytes.Buffer
	cmd := command(ctx, binary, "-version")
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := settle(cmd, cmd.Run())
	if err == nil {
		return strings.TrimSpace(out.String()), nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", fmt.Errorf("%w: %s -version timed out after %s", ErrToolUnavailable, binary, timeout)
	}
	return "", fmt.Errorf("%w: %s -version: %v", ErrToolUnavailable, binary, err)
}
