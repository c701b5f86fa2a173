// Package loop runs one game session against a terminal with the standard
// Input → Update → Draw cycle at a fixed frame rate.
package loop

import (
	"bufio"
	"context"
	"io"
)

// Run plays a session on r and w until the player quits, the input closes or ctx is done.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	return NewSession(r, w, opts).Run(ctx)
}
