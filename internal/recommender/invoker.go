package recommender

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/festhub/eventhub/internal/domain/recommendation"
	"github.com/festhub/eventhub/internal/pkg/logger"
	"github.com/festhub/eventhub/internal/pkg/metrics"
)

const unknownError = "Unknown error"

// Config describes how to launch the decision procedure
type Config struct {
	// Command is the interpreter or binary, resolved through PATH
	Command string
	// Args are passed before the JSON argument, e.g. a script path
	Args []string
	// Dir is the working directory holding the procedure's resources
	Dir string
	// Env is appended to the inherited environment
	Env []string
	// Timeout and MaxOutputBytes are disabled when zero
	Timeout        time.Duration
	MaxOutputBytes int64
}

// Invoker runs one decision procedure process per request
type Invoker struct {
	cfg    Config
	logger *logger.Logger
}

// NewInvoker creates a new process invoker
func NewInvoker(cfg Config, log *logger.Logger) *Invoker {
	return &Invoker{
		cfg:    cfg,
		logger: log,
	}
}

// Invoke starts the procedure with the serialized request and returns its
// stdout once both streams are drained and the exit status is known.
func (i *Invoker) Invoke(ctx context.Context, req *recommendation.Request) ([]byte, error) {
	arg, err := EncodeArgument(req)
	if err != nil {
		return nil, recommendation.NewError(recommendation.ErrInvalidPayload, "", err)
	}

	runCtx := ctx
	if i.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, i.cfg.Timeout)
		defer cancel()
	}

	args := make([]string, 0, len(i.cfg.Args)+1)
	args = append(args, i.cfg.Args...)
	args = append(args, arg)

	cmd := exec.CommandContext(runCtx, i.cfg.Command, args...)
	cmd.Dir = i.cfg.Dir
	cmd.Env = append(os.Environ(), i.cfg.Env...)

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, recommendation.NewError(recommendation.ErrProcedureUnavailable, err.Error(), err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, recommendation.NewError(recommendation.ErrProcedureUnavailable, err.Error(), err)
	}

	i.logger.WithFields(map[string]interface{}{
		"command": i.cfg.Command,
		"args":    strings.Join(i.cfg.Args, " "),
		"dir":     i.cfg.Dir,
	}).Debug("Starting decision procedure")

	start := time.Now()
	if err := cmd.Start(); err != nil {
		i.logger.WithError(err).Error("Failed to start decision procedure")
		return nil, recommendation.NewError(recommendation.ErrProcedureUnavailable, err.Error(), err)
	}
	done := metrics.TrackProcess()
	defer done()

	stdout := &cappedBuffer{limit: i.cfg.MaxOutputBytes}
	stderr := &cappedBuffer{limit: i.cfg.MaxOutputBytes}

	var g errgroup.Group
	g.Go(func() error {
		_, err := io.Copy(stdout, stdoutPipe)
		return err
	})
	g.Go(func() error {
		_, err := io.Copy(stderr, stderrPipe)
		return err
	})
	drainErr := g.Wait()
	waitErr := cmd.Wait()

	elapsed := time.Since(start)
	metrics.ObserveInvocation(elapsed)

	exitCode := -1
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}
	i.logger.WithFields(map[string]interface{}{
		"exit_code":    exitCode,
		"stdout_bytes": stdout.buf.Len(),
		"stderr_bytes": stderr.buf.Len(),
		"duration_ms":  elapsed.Milliseconds(),
	}).Info("Decision procedure finished")

	switch {
	case ctx.Err() != nil:
		return nil, recommendation.NewError(recommendation.ErrProcedureFailed, ctx.Err().Error(), ctx.Err())
	case runCtx.Err() != nil:
		return nil, recommendation.NewError(recommendation.ErrProcedureFailed,
			fmt.Sprintf("timed out after %s", i.cfg.Timeout), runCtx.Err())
	case stdout.overflow || stderr.overflow:
		return nil, recommendation.NewError(recommendation.ErrProcedureFailed,
			fmt.Sprintf("output exceeded %d bytes", i.cfg.MaxOutputBytes), nil)
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			detail := strings.TrimSpace(stderr.buf.String())
			if detail == "" {
				detail = unknownError
			}
			return nil, recommendation.NewError(recommendation.ErrProcedureFailed, detail, waitErr)
		}
		return nil, recommendation.NewError(recommendation.ErrProcedureFailed, waitErr.Error(), waitErr)
	}
	if drainErr != nil {
		return nil, recommendation.NewError(recommendation.ErrProcedureFailed, drainErr.Error(), drainErr)
	}

	return stdout.buf.Bytes(), nil
}

// cappedBuffer keeps at most limit bytes and swallows the rest so the
// child never blocks on a full pipe. A zero limit means unbounded.
type cappedBuffer struct {
	buf      bytes.Buffer
	limit    int64
	overflow bool
}

func (c *cappedBuffer) Write(p []byte) (int, error) {
	if c.limit <= 0 {
		return c.buf.Write(p)
	}
	room := c.limit - int64(c.buf.Len())
	if int64(len(p)) > room {
		if room > 0 {
			c.buf.Write(p[:room])
		}
		c.overflow = true
		return len(p), nil
	}
	return c.buf.Write(p)
}
