// Package calculator delegates order math to the external order processor.
//
// Each call spawns one process: `<command...> <selector> <json>`. The JSON
// payload travels as a single argv element, so no shell quoting is involved.
// The processor answers with one JSON document on stdout.
package calculator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"purem-oda-shop/shared/pkg/metrics"
	"purem-oda-shop/shared/pkg/models"
)

const (
	CommandCalculate = "calculate"
	CommandValidate  = "validate"
)

type Bridge struct {
	name    string
	args    []string
	dir     string
	timeout time.Duration
	log     zerolog.Logger
}

// New builds a bridge from a whitespace separated command line such as
// "./bin/order-processor" or "java -cp java-service OrderProcessor".
// A zero timeout leaves only the caller's context in charge.
func New(command, dir string, timeout time.Duration, log zerolog.Logger) (*Bridge, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, errors.New("calculator command is empty")
	}
	return &Bridge{
		name:    fields[0],
		args:    fields[1:],
		dir:     dir,
		timeout: timeout,
		log:     log,
	}, nil
}

// Calculate checks that order.items is an array, then runs the calculate command.
func (b *Bridge) Calculate(ctx context.Context, order json.RawMessage) (json.RawMessage, error) {
	var shape struct {
		Items json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(order, &shape); err != nil {
		return nil, ErrInvalidInput
	}
	if items := bytes.TrimSpace(shape.Items); len(items) == 0 || items[0] != '[' {
		return nil, ErrInvalidInput
	}
	return b.run(ctx, CommandCalculate, order)
}

// Validate forwards the order as is.
func (b *Bridge) Validate(ctx context.Context, order json.RawMessage) (json.RawMessage, error) {
	return b.run(ctx, CommandValidate, order)
}

// Status does not probe the processor.
func (b *Bridge) Status() models.ServiceStatus {
	return models.ServiceStatus{
		Status:  "available",
		Message: "Order processor service is ready",
	}
}

func (b *Bridge) run(ctx context.Context, command string, order json.RawMessage) (json.RawMessage, error) {
	var payload bytes.Buffer
	if err := json.Compact(&payload, order); err != nil {
		return nil, &ExecutionError{Command: command, Err: fmt.Errorf("encode payload: %w", err)}
	}

	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	args := make([]string, 0, len(b.args)+2)
	args = append(args, b.args...)
	args = append(args, command, payload.String())

	cmd := exec.CommandContext(ctx, b.name, args...)
	cmd.Dir = b.dir
	// children that inherit the pipes must not hold Wait past a kill
	cmd.WaitDelay = 2 * time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	started := time.Now()
	runErr := cmd.Run()

	out := bytes.TrimSpace(stdout.Bytes())
	errText := strings.TrimSpace(stderr.String())

	var exitErr *exec.ExitError
	switch {
	case runErr != nil && ctx.Err() != nil:
		metrics.ObserveProcessor(command, "timeout", started)
		return nil, &ExecutionError{Command: command, Err: ctx.Err()}
	case runErr != nil && !errors.As(runErr, &exitErr):
		metrics.ObserveProcessor(command, "launch_error", started)
		return nil, &ExecutionError{Command: command, Err: runErr}
	case len(out) == 0 && errText != "":
		metrics.ObserveProcessor(command, "stderr", started)
		return nil, &ExternalServiceError{Command: command, Stderr: errText}
	case len(out) == 0:
		metrics.ObserveProcessor(command, "no_output", started)
		if runErr != nil {
			return nil, &ExecutionError{Command: command, Err: runErr}
		}
		return nil, &ExecutionError{Command: command, Err: errors.New("no output")}
	case !json.Valid(out):
		metrics.ObserveProcessor(command, "bad_output", started)
		return nil, &ExecutionError{Command: command, Err: fmt.Errorf("parse output: %q", truncate(out, 200))}
	}

	if runErr != nil {
		b.log.Debug().Str("command", command).Int("exit_code", exitErr.ExitCode()).Msg("processor exited non-zero with a result")
	}
	if errText != "" {
		b.log.Warn().Str("command", command).Str("stderr", errText).Msg("processor wrote to stderr")
	}
	metrics.ObserveProcessor(command, "ok", started)
	return json.RawMessage(out), nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
