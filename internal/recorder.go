package internal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"
)

var (
	// ErrAlreadyRecording is returned when Start is called mid-session.
	// Starting twice is an illegal transition, not a silent restart.
	ErrAlreadyRecording = errors.New("recording already in progress")
	// ErrNotRecording is returned when Stop is called with no session.
	ErrNotRecording = errors.New("no recording in progress")
	// ErrCaptureUnavailable means no audio capture tool exists on this
	// system.
	ErrCaptureUnavailable = errors.New("no audio capture tool found")
)

// CaptureOpener opens an audio source. Opening can fail with a permission
// error (device busy or denied) or ErrCaptureUnavailable.
type CaptureOpener func() (io.ReadCloser, error)

// Clip is a finished recording ready to stage as an audio attachment.
type Clip struct {
	Data        []byte
	Duration    time.Duration
	DisplayName string
}

// Recorder captures audio from a CaptureOpener into memory. It is a two
// state machine, idle and recording; at most one session exists at a time.
// The capture source is closed on Stop so the device is always released.
type Recorder struct {
	opener CaptureOpener

	mu        sync.Mutex
	recording bool
	source    io.ReadCloser
	chunks    [][]byte
	startedAt time.Time
	done      chan struct{}
}

func NewRecorder(opener CaptureOpener) *Recorder {
	return &Recorder{opener: opener}
}

func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Elapsed reports how long the active session has been running. Zero when
// idle.
func (r *Recorder) Elapsed() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.recording {
		return 0
	}
	return time.Since(r.startedAt)
}

// Start opens the capture source and begins draining it. On opener failure
// the recorder stays idle and the error is returned for the caller to
// surface.
func (r *Recorder) Start() error {
	r.mu.Lock()
	if r.recording {
		r.mu.Unlock()
		return ErrAlreadyRecording
	}
	r.mu.Unlock()

	source, err := r.opener()
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.recording = true
	r.source = source
	r.chunks = nil
	r.startedAt = time.Now()
	r.done = make(chan struct{})
	done := r.done
	r.mu.Unlock()

	go func() {
		defer close(done)
		buf := make([]byte, 32*1024)
		for {
			n, err := source.Read(buf)
			if n > 0 {
				chunk := append([]byte(nil), buf[:n]...)
				r.mu.Lock()
				r.chunks = append(r.chunks, chunk)
				r.mu.Unlock()
			}
			if err != nil {
				return
			}
		}
	}()
	return nil
}

// Stop finalizes the captured chunks into a single clip, closes the capture
// source, and returns the recorder to idle.
func (r *Recorder) Stop() (*Clip, error) {
	r.mu.Lock()
	if !r.recording {
		r.mu.Unlock()
		return nil, ErrNotRecording
	}
	source := r.source
	done := r.done
	startedAt := r.startedAt
	r.recording = false
	r.source = nil
	r.mu.Unlock()

	// Closing the source unblocks the drain goroutine.
	_ = source.Close()
	<-done

	r.mu.Lock()
	var size int
	for _, chunk := range r.chunks {
		size += len(chunk)
	}
	data := make([]byte, 0, size)
	for _, chunk := range r.chunks {
		data = append(data, chunk...)
	}
	r.chunks = nil
	r.mu.Unlock()

	return &Clip{
		Data:        data,
		Duration:    time.Since(startedAt),
		DisplayName: fmt.Sprintf("voice-%s.wav", startedAt.Format("20060102-150405")),
	}, nil
}

// captureCommands lists the recorders probed on PATH, in preference order.
// Each streams WAV to stdout until interrupted.
var captureCommands = [][]string{
	{"arecord", "-q", "-f", "cd", "-t", "wav", "-"},
	{"rec", "-q", "-t", "wav", "-"},
}

// CaptureToolAvailable reports whether any known capture binary exists.
// Resolved once at startup as the recording capability flag.
func CaptureToolAvailable() bool {
	for _, candidate := range captureCommands {
		if _, err := exec.LookPath(candidate[0]); err == nil {
			return true
		}
	}
	return false
}

// SystemCaptureOpener shells out to the first available capture tool and
// streams its stdout.
func SystemCaptureOpener() (io.ReadCloser, error) {
	for _, candidate := range captureCommands {
		path, err := exec.LookPath(candidate[0])
		if err != nil {
			continue
		}
		cmd := exec.Command(path, candidate[1:]...)
		stdout, err := cmd.StdoutPipe()
		if err != nil {
			return nil, err
		}
		if err := cmd.Start(); err != nil {
			return nil, fmt.Errorf("start %s: %w", candidate[0], err)
		}
		return &commandSource{cmd: cmd, out: stdout}, nil
	}
	return nil, ErrCaptureUnavailable
}

// commandSource adapts a running capture process to io.ReadCloser. Close
// interrupts the process so it flushes and exits, releasing the device.
type commandSource struct {
	cmd *exec.Cmd
	out io.ReadCloser
}

func (s *commandSource) Read(p []byte) (int, error) {
	return s.out.Read(p)
}

func (s *commandSource) Close() error {
	_ = s.cmd.Process.Signal(os.Interrupt)
	// Wait reaps the process and closes the stdout pipe. Capture tools may
	// exit non-zero on interrupt; that is not a failure here.
	_ = s.cmd.Wait()
	return nil
}
