// Package recording fetches audio recorded on the robot and inspects it.
//
// ALAudioRecorder writes WAV files to the robot's filesystem, so getting the
// audio means copying it off over scp. Password auth goes through sshpass
// when it is installed; otherwise the copy falls back to key-based scp in
// batch mode, matching how the original tooling behaved.
package recording

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/nao-robotics/go-nao/internal/log"
)

// ErrTransferFailed is returned when neither transfer method produced the
// file locally.
var ErrTransferFailed = errors.New("recording: transfer from robot failed (is sshpass installed, or an SSH key set up?)")

// Fetcher copies files off the robot over scp.
type Fetcher struct {
	Host     string
	User     string
	Password string

	// lookPath and runner are swapped out in tests.
	lookPath func(string) (string, error)
	run      func(ctx context.Context, name string, args ...string) error
}

// NewFetcher creates a fetcher for the given robot. user is normally "nao".
func NewFetcher(host, user, password string) *Fetcher {
	return &Fetcher{
		Host:     host,
		User:     user,
		Password: password,
		lookPath: exec.LookPath,
		run: func(ctx context.Context, name string, args ...string) error {
			cmd := exec.CommandContext(ctx, name, args...)
			return cmd.Run()
		},
	}
}

// scpArgs builds the scp argument list for one transfer attempt.
// Host key checking is disabled: robots come and go on DHCP leases.
func scpArgs(usePassword bool, password, user, host, remotePath, localPath string) (string, []string) {
	remote := fmt.Sprintf("%s@%s:%s", user, host, remotePath)
	if usePassword {
		return "sshpass", []string{
			"-p", password,
			"scp",
			"-o", "StrictHostKeyChecking=no",
			"-o", "UserKnownHostsFile=/dev/null",
			remote, localPath,
		}
	}
	return "scp", []string{
		"-o", "StrictHostKeyChecking=no",
		"-o", "BatchMode=yes",
		remote, localPath,
	}
}

// Fetch copies remotePath from the robot into a temporary local file and
// returns the local path. The caller removes the file when done.
func (f *Fetcher) Fetch(ctx context.Context, remotePath string) (string, error) {
	tmp, err := os.CreateTemp("", "nao-*"+filepath.Ext(remotePath))
	if err != nil {
		return "", err
	}
	localPath := tmp.Name()
	tmp.Close()

	attempts := []bool{false}
	if _, err := f.lookPath("sshpass"); err == nil {
		attempts = []bool{true, false} // password first, key-based as fallback
	}

	for _, usePassword := range attempts {
		name, args := scpArgs(usePassword, f.Password, f.User, f.Host, remotePath, localPath)
		log.Debug("fetching recording", "tool", name, "remote", remotePath)
		if err := f.run(ctx, name, args...); err != nil {
			if ctx.Err() != nil {
				os.Remove(localPath)
				return "", ctx.Err()
			}
			continue
		}
		if info, err := os.Stat(localPath); err == nil && info.Size() > 0 {
			log.Debug("recording fetched", "local", localPath, "bytes", info.Size())
			return localPath, nil
		}
	}

	os.Remove(localPath)
	return "", ErrTransferFailed
}

// Info summarizes a WAV file.
type Info struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Duration   time.Duration
	Size       int64

	// Peak is the largest absolute sample amplitude, normalized to 0..1.
	Peak float64
}

// silenceFloor is the normalized amplitude below which a recording counts
// as silent. Room noise on the robot's microphones sits well above this.
const silenceFloor = 0.01

// Silent reports whether the recording captured nothing but silence,
// which usually means a muted or broken microphone.
func (i *Info) Silent() bool {
	return i.Peak < silenceFloor
}

// peakAmplitude scans the decoded samples for the loudest one.
func peakAmplitude(buf *audio.IntBuffer) float64 {
	if buf == nil || len(buf.Data) == 0 {
		return 0
	}
	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = 16
	}
	peak := 0
	for _, s := range buf.Data {
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	return float64(peak) / float64(int(1)<<(bitDepth-1))
}

// Inspect decodes the WAV file at path and returns its format summary plus
// the peak amplitude of its samples.
func Inspect(path string) (*Info, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	dec := wav.NewDecoder(file)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("recording: %s is not a valid WAV file", path)
	}
	dur, err := dec.Duration()
	if err != nil {
		return nil, fmt.Errorf("recording: read duration: %w", err)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("recording: decode samples: %w", err)
	}

	return &Info{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
		Duration:   dur,
		Size:       stat.Size(),
		Peak:       peakAmplitude(buf),
	}, nil
}

// Read loads the whole WAV file into memory, for upload to a transcription
// API. Recordings are a few seconds long, so this stays small.
func Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}
