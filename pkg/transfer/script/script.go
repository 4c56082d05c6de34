package script

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/williamokano/sftp_downloader/pkg/transfer"
)

// maxLineSize bounds a single log entry; longer lines are logged in chunks
const maxLineSize = 1024 * 1024

// waitDelay bounds how long Wait keeps copying output after the child was killed
const waitDelay = 5 * time.Second

// pythonCodecs maps WHATWG encoding names to Python codec names where they differ
var pythonCodecs = map[string]string{
	"shift_jis":      "cp932",
	"euc-kr":         "cp949",
	"big5":           "big5hkscs",
	"iso-2022-jp":    "iso2022_jp",
	"macintosh":      "mac_roman",
	"x-mac-cyrillic": "mac_cyrillic",
	"windows-874":    "cp874",
	"ibm866":         "cp866",
}

type Downloader struct {
	cfg            *Config
	encoding       encoding.Encoding // nil for utf-8
	pythonEncoding string            // PYTHONIOENCODING handed to the child
	logger         zerolog.Logger
}

func init() {
	transfer.RegisterDownloader("script", func(ctx context.Context, cfg transfer.Config) (transfer.Downloader, error) {
		return New(cfg)
	})
}

// New creates a downloader that delegates the transfer to an external script
func New(cfg transfer.Config) (*Downloader, error) {
	scriptCfg, err := parseConfig(cfg.Options)
	if err != nil {
		return nil, err
	}

	enc, err := htmlindex.Get(scriptCfg.OutputEncoding)
	if err != nil {
		return nil, fmt.Errorf("unsupported output encoding %q: %w", scriptCfg.OutputEncoding, err)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		return nil, fmt.Errorf("unsupported output encoding %q: %w", scriptCfg.OutputEncoding, err)
	}
	if name == "utf-8" {
		enc = nil
	}

	return &Downloader{
		cfg:            scriptCfg,
		encoding:       enc,
		pythonEncoding: pythonEncoding(name),
		logger:         cfg.Logger,
	}, nil
}

func (d *Downloader) Mode() string { return "script" }

// pythonEncoding returns the Python codec name for a canonical WHATWG encoding name
func pythonEncoding(name string) string {
	if codec, ok := pythonCodecs[name]; ok {
		return codec
	}
	return name
}

// Args returns the positional arguments handed to the script:
// host, port, username, key path, remote path, local path and, when set, the passphrase.
func Args(req transfer.Request) []string {
	args := []string{
		req.Host,
		strconv.Itoa(req.Port),
		req.Username,
		req.KeyPath,
		req.RemotePath,
		req.LocalPath,
	}
	if req.Passphrase != "" {
		args = append(args, req.Passphrase)
	}
	return args
}

// Download runs the script and waits for it. Exit code 0 is success.
func (d *Downloader) Download(ctx context.Context, req transfer.Request) error {
	args := append([]string{d.cfg.ScriptFile}, Args(req)...)

	cmd := exec.CommandContext(ctx, d.cfg.Command, args...)
	cmd.Env = append(os.Environ(), "PYTHONIOENCODING="+d.pythonEncoding)
	if d.cfg.ScriptDir != "" {
		cmd.Dir = d.cfg.ScriptDir
	}
	// Cancellation kills the script together with anything it started
	killProcessGroup(cmd)
	cmd.WaitDelay = waitDelay

	log := d.logger.With().
		Str("command", d.cfg.Command).
		Str("script", d.cfg.ScriptFile).
		Logger()

	logArgs := append([]string(nil), args...)
	if req.Passphrase != "" {
		logArgs[len(logArgs)-1] = "******"
	}
	log.Debug().Strs("args", logArgs).Str("dir", cmd.Dir).Msg("starting download script")

	// Both streams are drained concurrently so a child filling one pipe
	// buffer never blocks. The writers are closed below once Wait returns.
	stdoutR, stdoutW := io.Pipe()
	stderrR, stderrW := io.Pipe()
	cmd.Stdout = stdoutW
	cmd.Stderr = stderrW

	var g errgroup.Group
	g.Go(func() error {
		return d.drain(stdoutR, func(line string) {
			log.Info().Str("stream", "stdout").Msg(line)
		})
	})
	g.Go(func() error {
		return d.drain(stderrR, func(line string) {
			log.Error().Str("stream", "stderr").Msg(line)
		})
	})

	err := cmd.Start()
	if err == nil {
		err = cmd.Wait()
	}
	stdoutW.Close()
	stderrW.Close()
	drainErr := g.Wait()

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) && cmd.Process == nil {
			log.Debug().Err(err).Msg("failed to start download script")
			return transfer.WrapError(transfer.ErrProcessFailed, "start", err)
		}

		code := -1
		if exitErr != nil {
			code = exitErr.ExitCode()
		}
		log.Debug().Err(err).Int("exit_code", code).Msg("download script failed")
		return &transfer.Error{
			Kind:     transfer.ErrProcessFailed,
			Op:       "wait",
			Err:      err,
			ExitCode: code,
		}
	}

	if drainErr != nil {
		log.Warn().Err(drainErr).Msg("failed to read script output")
	}

	log.Debug().Msg("download script completed")
	return nil
}

// drain reads r until EOF and emits one entry per line, decoding it first
// when the child writes a non UTF-8 charset. Lines longer than maxLineSize
// are emitted in maxLineSize chunks.
func (d *Downloader) drain(r io.ReadCloser, emit func(line string)) error {
	defer r.Close()

	var src io.Reader = r
	if d.encoding != nil {
		src = transform.NewReader(r, d.encoding.NewDecoder())
	}

	reader := bufio.NewReader(src)
	var line []byte
	chunked := false
	for {
		chunk, isPrefix, err := reader.ReadLine()
		line = append(line, chunk...)

		for len(line) >= maxLineSize {
			emit(string(line[:maxLineSize]))
			line = line[maxLineSize:]
			chunked = true
		}

		if err != nil {
			if len(line) > 0 {
				emit(string(bytes.TrimSuffix(line, []byte("\r"))))
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			// Keep the pipe flowing so the child can finish
			io.Copy(io.Discard, r)
			return err
		}

		if !isPrefix {
			if len(line) > 0 || !chunked {
				emit(string(line))
			}
			line = line[:0]
			chunked = false
		}
	}
}
