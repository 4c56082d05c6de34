package transfer

import (
	"context"
	"net"
	"strconv"

	"github.com/rs/zerolog"
)

// Downloader copies exactly one remote file to one local path
type Downloader interface {
	// Mode returns the downloader variant (sftp, script)
	Mode() string

	// Download performs the transfer described by req.
	// Failures are returned as *Error tagged with one of the Err* kinds.
	Download(ctx context.Context, req Request) error
}

// Request describes a single file copy. It is built once per run and never mutated.
type Request struct {
	Host       string
	Port       int
	Username   string
	KeyPath    string // local private key file
	RemotePath string // remote source file
	LocalPath  string // local destination file
	Passphrase string // optional, empty means the key is not encrypted
}

// Addr returns the host:port dial address
func (r Request) Addr() string {
	return net.JoinHostPort(r.Host, strconv.Itoa(r.Port))
}

// Config selects and configures a downloader variant
type Config struct {
	Mode    string            // sftp or script
	Options map[string]string // variant-specific options
	Logger  zerolog.Logger
}
