package sftp

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/sftp"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/ssh"

	"github.com/williamokano/sftp_downloader/pkg/transfer"
)

type Downloader struct {
	hostKeyCallback ssh.HostKeyCallback
	hostKeyPolicy   string
	timeout         time.Duration
	logger          zerolog.Logger
}

func init() {
	transfer.RegisterDownloader("sftp", func(ctx context.Context, cfg transfer.Config) (transfer.Downloader, error) {
		return New(cfg)
	})
}

// New creates a downloader using the embedded SSH/SFTP client
func New(cfg transfer.Config) (*Downloader, error) {
	sftpCfg, err := parseConfig(cfg.Options)
	if err != nil {
		return nil, err
	}

	callback, err := HostKeyCallback(sftpCfg.HostKeyPolicy, sftpCfg.KnownHostsFile)
	if err != nil {
		return nil, err
	}

	return &Downloader{
		hostKeyCallback: callback,
		hostKeyPolicy:   sftpCfg.HostKeyPolicy,
		timeout:         sftpCfg.Timeout,
		logger:          cfg.Logger,
	}, nil
}

func (d *Downloader) Mode() string { return "sftp" }

// Download copies req.RemotePath to req.LocalPath over SFTP, replacing any existing local file
func (d *Downloader) Download(ctx context.Context, req transfer.Request) error {
	log := d.logger.With().
		Str("host", req.Host).
		Int("port", req.Port).
		Str("user", req.Username).
		Logger()

	fail := func(kind error, op string, err error) error {
		log.Debug().Err(err).Str("op", op).Msg("sftp step failed")
		return transfer.WrapError(kind, op, err)
	}

	log.Debug().
		Strs("key_exchanges", keyExchanges()).
		Str("host_key_policy", d.hostKeyPolicy).
		Msg("preparing ssh client")

	signer, err := loadSigner(req.KeyPath, req.Passphrase)
	if err != nil {
		return fail(transfer.ErrAuthFailed, "load key", err)
	}

	clientConfig := &ssh.ClientConfig{
		Config: ssh.Config{
			KeyExchanges: keyExchanges(),
		},
		User:            req.Username,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: d.hostKeyCallback,
	}

	sshClient, err := d.dial(ctx, req.Addr(), clientConfig)
	if err != nil {
		return fail(classifyDialError(err), "connect", err)
	}
	defer sshClient.Close()

	// Close the connection if the caller gives up mid transfer
	stop := context.AfterFunc(ctx, func() { sshClient.Close() })
	defer stop()

	log.Debug().Msg("ssh connection established")

	sftpClient, err := sftp.NewClient(sshClient)
	if err != nil {
		return fail(transfer.ErrConnFailed, "sftp init", err)
	}
	defer sftpClient.Close()

	n, err := copyRemoteFile(sftpClient, req.RemotePath, req.LocalPath)
	if err != nil {
		return fail(transfer.ErrTransferFailed, "download", withContextError(ctx, err))
	}

	log.Info().
		Str("remote_file", req.RemotePath).
		Str("local_file", req.LocalPath).
		Int64("size_bytes", n).
		Msg("file downloaded")

	return nil
}

func (d *Downloader) dial(ctx context.Context, addr string, config *ssh.ClientConfig) (*ssh.Client, error) {
	dialer := net.Dialer{Timeout: d.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, withContextError(ctx, err)
	}

	if d.timeout > 0 {
		conn.SetDeadline(time.Now().Add(d.timeout))
	}
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	c, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if err != nil {
		conn.Close()
		return nil, withContextError(ctx, err)
	}
	conn.SetDeadline(time.Time{})

	return ssh.NewClient(c, chans, reqs), nil
}

// withContextError makes a cancellation visible to errors.Is when it caused err
func withContextError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w (%v)", ctxErr, err)
	}
	return err
}

// copyRemoteFile streams the remote file into a temp file next to localPath
// and renames it into place, so a failed copy leaves nothing behind.
func copyRemoteFile(client *sftp.Client, remotePath, localPath string) (int64, error) {
	remote, err := client.Open(remotePath)
	if err != nil {
		return 0, fmt.Errorf("open remote file: %w", err)
	}
	defer remote.Close()

	tmp, err := os.CreateTemp(filepath.Dir(localPath), "."+filepath.Base(localPath)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("create local file: %w", err)
	}
	tmpName := tmp.Name()

	n, err := io.Copy(tmp, remote)
	if err == nil {
		err = tmp.Chmod(0644)
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpName, localPath)
	}
	if err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("write local file: %w", err)
	}

	return n, nil
}

func loadSigner(keyPath, passphrase string) (ssh.Signer, error) {
	key, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read SSH key: %w", err)
	}

	var signer ssh.Signer
	if passphrase != "" {
		signer, err = ssh.ParsePrivateKeyWithPassphrase(key, []byte(passphrase))
	} else {
		signer, err = ssh.ParsePrivateKey(key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse SSH key: %w", err)
	}

	return signer, nil
}

// classifyDialError separates rejected credentials from transport failures.
// x/crypto/ssh has no typed client-side auth error (ServerAuthError is only
// seen by servers); clientAuthenticate fails with
// "ssh: unable to authenticate, attempted methods [...], no supported methods remain".
func classifyDialError(err error) error {
	if strings.Contains(err.Error(), "unable to authenticate") {
		return transfer.ErrAuthFailed
	}
	return transfer.ErrConnFailed
}
