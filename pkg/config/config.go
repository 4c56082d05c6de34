package config

import (
	"strconv"

	"github.com/magiconair/properties"

	"github.com/williamokano/sftp_downloader/pkg/transfer"
)

// Keys of config.properties
const (
	KeyHost           = "sftp.host"
	KeyPort           = "sftp.port"
	KeyUsername       = "sftp.username"
	KeyKeyFilePath    = "sftp.KeyFilePath"
	KeyKeyFile        = "sftp.KeyFile"
	KeyPassphrase     = "sftp.passphrase"
	KeyLocalPath      = "sftp.localPath"
	KeyTargetFilePath = "sftp.TargetFilePath"
	KeyTargetFile     = "sftp.TargetFile"
	KeyHostKeyPolicy  = "sftp.hostKeyPolicy"
	KeyKnownHostsFile = "sftp.knownHostsFile"
	KeyTimeout        = "sftp.timeout"
	KeyScriptPath     = "python.scryptPath"
	KeyScriptFile     = "python.scryptFile"
	KeyPythonCommand  = "python.command"
	KeyOutputEncoding = "python.outputEncoding"
	KeyMode           = "downloader.mode"
	KeyLogLevel       = "log.level"
	KeyLogFormat      = "log.format"
)

const (
	DefaultFile = "config.properties"
	DefaultPort = 22
	DefaultMode = "sftp"
)

// Config is the read-only key/value settings of a run
type Config struct {
	File  string
	props *properties.Properties
}

// Get returns the raw value of key, empty when absent
func (c *Config) Get(key string) string {
	return c.props.GetString(key, "")
}

// Map returns a copy of all settings
func (c *Config) Map() map[string]string {
	return c.props.Map()
}

func (c *Config) Host() string     { return c.Get(KeyHost) }
func (c *Config) Username() string { return c.Get(KeyUsername) }

// Port returns sftp.port, falling back to 22 when absent or malformed
func (c *Config) Port() int {
	port, err := strconv.Atoi(c.Get(KeyPort))
	if err != nil || port <= 0 || port > 65535 {
		return DefaultPort
	}
	return port
}

// KeyPath is sftp.KeyFilePath followed by sftp.KeyFile
func (c *Config) KeyPath() string {
	return c.Get(KeyKeyFilePath) + c.Get(KeyKeyFile)
}

// RemotePath is sftp.TargetFilePath followed by sftp.TargetFile
func (c *Config) RemotePath() string {
	return c.Get(KeyTargetFilePath) + c.Get(KeyTargetFile)
}

// LocalPath is sftp.localPath followed by sftp.TargetFile
func (c *Config) LocalPath() string {
	return c.Get(KeyLocalPath) + c.Get(KeyTargetFile)
}

// GetMode returns the downloader variant (defaults to sftp)
func (c *Config) GetMode() string {
	return c.props.GetString(KeyMode, DefaultMode)
}

// GetLogLevel returns the log level (defaults to info)
func (c *Config) GetLogLevel() string {
	return c.props.GetString(KeyLogLevel, "info")
}

// GetLogFormat returns the log format (defaults to json)
func (c *Config) GetLogFormat() string {
	return c.props.GetString(KeyLogFormat, "json")
}

// Request builds the single transfer request of this run
func (c *Config) Request() transfer.Request {
	return transfer.Request{
		Host:       c.Host(),
		Port:       c.Port(),
		Username:   c.Username(),
		KeyPath:    c.KeyPath(),
		RemotePath: c.RemotePath(),
		LocalPath:  c.LocalPath(),
		Passphrase: c.Get(KeyPassphrase),
	}
}

// DownloaderOptions returns the variant-specific options for the configured mode
func (c *Config) DownloaderOptions() map[string]string {
	switch c.GetMode() {
	case "script":
		return map[string]string{
			"command":         c.Get(KeyPythonCommand),
			"script_file":     c.Get(KeyScriptFile),
			"script_dir":      c.Get(KeyScriptPath),
			"output_encoding": c.Get(KeyOutputEncoding),
		}
	default:
		return map[string]string{
			"host_key_policy":  c.Get(KeyHostKeyPolicy),
			"known_hosts_file": c.Get(KeyKnownHostsFile),
			"timeout":          c.Get(KeyTimeout),
		}
	}
}
