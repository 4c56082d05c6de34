package config

import (
	"github.com/magiconair/properties"

	"github.com/williamokano/sftp_downloader/pkg/transfer"
)

// Load reads a key=value properties file
func Load(fileName string) (*Config, error) {
	loader := properties.Loader{
		Encoding:         properties.UTF8,
		DisableExpansion: true,
	}

	props, err := loader.LoadFile(fileName)
	if err != nil {
		return nil, transfer.WrapError(transfer.ErrConfig, "load "+fileName, err)
	}

	return &Config{File: fileName, props: props}, nil
}
