package script

import "fmt"

type Config struct {
	Command        string // interpreter, default "python"
	ScriptFile     string // script passed as the first argument
	ScriptDir      string // working directory of the child, empty = current directory
	OutputEncoding string // charset of the child's stdout/stderr, default utf-8
}

func parseConfig(options map[string]string) (*Config, error) {
	cfg := &Config{
		Command:        "python",
		OutputEncoding: "utf-8",
	}

	if v := options["command"]; v != "" {
		cfg.Command = v
	}
	if v, ok := options["script_file"]; ok && v != "" {
		cfg.ScriptFile = v
	} else {
		return nil, fmt.Errorf("missing required option: script_file")
	}
	cfg.ScriptDir = options["script_dir"]
	if v := options["output_encoding"]; v != "" {
		cfg.OutputEncoding = v
	}

	return cfg, nil
}
