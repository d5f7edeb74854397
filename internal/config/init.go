package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/launchgen/internal/foundation/errors"
)

const exampleHeader = `# launchgen configuration.
# Every setting can also be given as a LAUNCHGEN_* environment variable
# (for example LAUNCHGEN_OUTPUT) or a command-line flag.
`

// Init writes an example configuration file holding the defaults.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("file", path).
			Build()
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to stat configuration file").
			WithContext("file", path).
			Fatal().
			Build()
	}

	body, err := yaml.Marshal(Defaults())
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to marshal example configuration").Build()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create configuration directory").
			WithContext("file", path).
			Fatal().
			Build()
	}
	// #nosec G306 -- configuration is not sensitive
	if err := os.WriteFile(path, append([]byte(exampleHeader), body...), 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write configuration file").
			WithContext("file", path).
			Fatal().
			Build()
	}
	return nil
}
