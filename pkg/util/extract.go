package util

import (
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/rs/zerolog/log"
)

// Extract writes embedded starter content to pathname unless a file is
// already there; existing files are never clobbered. When data is non-nil the
// content is treated as a template and executed with it.
func Extract(pathname string, content []byte, data any) error {
	if _, err := os.Stat(pathname); err == nil {
		log.Debug().Str("path", pathname).Msg("exists")
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("unable to stat %s: %w", pathname, err)
	}

	file, err := os.OpenFile(pathname, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", pathname, err)
	}
	defer file.Close()

	name := filepath.Base(pathname)
	if data == nil {
		_, err = file.Write(content)
		if err != nil {
			return fmt.Errorf("unable to write %s content: %w", name, err)
		}
	} else {
		tmpl, err := template.New(name).Parse(string(content))
		if err != nil {
			return fmt.Errorf("unable to parse %s template: %w", name, err)
		}

		err = tmpl.Execute(file, data)
		if err != nil {
			return fmt.Errorf("unable to execute %s template: %w", name, err)
		}
	}

	log.Debug().Str("path", pathname).Msg("created")
	return nil
}
