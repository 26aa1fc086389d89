package data

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"gopkg.in/yaml.v3"
)

type decodeFunc func(r io.Reader, v any) error

func decodeJSON(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}

func decodeYAML(r io.Reader, v any) error {
	return yaml.NewDecoder(r).Decode(v)
}

// decoderFor picks YAML for .yaml/.yml files and JSON for everything else
func decoderFor(filename string) decodeFunc {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return decodeYAML
	default:
		return decodeJSON
	}
}

// ReadSharedLock decodes filename into a T while holding a shared flock on it,
// so a writer replacing the file in place is never observed half written.
func ReadSharedLock[T any](filename string) (*T, error) {
	file, err := os.OpenFile(filename, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if err = syscall.Flock(int(file.Fd()), syscall.LOCK_SH); err != nil {
		return nil, err
	}
	defer func() { _ = syscall.Flock(int(file.Fd()), syscall.LOCK_UN) }()

	var data T
	if err = decoderFor(filename)(file, &data); err != nil {
		return nil, err
	}

	return &data, nil
}
