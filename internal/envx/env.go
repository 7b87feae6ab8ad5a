// Package envx reads configuration from the process environment, optionally
// backed by a dotenv file.
package envx

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// DefaultFile is read when no dotenv file is named explicitly.
const DefaultFile = ".env"

// Source resolves variables. Process environment always wins over the file.
type Source struct {
	file map[string]string
}

// Load reads path as a dotenv file. An empty path means DefaultFile, which
// may be absent; an explicitly named file must exist.
func Load(path string) (*Source, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	values, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &Source{file: map[string]string{}}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &Source{file: values}, nil
}

// FromMap builds a Source without a backing file.
func FromMap(values map[string]string) *Source {
	return &Source{file: values}
}

func (s *Source) Lookup(key string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok {
		return v, true
	}
	v, ok := s.file[key]
	return v, ok
}

// String sets *dst when key is present and non-empty.
func (s *Source) String(key string, dst *string) {
	if v, ok := s.Lookup(key); ok && v != "" {
		*dst = v
	}
}

// Duration sets *dst from values like "3s" when key is present.
func (s *Source) Duration(key string, dst *time.Duration) error {
	v, ok := s.Lookup(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
