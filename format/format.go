// Package format identifies the supported document formats.
package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Format int

const (
	JSONFormat Format = iota
	TOMLFormat
	YAMLFormat
	XMLFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"j":    JSONFormat,
		"json": JSONFormat,
		"t":    TOMLFormat,
		"toml": TOMLFormat,
		"y":    YAMLFormat,
		"yaml": YAMLFormat,
		"yml":  YAMLFormat,
		"x":    XMLFormat,
		"xml":  XMLFormat,
	}[strings.ToLower(v)]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case JSONFormat:
		return []byte("json"), nil
	case TOMLFormat:
		return []byte("toml"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	case XMLFormat:
		return []byte("xml"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsJSON() bool { return f == JSONFormat }
func (f Format) IsTOML() bool { return f == TOMLFormat }
func (f Format) IsYAML() bool { return f == YAMLFormat }
func (f Format) IsXML() bool  { return f == XMLFormat }

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case JSONFormat:
		return ".json"
	case TOMLFormat:
		return ".toml"
	case YAMLFormat:
		return ".yaml"
	case XMLFormat:
		return ".xml"
	default:
		return ""
	}
}

// InferPath derives the format from a file path's extension.
func InferPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, fmt.Errorf("%w: no extension in %q", ErrBadFormat, path)
	}
	return ParseFormat(ext)
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{JSONFormat, TOMLFormat, YAMLFormat, XMLFormat}
}
