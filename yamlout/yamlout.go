// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package yamlout

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/coastcamdb/models"
)

// Ext is appended to every file name.
const Ext = ".yaml"

var ErrNotMapping = errors.New("calibration file is not a flat mapping")

// Write creates dir/name.yaml holding one "name: value" line per field,
// followed by one "#name - description" line per field.
func Write(dir, name string, fields []models.Field) (string, error) {
	var buf bytes.Buffer
	for _, f := range fields {
		v, err := formatValue(f.Value)
		if err != nil {
			return "", fmt.Errorf("field %s: %w", f.Name, err)
		}
		fmt.Fprintf(&buf, "%s: %s\n", f.Name, v)
	}
	for _, f := range fields {
		fmt.Fprintf(&buf, "#%s - %s\n", f.Name, f.Description)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	path := filepath.Join(dir, name+Ext)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	slog.Debug("yaml written", "path", path, "fields", len(fields))
	return path, nil
}

// FilePrefix turns a station short name into the prefix of its files.
func FilePrefix(shortName string) string {
	return strings.ReplaceAll(shortName, " ", "_")
}

// WriteStation writes the extrinsic, intrinsic and metadata files of every
// camera in p and the local origin file of the station. It returns the
// paths in the order written.
func WriteStation(dir string, p *models.StationParams) ([]string, error) {
	prefix := FilePrefix(p.ShortName)
	var paths []string
	write := func(name string, fields []models.Field) error {
		path, err := Write(dir, name, fields)
		if err != nil {
			return err
		}
		paths = append(paths, path)
		return nil
	}

	for _, cam := range p.Cameras {
		base := fmt.Sprintf("%s_C%d", prefix, cam.Metadata.CameraNumber)
		if err := write(base+"_extr", cam.Extrinsics.Fields()); err != nil {
			return paths, err
		}
		if err := write(base+"_intr", cam.Intrinsics.Fields()); err != nil {
			return paths, err
		}
		if err := write(base+"_metadata", cam.Metadata.Fields()); err != nil {
			return paths, err
		}
	}
	if err := write(prefix+"_localOrigin", p.LocalOrigin.Fields()); err != nil {
		return paths, err
	}

	slog.Info("calibration files written",
		"station", p.StationID,
		"dir", dir,
		"files", len(paths),
	)
	return paths, nil
}

// Read parses a file written by Write. Fields come back in file order with
// their descriptions restored from the comment lines.
func Read(path string) ([]models.Field, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %s", ErrNotMapping, path)
	}

	descriptions := readDescriptions(data)
	m := doc.Content[0]
	fields := make([]models.Field, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, val := m.Content[i], m.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: %s: %s", ErrNotMapping, path, key.Value)
		}
		var v any
		if err := val.Decode(&v); err != nil {
			return nil, fmt.Errorf("failed to decode %s in %s: %w", key.Value, path, err)
		}
		fields = append(fields, models.Field{
			Name:        key.Value,
			Value:       v,
			Description: descriptions[key.Value],
		})
	}
	return fields, nil
}

func readDescriptions(data []byte) map[string]string {
	out := make(map[string]string)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line, ok := strings.CutPrefix(sc.Text(), "#")
		if !ok {
			continue
		}
		if name, desc, ok := strings.Cut(line, " - "); ok {
			out[name] = desc
		}
	}
	return out
}

// formatValue renders a scalar. Floats keep a decimal point so they read
// back as floats, and strings are quoted only when YAML needs it.
func formatValue(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "null", nil
	case float64:
		return formatFloat(x), nil
	case float32:
		return formatFloat(float64(x)), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case int:
		return strconv.Itoa(x), nil
	case string:
		out, err := yaml.Marshal(x)
		if err != nil {
			return "", err
		}
		return strings.TrimSuffix(string(out), "\n"), nil
	}
	return "", fmt.Errorf("unsupported value %T", v)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
