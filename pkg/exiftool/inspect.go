package exiftool

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mdwipe/mdwipe/internal/runner"
)

// Field is a single metadata entry. With group names enabled the name
// looks like "EXIF:Make".
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Metadata is the metadata still present in one file.
type Metadata struct {
	Path   string  `json:"path"`
	Fields []Field `json:"fields"`
}

// Inspect reads the metadata of a file as exiftool sees it. Fields are
// returned sorted by name; the SourceFile entry is dropped because the
// caller already knows the path.
func (c *Client) Inspect(ctx context.Context, path string) (*Metadata, error) {
	res, err := c.runner.Run(ctx, runner.Command{
		Name: c.path,
		Args: []string{"-j", "-G", path},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata of %s: %w", path, err)
	}

	var entries []map[string]any
	if err := json.Unmarshal(res.Stdout, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse exiftool output for %s: %w", path, err)
	}
	if len(entries) == 0 {
		return &Metadata{Path: path}, nil
	}

	entry := entries[0]
	fields := make([]Field, 0, len(entry))
	for name, value := range entry {
		if name == "SourceFile" {
			continue
		}
		fields = append(fields, Field{Name: name, Value: fmt.Sprintf("%v", value)})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })

	return &Metadata{Path: path, Fields: fields}, nil
}
