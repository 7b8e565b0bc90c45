// Package export writes entries as markdown files with YAML frontmatter and
// reads them back.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/journal/pkg/core"
)

type imageMeta struct {
	ID       string    `yaml:"id"`
	Filename string    `yaml:"filename"`
	Uploaded time.Time `yaml:"uploaded"`
	DataURL  string    `yaml:"data_url"`
}

type frontmatter struct {
	ID       string      `yaml:"id"`
	Title    string      `yaml:"title,omitempty"`
	Created  time.Time   `yaml:"created"`
	Updated  time.Time   `yaml:"updated"`
	Tags     []string    `yaml:"tags,omitempty"`
	Category string      `yaml:"category,omitempty"`
	Color    string      `yaml:"color,omitempty"`
	FolderID string      `yaml:"folder_id,omitempty"`
	Folder   string      `yaml:"folder,omitempty"`
	Images   []imageMeta `yaml:"images,omitempty"`
}

// MarshalEntry renders e as frontmatter followed by its content. folderName
// is informational and ignored when parsing.
func MarshalEntry(e core.Entry, folderName string) ([]byte, error) {
	fm := frontmatter{
		ID:       e.ID,
		Title:    e.Title,
		Created:  e.CreatedAt.UTC(),
		Updated:  e.UpdatedAt.UTC(),
		Tags:     e.Tags,
		Category: e.Category,
		Color:    e.Color,
		Folder:   folderName,
	}
	if id, ok := e.Folder.ID(); ok {
		fm.FolderID = id
	}
	for _, img := range e.Images {
		fm.Images = append(fm.Images, imageMeta{
			ID:       img.ID,
			Filename: img.Filename,
			Uploaded: img.UploadedAt.UTC(),
			DataURL:  img.DataURL,
		})
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(fm); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	encoder.Close()
	buf.WriteString("---\n")
	buf.WriteString(e.Content)
	return buf.Bytes(), nil
}

// ParseEntry reads a file written by MarshalEntry.
func ParseEntry(data []byte) (core.Entry, error) {
	if !bytes.HasPrefix(data, []byte("---\n")) && !bytes.HasPrefix(data, []byte("---\r\n")) {
		return core.Entry{}, errors.New("missing frontmatter")
	}

	rest := data[3:]
	parts := bytes.SplitN(rest, []byte("\n---"), 2)
	if len(parts) == 1 {
		return core.Entry{}, errors.New("frontmatter started but no closing delimiter found")
	}

	var fm frontmatter
	if err := yaml.Unmarshal(parts[0], &fm); err != nil {
		return core.Entry{}, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	if fm.ID == "" {
		return core.Entry{}, errors.New("frontmatter has no id")
	}

	content := strings.TrimPrefix(string(parts[1]), "\r")
	content = strings.TrimPrefix(content, "\n")

	e := core.Entry{
		ID:        fm.ID,
		Title:     fm.Title,
		Content:   content,
		CreatedAt: fm.Created,
		UpdatedAt: fm.Updated,
		Tags:      core.NormalizeTags(fm.Tags),
		Category:  fm.Category,
		Color:     fm.Color,
		Folder:    core.InFolder(fm.FolderID),
	}
	if e.UpdatedAt.Before(e.CreatedAt) {
		e.UpdatedAt = e.CreatedAt
	}
	for _, img := range fm.Images {
		e.Images = append(e.Images, core.Image{
			ID:         img.ID,
			DataURL:    img.DataURL,
			Filename:   img.Filename,
			UploadedAt: img.Uploaded,
		})
	}
	return e, nil
}
