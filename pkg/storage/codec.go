package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/aretw0/journal/pkg/core"
)

// timestamp is the wire form of a date. It is written as an RFC 3339 string
// and read back from either an ISO-8601 string or epoch milliseconds.
type timestamp time.Time

// dateLayouts are the ISO-8601 forms accepted on read. Forms without a zone
// are taken as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseDate(s string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func (t timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).UTC().Format(time.RFC3339Nano))
}

func (t *timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = timestamp{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := parseDate(s)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", s, err)
		}
		*t = timestamp(parsed)
		return nil
	}

	ms, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid date %s: %w", data, err)
	}
	*t = timestamp(time.UnixMilli(int64(ms)).UTC())
	return nil
}

type imageRecord struct {
	ID         string    `json:"id"`
	DataURL    string    `json:"dataUrl"`
	Filename   string    `json:"filename"`
	UploadedAt timestamp `json:"uploadedAt"`
}

type entryRecord struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	CreatedAt timestamp     `json:"createdAt"`
	UpdatedAt timestamp     `json:"updatedAt"`
	Tags      []string      `json:"tags,omitempty"`
	Category  string        `json:"category,omitempty"`
	Color     string        `json:"color,omitempty"`
	FolderID  *string       `json:"folderId,omitempty"`
	Images    []imageRecord `json:"images,omitempty"`
}

type folderRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt timestamp `json:"createdAt"`
	UpdatedAt timestamp `json:"updatedAt"`
	Color     string    `json:"color,omitempty"`
}

func toEntryRecord(e core.Entry) entryRecord {
	r := entryRecord{
		ID:        e.ID,
		Title:     e.Title,
		Content:   e.Content,
		CreatedAt: timestamp(e.CreatedAt),
		UpdatedAt: timestamp(e.UpdatedAt),
		Tags:      e.Tags,
		Category:  e.Category,
		Color:     e.Color,
	}
	if id, ok := e.Folder.ID(); ok {
		r.FolderID = &id
	}
	for _, img := range e.Images {
		r.Images = append(r.Images, imageRecord{
			ID:         img.ID,
			DataURL:    img.DataURL,
			Filename:   img.Filename,
			UploadedAt: timestamp(img.UploadedAt),
		})
	}
	return r
}

func (r entryRecord) entry() core.Entry {
	e := core.Entry{
		ID:        r.ID,
		Title:     r.Title,
		Content:   r.Content,
		CreatedAt: time.Time(r.CreatedAt),
		UpdatedAt: time.Time(r.UpdatedAt),
		Tags:      r.Tags,
		Category:  r.Category,
		Color:     r.Color,
	}
	if r.FolderID != nil {
		e.Folder = core.InFolder(*r.FolderID)
	}
	for _, img := range r.Images {
		e.Images = append(e.Images, core.Image{
			ID:         img.ID,
			DataURL:    img.DataURL,
			Filename:   img.Filename,
			UploadedAt: time.Time(img.UploadedAt),
		})
	}
	return e
}

func toFolderRecord(f core.Folder) folderRecord {
	return folderRecord{
		ID:        f.ID,
		Name:      f.Name,
		CreatedAt: timestamp(f.CreatedAt),
		UpdatedAt: timestamp(f.UpdatedAt),
		Color:     f.Color,
	}
}

func (r folderRecord) folder() core.Folder {
	return core.Folder{
		ID:        r.ID,
		Name:      r.Name,
		CreatedAt: time.Time(r.CreatedAt),
		UpdatedAt: time.Time(r.UpdatedAt),
		Color:     r.Color,
	}
}

// MarshalEntries encodes entries in the slot wire format.
func MarshalEntries(entries []core.Entry) ([]byte, error) {
	records := make([]entryRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, toEntryRecord(e))
	}
	return json.Marshal(records)
}

// UnmarshalEntries decodes the entries slot, re-hydrating dates.
func UnmarshalEntries(data []byte) ([]core.Entry, error) {
	var records []entryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("invalid entries: %w", err)
	}
	entries := make([]core.Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, r.entry())
	}
	return entries, nil
}

// MarshalFolders encodes folders in the slot wire format.
func MarshalFolders(folders []core.Folder) ([]byte, error) {
	records := make([]folderRecord, 0, len(folders))
	for _, f := range folders {
		records = append(records, toFolderRecord(f))
	}
	return json.Marshal(records)
}

// UnmarshalFolders decodes the folders slot.
func UnmarshalFolders(data []byte) ([]core.Folder, error) {
	var records []folderRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("invalid folders: %w", err)
	}
	folders := make([]core.Folder, 0, len(records))
	for _, r := range records {
		folders = append(folders, r.folder())
	}
	return folders, nil
}
