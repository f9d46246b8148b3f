package forum

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"
)

// DiskStore keeps one JSON document per message under <base>/<scope>/, so a
// directory shared between clients (local multi-user box, network mount)
// behaves as the common board. Scope metadata lives in a dot-file the key
// enumeration skips.
type DiskStore struct {
	d        *diskv.Diskv
	basePath string
}

type scopeMeta struct {
	CreatedAtMs int64 `json:"createdAtMs"`
}

const metaFileName = ".scope.json"

func NewDiskStore(basePath string) *DiskStore {
	return &DiskStore{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
	}
}

// Keys are "scope/id"; documents land at <base>/<scope>/<id>.json.
func keyToPathTransform(key string) *diskv.PathKey {
	parts := strings.Split(key, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1] + ".json",
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	name := strings.TrimSuffix(pathKey.FileName, ".json")
	if len(pathKey.Path) == 0 {
		return name
	}
	return strings.Join(pathKey.Path, "/") + "/" + name
}

func (s *DiskStore) scopeDir(scope string) string {
	return filepath.Join(s.basePath, scope)
}

func (s *DiskStore) Connect(scope string) error {
	if err := os.MkdirAll(s.scopeDir(scope), 0o755); err != nil {
		return fmt.Errorf("forum: ensure scope directory: %w", err)
	}

	metaPath := filepath.Join(s.scopeDir(scope), metaFileName)
	if _, err := os.Stat(metaPath); err == nil {
		return nil
	}

	data, err := json.Marshal(scopeMeta{CreatedAtMs: time.Now().UnixMilli()})
	if err != nil {
		return fmt.Errorf("forum: serialize scope meta: %w", err)
	}
	if err := os.WriteFile(metaPath, data, 0o644); err != nil {
		return fmt.Errorf("forum: write scope meta: %w", err)
	}
	return nil
}

func (s *DiskStore) Append(scope string, msg Message) error {
	if msg.ID == "" {
		return fmt.Errorf("forum: message has no id")
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("forum: serialize message: %w", err)
	}
	if err := s.d.Write(scope+"/"+msg.ID, data); err != nil {
		return fmt.Errorf("forum: write message: %w", err)
	}
	return nil
}

func (s *DiskStore) Recent(scope string, limit int) ([]Message, error) {
	dir := s.scopeDir(scope)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Message{}, nil
		}
		return nil, fmt.Errorf("forum: read scope directory: %w", err)
	}

	msgs := make([]Message, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".json") {
			continue
		}

		data, err := s.d.Read(scope + "/" + strings.TrimSuffix(name, ".json"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "forum: %s/%s: %v\n", scope, name, err)
			continue
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			// Half-written or foreign files are skipped, not fatal.
			continue
		}
		msgs = append(msgs, msg)
	}

	sortMessages(msgs)
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs, nil
}

func sortMessages(msgs []Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].CreatedAtMs == msgs[j].CreatedAtMs {
			return msgs[i].ID < msgs[j].ID
		}
		return msgs[i].CreatedAtMs < msgs[j].CreatedAtMs
	})
}
