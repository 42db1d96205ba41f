// Package idmap maps source entities to host elements created
// by a previous import of the same source.
package idmap

import (
	"encoding/hex"
	"io"
	"sync"

	"github.com/mandelsoft/logging"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/zeebo/blake3"

	"github.com/mandelsoft/ifcimport/pkg/host"
)

var REALM = logging.DefineRealm("ifcimport/idmap", "element id mapping")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)

// Store persists the mapping of (source digest, GlobalId) to element ids.
type Store interface {
	Lookup(source, globalId string) (host.ElementId, bool, error)
	Record(source, globalId string, id host.ElementId) error
	Close() error
}

// Digest provides the BLAKE3 digest of a source.
func Digest(r io.Reader) (string, error) {
	h := blake3.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func DigestFile(fs vfs.FileSystem, path string) (string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return Digest(f)
}

type key struct {
	source   string
	globalId string
}

// Memory is a Store kept in memory.
type Memory struct {
	lock    sync.RWMutex
	mapping map[key]host.ElementId
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{mapping: map[key]host.ElementId{}}
}

func (m *Memory) Lookup(source, globalId string) (host.ElementId, bool, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	id, ok := m.mapping[key{source, globalId}]
	return id, ok, nil
}

func (m *Memory) Record(source, globalId string, id host.ElementId) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.mapping[key{source, globalId}] = id
	return nil
}

func (m *Memory) Size() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return len(m.mapping)
}

func (m *Memory) Close() error {
	return nil
}
