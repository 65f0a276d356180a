package model

import (
	"sort"
	"sync"
)

//DirEntriesMap is the main data structure of the application.
//It holds a map with dir entries of the scanned file tree.
//A key in this map is a relative path of one dir entry, and a value is this entry's info and filter decision.
//For the safety, concurrent access to the inner map is protected and controlled by a mutex.
type DirEntriesMap struct {
	mu   sync.Mutex
	eMap map[string]EntryInfo
}

func NewDirEntriesMap() *DirEntriesMap {
	return &DirEntriesMap{eMap: make(map[string]EntryInfo, 10)}
}

func (m *DirEntriesMap) PrepareForScan() error {
	return m.ForEach(
		func(key string, eMap map[string]EntryInfo) error {
			// we reset the existence flag at the beginning of each file tree scanning;
			// it will be set back to true for those entries which will be found during the file tree walk
			entry := eMap[key]
			entry.Exists = false
			eMap[key] = entry
			return nil
		},
	)
}

func (m *DirEntriesMap) UpdateValueByKey(key string, valueUpdater func(*EntryInfo)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry := m.eMap[key] // entry's zero value will be fine as well
	valueUpdater(&entry)
	m.eMap[key] = entry
}

func (m *DirEntriesMap) Get(key string) (EntryInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.eMap[key]
	return entry, ok
}

//RemoveObsolete drops the entries that were not found during the last scan.
func (m *DirEntriesMap) RemoveObsolete() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	keysForRemoval := make([]string, 0, len(m.eMap))
	for k, e := range m.eMap {
		if !e.Exists {
			keysForRemoval = append(keysForRemoval, k)
		}
	}
	for _, key := range keysForRemoval {
		delete(m.eMap, key)
	}
	return len(keysForRemoval)
}

func (m *DirEntriesMap) ForEach(fn func(key string, eMap map[string]EntryInfo) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.eMap {
		if err := fn(k, m.eMap); err != nil {
			return err
		}
	}
	return nil
}

func (m *DirEntriesMap) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.eMap)
}

//Included returns the sorted keys of the entries accepted by the filters.
func (m *DirEntriesMap) Included() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.eMap))
	for k, e := range m.eMap {
		if e.Exists && e.Included {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
