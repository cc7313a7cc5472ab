package pass

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Layout names the records and folders of a store.
type Layout struct {
	Root           string
	UUIDFolder     string
	IndexEntry     string
	Extension      string
	SyncFolder     string
	SyncCommitFile string
}

// RecordName is the store name of the entry with identifier id.
func (l Layout) RecordName(id uuid.UUID) string {
	return path.Join(l.UUIDFolder, id.String())
}

// IndexName is the store name of the index record.
func (l Layout) IndexName() string {
	return path.Join(l.UUIDFolder, l.IndexEntry)
}

// File is the encrypted file backing a store name.
func (l Layout) File(name string) string {
	return filepath.Join(l.Root, filepath.FromSlash(name)+"."+l.Extension)
}

// RecordFile is the encrypted file of the entry with identifier id.
func (l Layout) RecordFile(id uuid.UUID) string {
	return l.File(l.RecordName(id))
}

// SlaveRoot is the directory of the path-named mirror repository.
func (l Layout) SlaveRoot() string {
	return filepath.Join(l.Root, l.SyncFolder)
}

// SlaveName is the store name of the mirror copy of entryPath.
func (l Layout) SlaveName(entryPath string) string {
	return path.Join(l.SyncFolder, entryPath)
}

// SlaveFile is the encrypted mirror file of entryPath.
func (l Layout) SlaveFile(entryPath string) string {
	return l.File(l.SlaveName(entryPath))
}

// MarkerFile is the sync baseline marker inside the mirror.
func (l Layout) MarkerFile() string {
	return filepath.Join(l.SlaveRoot(), l.SyncCommitFile)
}

// RecordFromRepoPath maps a master repository path such as
// "uuids/<id>.gpg" to the identifier it stores. ok is false for paths
// outside the identifier folder, the index record, dot-files and foreign
// files.
// A record-shaped path with a malformed identifier returns an error.
func (l Layout) RecordFromRepoPath(repoPath string) (id uuid.UUID, ok bool, err error) {
	dir, file := path.Split(repoPath)
	if strings.TrimSuffix(dir, "/") != l.UUIDFolder {
		return uuid.Nil, false, nil
	}
	name, found := strings.CutSuffix(file, "."+l.Extension)
	if !found || name == l.IndexEntry || strings.HasPrefix(name, ".") {
		return uuid.Nil, false, nil
	}
	id, err = uuid.Parse(name)
	if err != nil {
		return uuid.Nil, false, err
	}
	return id, true, nil
}

// EntryFromSlavePath maps a mirror repository path such as "web/mail.gpg"
// to the entry path it holds. ok is false for anything but records.
func (l Layout) EntryFromSlavePath(repoPath string) (string, bool) {
	entryPath, found := strings.CutSuffix(repoPath, "."+l.Extension)
	if !found || entryPath == "" || strings.HasPrefix(path.Base(repoPath), ".") {
		return "", false
	}
	return entryPath, true
}
