package watcher

import (
	"os"
	"path/filepath"
)

// FilesystemType classifies the filesystem holding the watched file.
type FilesystemType int

const (
	FSTypeUnknown FilesystemType = iota
	FSTypeLocal
	FSTypeNFS
	FSTypeSMB
	FSTypeSSHFS
	FSTypeFUSE
)

func (t FilesystemType) String() string {
	switch t {
	case FSTypeLocal:
		return "local"
	case FSTypeNFS:
		return "nfs"
	case FSTypeSMB:
		return "smb"
	case FSTypeSSHFS:
		return "sshfs"
	case FSTypeFUSE:
		return "fuse"
	default:
		return "unknown"
	}
}

// Remote reports whether change events are unreliable on t.
func (t FilesystemType) Remote() bool {
	switch t {
	case FSTypeNFS, FSTypeSMB, FSTypeSSHFS, FSTypeFUSE:
		return true
	default:
		return false
	}
}

// detectFilesystemTypeFunc is swapped out by tests.
var detectFilesystemTypeFunc = DetectFilesystemType

// DetectFilesystemType classifies the filesystem of path, or of its
// closest existing parent when path does not exist yet.
func DetectFilesystemType(path string) FilesystemType {
	if path == "" {
		return FSTypeUnknown
	}
	for {
		if _, err := os.Stat(path); err == nil {
			return statFilesystemType(path)
		}
		parent := filepath.Dir(path)
		if parent == path {
			return FSTypeUnknown
		}
		path = parent
	}
}
