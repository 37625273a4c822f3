//go:build linux

package watcher

import "golang.org/x/sys/unix"

// Filesystem magic numbers from statfs(2).
const (
	nfsSuperMagic  = 0x6969
	smbSuperMagic  = 0x517B
	cifsMagic      = 0xFF534D42
	smb2Magic      = 0xFE534D42
	fuseSuperMagic = 0x65735546
)

func statFilesystemType(path string) FilesystemType {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return FSTypeUnknown
	}
	switch uint32(st.Type) {
	case nfsSuperMagic:
		return FSTypeNFS
	case smbSuperMagic, cifsMagic, smb2Magic:
		return FSTypeSMB
	case fuseSuperMagic:
		// sshfs mounts are FUSE; statfs cannot tell them apart.
		return FSTypeFUSE
	default:
		return FSTypeLocal
	}
}
