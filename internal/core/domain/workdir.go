package domain

import (
	"os"
	"path/filepath"
)

// Name prefixes of the task scoped entries created in the work directory
const (
	ArchivePrefix   = "fileset-"
	ArchiveSuffix   = ".zip"
	UploadDirPrefix = "upload-"
	StageDirPrefix  = "stage-"
)

// WorkDirName is the directory created under the system temp dir when no work dir is configured
const WorkDirName = "file-researcher"

// DefaultWorkDir returns the dedicated work dir used when none is configured.
// The sweep only ever touches this dir, never the shared temp root.
func DefaultWorkDir() string {
	return filepath.Join(os.TempDir(), WorkDirName)
}

// ResolveWorkDir returns dir, or DefaultWorkDir when dir is empty
func ResolveWorkDir(dir string) string {
	if dir == "" {
		return DefaultWorkDir()
	}
	return dir
}
