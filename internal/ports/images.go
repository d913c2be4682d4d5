package ports

// ImageStore defines the filesystem operations a conversion needs
type ImageStore interface {
	// EnsureDir creates a directory and any missing parents
	EnsureDir(path string) error

	// Exists reports whether a file is present
	Exists(path string) (bool, error)

	// Size returns a file's size in bytes
	Size(path string) (int64, error)

	// CopyFile copies src to dst, overwriting dst if it exists and
	// preserving the source modification time. Returns bytes copied.
	CopyFile(src, dst string) (int64, error)
}
