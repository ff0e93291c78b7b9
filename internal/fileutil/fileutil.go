package fileutil

import "os"

// OwnerReadWrite is the file permission mode for validation reports, which may
// quote dataset content (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// ReadableByAll is the file permission mode for dataset bundles intended to be
// shared with other tools and users.
const ReadableByAll os.FileMode = 0o644
