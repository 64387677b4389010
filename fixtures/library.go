package fixtures

import "github.com/AleksandrIakhnev/waferslim/internal/resolve"

func init() {
	_ = resolve.Register("fixtures.FileSupport", func(args []string) (interface{}, error) {
		return &FileSupport{}, nil
	})
}

// FileSupport is a "library" fixture: a session adds one to its library
// fallback stack (rather than making it the addressed instance), so its
// methods are reachable from any call whose own instance doesn't define
// them -- the FitNesse "library table" pattern demonstrated by
// original_source/examples/library.py's FileSupport/MyFixture pair.
type FileSupport struct {
	deleted []string
}

// Delete records folder as deleted. A real implementation would touch the
// filesystem; this fixture only tracks what it was asked to do, which is
// enough for an acceptance test to assert against.
func (f *FileSupport) Delete(folder string) {
	f.deleted = append(f.deleted, folder)
}

// DeletedCount returns how many folders Delete has recorded.
func (f *FileSupport) DeletedCount() int { return len(f.deleted) }
