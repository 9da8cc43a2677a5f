package entrypoints

import (
	"fmt"

	"github.com/markormesher/filecheck/internal/fileext"
)

// ListExtensions prints the supported extensions, one per line, for inspection or documentation.
func ListExtensions() {
	for _, ext := range fileext.Extensions() {
		fmt.Println(ext)
	}
}
