package maincmd

import (
	"context"
	"os"
)

// readFiles loads each named file's contents, preserving argument order so
// scanner.ScanFiles can concatenate them deterministically.
func readFiles(ctx context.Context, files []string) (map[string][]byte, error) {
	contents := make(map[string][]byte, len(files))
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b, err := os.ReadFile(name)
		if err != nil {
			return nil, err
		}
		contents[name] = b
	}
	return contents, nil
}
