package evaluator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LibPathVar names the environment variable holding a colon-separated list
// of library directories searched by bare import paths.
const LibPathVar = "LUTE_LIB"

// resolveModule turns an import path into source text. Resolution order:
// a "."-prefixed path is anchored to the parent directory of the top-level
// entry file, a path containing a separator is read as-is, and a bare name
// is looked up next to the entry file and then under each LUTE_LIB
// directory.
func (e *Evaluator) resolveModule(path string) (source string, resolved string, err error) {
	entryDir := filepath.Dir(e.entryAbsPath())

	if strings.HasPrefix(path, ".") {
		resolved = strings.Replace(path, ".", entryDir, 1)
		source, err = readModuleFile(resolved)
		return source, resolved, err
	}

	if strings.Contains(path, "/") {
		source, err = readModuleFile(path)
		return source, path, err
	}

	resolved = filepath.Join(entryDir, path)
	if source, err = readModuleFile(resolved); err == nil {
		return source, resolved, nil
	}

	if libPath := os.Getenv(LibPathVar); libPath != "" {
		for _, dir := range strings.Split(libPath, ":") {
			resolved = filepath.Join(dir, path)
			if source, err = readModuleFile(resolved); err == nil {
				return source, resolved, nil
			}
		}
	}

	return "", path, fmt.Errorf("error opening file at %s", path)
}

func (e *Evaluator) entryAbsPath() string {
	if strings.HasPrefix(e.entryPath, ".") {
		if cwd, err := os.Getwd(); err == nil {
			return strings.Replace(e.entryPath, ".", cwd, 1)
		}
	}
	return e.entryPath
}

func readModuleFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error opening file at %s", path)
	}
	return string(data), nil
}
