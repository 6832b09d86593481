package splitsvc

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// staleTempTTL задаёт возраст, после которого временный файл сборки считается брошенным.
const staleTempTTL = 24 * time.Hour

const tempSuffix = ".tmp"

// tempPath возвращает уникальное имя временного файла рядом с output.
func tempPath(output string) string {
	return filepath.Join(filepath.Dir(output), tempPrefix(output)+uuid.NewString()+tempSuffix)
}

func tempPrefix(output string) string {
	return "." + filepath.Base(output) + "."
}

// sweepStaleTemps удаляет временные файлы прерванных сборок output, не менявшиеся дольше ttl.
func sweepStaleTemps(output string, ttl time.Duration, now time.Time) ([]string, error) {
	entries, err := os.ReadDir(filepath.Dir(output))
	if err != nil {
		return nil, err
	}

	prefix := tempPrefix(output)
	var removed []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, tempSuffix) {
			continue
		}
		if uuid.Validate(strings.TrimSuffix(strings.TrimPrefix(name, prefix), tempSuffix)) != nil {
			continue
		}

		fi, err := e.Info()
		if err != nil || now.Sub(fi.ModTime()) < ttl {
			continue
		}

		path := filepath.Join(filepath.Dir(output), name)
		if err := os.Remove(path); err == nil {
			removed = append(removed, path)
		}
	}

	return removed, nil
}
