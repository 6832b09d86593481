package splitsvc

import (
	"io/fs"
	"sort"

	"github.com/sir_venger/splitter/internal/models"
	"github.com/sir_venger/splitter/pkg/partsproto"
)

type classifyMode string

const (
	// части перечислены дескриптором, эвристики не нужны.
	classifyDescriptor classifyMode = "descriptor"
	// части опознаются по маркерам в имени (старые каталоги, нет дескриптора).
	classifyMarkers classifyMode = "markers"
	// частями считаются все обычные файлы; включается только явно.
	classifyRecovery classifyMode = "recovery"
)

// partSet хранит результат разбора содержимого каталога частей.
type partSet struct {
	mode    classifyMode
	parts   []models.Part
	archive string
	missing []string
}

// classify выбирает файлы-части из записей каталога.
// outputName задаёт базовое имя результата сборки, файл с таким именем считается архивной копией.
func classify(entries []fs.DirEntry, desc *models.Descriptor, outputName string, recoverAll bool) partSet {
	files := make(map[string]int64, len(entries))
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files[e.Name()] = info.Size()
		names = append(names, e.Name())
	}

	if desc != nil && desc.Trusted() {
		return classifyByDescriptor(files, *desc)
	}

	archival := map[string]bool{outputName: true}
	if desc != nil && desc.FileName != "" {
		archival[desc.FileName] = true
	}

	set := partSet{mode: classifyMarkers}
	var rest []string
	for _, name := range names {
		switch {
		case partsproto.IsSentinel(name):
		case archival[name]:
			if set.archive == "" {
				set.archive = name
			}
		case partsproto.HasPartMarker(name):
			set.parts = append(set.parts, models.Part{Name: name, Size: files[name]})
		default:
			rest = append(rest, name)
		}
	}

	if len(set.parts) == 0 && recoverAll {
		set.mode = classifyRecovery
		for _, name := range rest {
			set.parts = append(set.parts, models.Part{Name: name, Size: files[name]})
		}
	}

	// Лексикографический порядок корректен только при индексах одинаковой ширины.
	sort.Slice(set.parts, func(i, j int) bool {
		return set.parts[i].Name < set.parts[j].Name
	})
	for i := range set.parts {
		set.parts[i].Index = i + 1
	}

	return set
}

func classifyByDescriptor(files map[string]int64, desc models.Descriptor) partSet {
	set := partSet{
		mode:  classifyDescriptor,
		parts: make([]models.Part, 0, desc.PartCount),
	}
	for idx := 1; idx <= desc.PartCount; idx++ {
		name := partsproto.PartNameFor(desc.FileName, idx)
		size, ok := files[name]
		if !ok {
			set.missing = append(set.missing, name)
			continue
		}
		set.parts = append(set.parts, models.Part{Index: idx, Name: name, Size: size})
	}
	if _, ok := files[desc.FileName]; ok {
		set.archive = desc.FileName
	}

	return set
}

func (p partSet) totalBytes() int64 {
	var total int64
	for _, part := range p.parts {
		total += part.Size
	}

	return total
}
