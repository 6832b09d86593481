// Package partsproto описывает соглашение об именовании каталога частей, файлов-частей и дескриптора.
package partsproto

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Параметры раскладки каталога с частями.
const (
	DirSuffix        = "_parts"
	PartInfix        = "_part_"
	PartIndexWidth   = 3
	PartNameFormat   = "%s" + PartInfix + "%0*d%s"
	DescriptorName   = "!split_info.txt"
	DescriptorPrefix = "!split_info"
	SentinelPrefix   = "!"
	RestoredPrefix   = "restored_"

	// FormatVersion задаёт версию соглашения, которую пишет сплиттер.
	// Дескрипторы без версии считаются legacy и разбираются эвристикой.
	FormatVersion = 1
)

// LegacyMarkers — подстроки, по которым старые каталоги опознают файлы-части.
var LegacyMarkers = []string{PartInfix, ".part", ".001", ".002", ".003"}

// SplitName делит имя файла на основу и расширение (".tar.gz" -> основа ".tar", расширение ".gz").
func SplitName(name string) (stem, ext string) {
	base := filepath.Base(name)
	ext = filepath.Ext(base)
	stem = strings.TrimSuffix(base, ext)
	if stem == "" {
		// dot-файлы вроде ".bashrc" не имеют расширения
		return base, ""
	}

	return stem, ext
}

// DirFor возвращает путь каталога частей для исходного файла: рядом с файлом, "<stem>_parts".
func DirFor(path string) string {
	stem, _ := SplitName(path)
	return filepath.Join(filepath.Dir(path), stem+DirSuffix)
}

// PartName формирует имя части с индексом idx (нумерация с единицы).
func PartName(stem string, idx int, ext string) string {
	return fmt.Sprintf(PartNameFormat, stem, PartIndexWidth, idx, ext)
}

// PartNameFor формирует имя части по имени исходного файла.
func PartNameFor(original string, idx int) string {
	stem, ext := SplitName(original)
	return PartName(stem, idx, ext)
}

// PartPattern возвращает glob-шаблон имён частей, пригодный для copy /b и cat.
func PartPattern(original string) string {
	stem, ext := SplitName(original)
	return stem + PartInfix + "*" + ext
}

// IsDescriptor сообщает, является ли запись каталога дескриптором.
func IsDescriptor(name string) bool {
	return strings.HasPrefix(strings.ToLower(name), DescriptorPrefix)
}

// IsSentinel сообщает, что запись служебная и не участвует в сборке.
func IsSentinel(name string) bool {
	return strings.HasPrefix(name, SentinelPrefix)
}

// HasPartMarker сообщает, содержит ли имя один из маркеров части.
func HasPartMarker(name string) bool {
	for _, m := range LegacyMarkers {
		if strings.Contains(name, m) {
			return true
		}
	}

	return false
}

// OutputNameForDir выводит имя восстанавливаемого файла из имени каталога частей.
func OutputNameForDir(dir string) string {
	base := filepath.Base(filepath.Clean(dir))
	if strings.HasSuffix(base, DirSuffix) && len(base) > len(DirSuffix) {
		return strings.TrimSuffix(base, DirSuffix)
	}

	return RestoredPrefix + base
}
