package meta

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sir_venger/splitter/internal/models"
	"github.com/sir_venger/splitter/pkg/digest"
	"github.com/sir_venger/splitter/pkg/partsproto"
	"github.com/sir_venger/splitter/pkg/sizes"
)

// Метки полей дескриптора. Порядок в schema — порядок строк в файле.
const (
	LabelFormat     = "Формат"
	LabelID         = "Идентификатор"
	LabelFileName   = "Исходный файл"
	LabelSplitAt    = "Дата разделения"
	LabelSize       = "Размер исходного файла"
	LabelMode       = "Режим"
	LabelPartCount  = "Количество частей"
	LabelPartSize   = "Размер части"
	LabelAlgorithm  = "Алгоритм хеша"
	LabelDigest     = "Хеш исходного файла"
	LabelLegacyHash = "Хеш исходного файла (SHA-256)"

	timeLayout = "2006-01-02 15:04:05"
)

type field struct {
	label string
	// get возвращает значение поля и признак того, что поле нужно записать.
	get func(d models.Descriptor) (string, bool)
	set func(d *models.Descriptor, v string) error
}

var schema = []field{
	{
		label: LabelFormat,
		get:   func(d models.Descriptor) (string, bool) { return strconv.Itoa(d.Format), true },
		set:   func(d *models.Descriptor, v string) (err error) { d.Format, err = strconv.Atoi(v); return err },
	},
	{
		label: LabelID,
		get:   func(d models.Descriptor) (string, bool) { return d.ID, d.ID != "" },
		set:   func(d *models.Descriptor, v string) error { d.ID = v; return nil },
	},
	{
		label: LabelFileName,
		get:   func(d models.Descriptor) (string, bool) { return d.FileName, true },
		set:   func(d *models.Descriptor, v string) error { d.FileName = v; return nil },
	},
	{
		label: LabelSplitAt,
		get: func(d models.Descriptor) (string, bool) {
			return d.SplitAt.Format(timeLayout), !d.SplitAt.IsZero()
		},
		set: func(d *models.Descriptor, v string) (err error) {
			d.SplitAt, err = time.ParseInLocation(timeLayout, v, time.Local)
			return err
		},
	},
	{
		label: LabelSize,
		get:   func(d models.Descriptor) (string, bool) { return sizes.Describe(d.Size), true },
		set:   func(d *models.Descriptor, v string) (err error) { d.Size, err = leadingInt(v); return err },
	},
	{
		label: LabelMode,
		get:   func(d models.Descriptor) (string, bool) { return string(d.Mode), d.Mode != "" },
		set: func(d *models.Descriptor, v string) error {
			switch m := models.SplitMode(v); m {
			case models.ModeCount, models.ModeSize:
				d.Mode = m
				return nil
			}
			return fmt.Errorf("unknown split mode %q", v)
		},
	},
	{
		label: LabelPartCount,
		get:   func(d models.Descriptor) (string, bool) { return strconv.Itoa(d.PartCount), true },
		set:   func(d *models.Descriptor, v string) (err error) { d.PartCount, err = strconv.Atoi(v); return err },
	},
	{
		label: LabelPartSize,
		get:   func(d models.Descriptor) (string, bool) { return sizes.Describe(d.PartSize), d.PartSize > 0 },
		set:   func(d *models.Descriptor, v string) (err error) { d.PartSize, err = leadingInt(v); return err },
	},
	{
		label: LabelAlgorithm,
		get:   func(d models.Descriptor) (string, bool) { return d.HashAlgorithm, d.HashAlgorithm != "" },
		set:   func(d *models.Descriptor, v string) error { d.HashAlgorithm = digest.Normalize(v); return nil },
	},
	{
		label: LabelDigest,
		get:   func(d models.Descriptor) (string, bool) { return d.Digest, d.Digest != "" },
		set:   func(d *models.Descriptor, v string) error { d.Digest = strings.ToLower(v); return nil },
	},
	{
		// Старые дескрипторы хранили только SHA-256 и не писали алгоритм отдельно.
		label: LabelLegacyHash,
		get:   func(models.Descriptor) (string, bool) { return "", false },
		set: func(d *models.Descriptor, v string) error {
			d.Digest = strings.ToLower(v)
			if d.HashAlgorithm == "" {
				d.HashAlgorithm = "sha256"
			}
			return nil
		},
	},
}

var byLabel = func() map[string]field {
	out := make(map[string]field, len(schema))
	for _, f := range schema {
		out[f.label] = f
	}
	return out
}()

// Marshal кодирует дескриптор: YAML-отображение с полями в порядке schema,
// заголовок и подсказка по ручной склейке идут комментариями.
func Marshal(d models.Descriptor) ([]byte, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range schema {
		v, ok := f.get(d)
		if !ok {
			continue
		}
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.label},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v},
		)
	}

	var buf bytes.Buffer
	buf.WriteString("# Информация о разделении файла\n")
	buf.WriteString("# =============================\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(mapping); err != nil {
		return nil, fmt.Errorf("encode descriptor: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode descriptor: %w", err)
	}

	pattern := partsproto.PartPattern(d.FileName)
	buf.WriteString("\n# Для объединения частей используйте эту же программу\n")
	buf.WriteString("# или команду в командной строке:\n")
	fmt.Fprintf(&buf, "#   copy /b %q %q\n", pattern, d.FileName)
	fmt.Fprintf(&buf, "#   cat %s > %q\n", pattern, d.FileName)

	return buf.Bytes(), nil
}

// Unmarshal разбирает дескриптор. Файлы, которые не являются YAML-отображением
// (формат старых версий с заголовком без '#'), читаются построчно "Метка: значение".
func Unmarshal(b []byte) (models.Descriptor, error) {
	pairs, ok := yamlPairs(b)
	if !ok {
		pairs = linePairs(b)
	}

	var d models.Descriptor
	seen := false
	for _, p := range pairs {
		f, known := byLabel[p[0]]
		if !known {
			continue
		}
		if err := f.set(&d, p[1]); err != nil {
			return models.Descriptor{}, fmt.Errorf("descriptor field %q: %w", p[0], err)
		}
		seen = true
	}
	if !seen {
		return models.Descriptor{}, fmt.Errorf("descriptor has no known fields")
	}

	if d.Mode == "" {
		d.Mode = models.ModeCount
		if d.PartSize > 0 {
			d.Mode = models.ModeSize
		}
	}

	return d, nil
}

func yamlPairs(b []byte) ([][2]string, bool) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, false
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, false
	}

	content := doc.Content[0].Content
	pairs := make([][2]string, 0, len(content)/2)
	for i := 0; i+1 < len(content); i += 2 {
		pairs = append(pairs, [2]string{content[i].Value, strings.TrimSpace(content[i+1].Value)})
	}

	return pairs, true
}

func linePairs(b []byte) [][2]string {
	var pairs [][2]string
	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		label, value, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		pairs = append(pairs, [2]string{strings.TrimSpace(label), strings.TrimSpace(value)})
	}

	return pairs
}

// leadingInt читает число в начале строки: "2500 байт (2.44 KB)" -> 2500.
func leadingInt(v string) (int64, error) {
	end := 0
	for end < len(v) && v[end] >= '0' && v[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, fmt.Errorf("no number in %q", v)
	}

	return strconv.ParseInt(v[:end], 10, 64)
}
