package splitsvc

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/sir_venger/splitter/internal/models"
	meta "github.com/sir_venger/splitter/internal/repo"
	"github.com/sir_venger/splitter/pkg/digest"
)

type (
	// DescriptorStore хранилище дескрипторов разбиения.
	DescriptorStore interface {
		Save(dir string, d models.Descriptor) (string, error)
		Load(path string) (models.Descriptor, error)
	}

	// Reporter выводит ход операций пользователю.
	Reporter interface {
		Infof(format string, args ...any)
		Successf(format string, args ...any)
		Warnf(format string, args ...any)
		Progress(label string, total int64) Progress
	}

	// Progress учитывает скопированные байты; реализует io.Writer.
	Progress interface {
		io.Writer
		// Part сообщает о начале части index из count.
		Part(index, count int)
		Finish()
		Fail(err error)
	}

	// Confirmer задаёт пользователю вопрос да/нет.
	Confirmer interface {
		Confirm(question string, def bool) bool
	}

	// Service объединяет операции разбиения и сборки файлов.
	Service interface {
		SplitByCount(ctx context.Context, req SplitRequest) (models.SplitResult, error)
		SplitBySize(ctx context.Context, req SplitRequest) (models.SplitResult, error)
		Join(ctx context.Context, req JoinRequest) (models.JoinResult, error)
		Inspect(ctx context.Context, dir string) (models.InspectResult, error)
	}
)

// CleanupPolicy определяет, удалять ли каталог частей после проверенной сборки.
type CleanupPolicy string

const (
	CleanupAsk    CleanupPolicy = "ask"
	CleanupAlways CleanupPolicy = "always"
	CleanupNever  CleanupPolicy = "never"
)

// SplitRequest содержит параметры разбиения. Parts читает SplitByCount, SizeSpec читает SplitBySize.
type SplitRequest struct {
	Path     string
	Parts    int
	SizeSpec string
	// Force разрешает писать в уже существующий непустой каталог частей.
	Force bool
}

// JoinRequest содержит параметры сборки.
type JoinRequest struct {
	Dir string
	// Output задаёт явное имя результата; пустое значение включает автоопределение.
	Output  string
	Cleanup CleanupPolicy
	// Recover разрешает считать частями все файлы каталога, если по соглашению ничего не нашлось.
	Recover bool
}

type Deps struct {
	Descriptors   DescriptorStore
	Reporter      Reporter
	Confirmer     Confirmer
	Logger        *slog.Logger
	HashAlgorithm string
	// Hash считает хеш файла; по умолчанию digest.File.
	Hash func(path, algo string) (string, error)
	Now  func() time.Time
}

type Splitter struct {
	Deps
}

// New конструирует сервис; незаданные зависимости заменяются пустыми реализациями.
func New(deps Deps) *Splitter {
	if deps.Descriptors == nil {
		deps.Descriptors = meta.NewFileStore()
	}
	if deps.Reporter == nil {
		deps.Reporter = NopReporter{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if deps.HashAlgorithm == "" {
		deps.HashAlgorithm = digest.Default
	}
	deps.HashAlgorithm = digest.Normalize(deps.HashAlgorithm)
	if deps.Hash == nil {
		deps.Hash = digest.File
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &Splitter{Deps: deps}
}

var _ Service = (*Splitter)(nil)

// NopReporter ничего не выводит.
type NopReporter struct{}

func (NopReporter) Infof(string, ...any) {}
func (NopReporter) Successf(string, ...any) {}
func (NopReporter) Warnf(string, ...any) {}
func (NopReporter) Progress(string, int64) Progress { return nopProgress{} }

type nopProgress struct{}

func (nopProgress) Write(p []byte) (int, error) { return len(p), nil }
func (nopProgress) Part(int, int) {}
func (nopProgress) Finish() {}
func (nopProgress) Fail(error) {}
