package models

// SplitResult возвращается после успешного разбиения.
type SplitResult struct {
	Dir        string
	Archive    string
	Descriptor Descriptor
	Parts      []Part
}

// Verification описывает итог проверки целостности собранного файла.
type Verification string

const (
	VerifyMatch    Verification = "match"
	VerifyMismatch Verification = "mismatch"
	// VerifySkipped: хеш в дескрипторе есть, но посчитать его не удалось.
	VerifySkipped Verification = "skipped"
	// VerifyUnavailable: в каталоге нет дескриптора с хешем.
	VerifyUnavailable Verification = "unavailable"
)

// JoinResult возвращается после сборки, в том числе вместе с ErrIntegrity.
type JoinResult struct {
	Output       string
	Size         int64
	Parts        []Part
	Archive      string
	Verification Verification
	Digest       string
	Cleaned      bool
}

// InspectResult описывает состояние каталога частей.
type InspectResult struct {
	Dir          string
	Descriptor   *Descriptor
	Parts        []Part
	Archive      string
	TotalBytes   int64
	MissingParts []string
	Complete     bool
}
