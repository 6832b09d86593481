package models

import "time"

// SplitMode — способ, которым файл был разбит.
type SplitMode string

const (
	ModeCount SplitMode = "count"
	ModeSize  SplitMode = "size"
)

// Descriptor — содержимое файла !split_info.txt. Пишется один раз при разбиении и не меняется.
type Descriptor struct {
	Format        int
	ID            string
	FileName      string
	SplitAt       time.Time
	Size          int64
	Mode          SplitMode
	PartCount     int
	PartSize      int64
	HashAlgorithm string
	Digest        string
}

// Trusted сообщает, что дескриптор записан по текущему соглашению и ему можно доверять
// при выборе частей без эвристик.
func (d Descriptor) Trusted() bool {
	return d.Format >= 1 && d.FileName != "" && d.PartCount > 0
}

// HasDigest сообщает, есть ли в дескрипторе хеш для проверки.
func (d Descriptor) HasDigest() bool {
	return d.Digest != "" && d.HashAlgorithm != ""
}
