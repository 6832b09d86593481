package splitsvc

import (
	"context"
	"path/filepath"

	"github.com/sir_venger/splitter/internal/models"
)

// Inspect описывает содержимое каталога частей, ничего не изменяя.
func (s *Splitter) Inspect(ctx context.Context, dir string) (models.InspectResult, error) {
	if err := ctx.Err(); err != nil {
		return models.InspectResult{}, err
	}

	entries, err := listPartsDir(dir)
	if err != nil {
		return models.InspectResult{}, err
	}

	desc := s.loadDescriptor(dir, entries)
	output := resolveOutput(dir, "", desc)
	set := classify(entries, desc, filepath.Base(output), false)

	res := models.InspectResult{
		Dir:          dir,
		Descriptor:   desc,
		Parts:        set.parts,
		Archive:      set.archive,
		TotalBytes:   set.totalBytes(),
		MissingParts: set.missing,
	}

	// Полнота: все ожидаемые части на месте и их сумма равна исходному размеру.
	res.Complete = len(set.parts) > 0 && len(set.missing) == 0
	if desc != nil && res.Complete {
		if desc.PartCount > 0 && desc.PartCount != len(set.parts) {
			res.Complete = false
		}
		if desc.Size != res.TotalBytes {
			res.Complete = false
		}
	}

	return res, nil
}
