package splitsvc

import "github.com/sir_venger/splitter/internal/models"

// planByCount делит length байт на parts частей: все части по length/parts,
// остаток целиком достаётся последней части.
func planByCount(length int64, parts int) models.ChunkPlan {
	base := length / int64(parts)

	return models.ChunkPlan{
		Total: parts,
		Size:  base,
		Last:  base + length%int64(parts),
	}
}

// planBySize режет length байт на куски по chunk байт; последний кусок короче или равен chunk.
// Пустой файл не даёт ни одной части.
func planBySize(length int64, chunk int64) models.ChunkPlan {
	if length <= 0 {
		return models.ChunkPlan{Total: 0, Size: chunk}
	}

	total := length / chunk
	if length%chunk != 0 {
		total++
	}

	return models.ChunkPlan{
		Total: int(total),
		Size:  chunk,
		Last:  length - chunk*(total-1),
	}
}
