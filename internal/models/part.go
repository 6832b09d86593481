package models

// Part описывает один файл-часть в каталоге частей.
type Part struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Size  int64  `json:"size"`
}

// ChunkPlan описывает, на сколько частей нужно разбить файл и какого они размера.
// Все части, кроме последней, имеют размер Size; последняя имеет размер Last.
type ChunkPlan struct {
	Total int
	Size  int64
	Last  int64
}

// PartSize возвращает размер части idx (нумерация с нуля).
func (p ChunkPlan) PartSize(idx int) int64 {
	if idx == p.Total-1 {
		return p.Last
	}

	return p.Size
}

// Sum возвращает суммарный объём всех частей плана.
func (p ChunkPlan) Sum() int64 {
	if p.Total == 0 {
		return 0
	}

	return p.Size*int64(p.Total-1) + p.Last
}
