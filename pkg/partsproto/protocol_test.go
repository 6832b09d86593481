package partsproto

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitName(t *testing.T) {
	cases := []struct {
		in, stem, ext string
	}{
		{"report.bin", "report", ".bin"},
		{"/tmp/data/archive.tar.gz", "archive.tar", ".gz"},
		{"noext", "noext", ""},
		{".bashrc", ".bashrc", ""},
	}
	for _, tc := range cases {
		stem, ext := SplitName(tc.in)
		require.Equal(t, tc.stem, stem, tc.in)
		require.Equal(t, tc.ext, ext, tc.in)
	}
}

func TestPartNames(t *testing.T) {
	require.Equal(t, "report_part_001.bin", PartNameFor("report.bin", 1))
	require.Equal(t, "report_part_042.bin", PartName("report", 42, ".bin"))
	require.Equal(t, "report_part_1000.bin", PartName("report", 1000, ".bin"))
	require.Equal(t, "report_part_*.bin", PartPattern("/x/report.bin"))
}

func TestDirFor(t *testing.T) {
	require.Equal(t, filepath.Join("/data", "movie_parts"), DirFor("/data/movie.mkv"))
}

func TestOutputNameForDir(t *testing.T) {
	require.Equal(t, "movie", OutputNameForDir("/data/movie_parts/"))
	require.Equal(t, "restored_chunks", OutputNameForDir("chunks"))
	require.Equal(t, "restored__parts", OutputNameForDir("_parts"))
}

func TestMarkers(t *testing.T) {
	require.True(t, IsDescriptor("!SPLIT_INFO.txt"))
	require.False(t, IsDescriptor("split_info.txt"))
	require.True(t, IsSentinel("!notes"))
	require.True(t, HasPartMarker("a_part_001.bin"))
	require.True(t, HasPartMarker("movie.mkv.002"))
	require.True(t, HasPartMarker("x.part7"))
	require.False(t, HasPartMarker("movie.mkv"))
}
