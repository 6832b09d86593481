package splitsvc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sir_venger/splitter/internal/models"
	"github.com/sir_venger/splitter/pkg/partsproto"
	"github.com/sir_venger/splitter/pkg/sizes"
)

// Join собирает файл из каталога частей и сверяет хеш с дескриптором.
// При несовпадении хеша собранный файл остаётся на диске, а результат возвращается вместе с ErrIntegrity.
func (s *Splitter) Join(ctx context.Context, req JoinRequest) (models.JoinResult, error) {
	entries, err := listPartsDir(req.Dir)
	if err != nil {
		return models.JoinResult{}, err
	}

	desc := s.loadDescriptor(req.Dir, entries)
	output := resolveOutput(req.Dir, req.Output, desc)
	log := s.Logger.With("dir", req.Dir, "output", output)

	set := classify(entries, desc, filepath.Base(output), req.Recover)
	if len(set.missing) > 0 {
		return models.JoinResult{}, fmt.Errorf("%w: %s: missing %s", models.ErrIncomplete, req.Dir, strings.Join(set.missing, ", "))
	}
	if len(set.parts) == 0 {
		return models.JoinResult{}, fmt.Errorf("%w in %s", models.ErrNoParts, req.Dir)
	}
	if set.archive != "" {
		s.Reporter.Infof("Found original file %q in %s, it is kept out of the join", set.archive, req.Dir)
	}
	if set.mode == classifyRecovery {
		s.Reporter.Warnf("No conventionally named parts, joining every file in %s", req.Dir)
	}
	if desc != nil && !desc.Trusted() && desc.PartCount > 0 && desc.PartCount != len(set.parts) {
		s.Reporter.Warnf("Descriptor lists %d parts, found %d", desc.PartCount, len(set.parts))
	}
	log.Info("joining", "parts", len(set.parts), "classification", set.mode)
	s.Reporter.Infof("Found %d parts, restoring %q", len(set.parts), output)

	res := models.JoinResult{
		Output:       output,
		Parts:        set.parts,
		Archive:      set.archive,
		Verification: models.VerifyUnavailable,
	}

	res.Size, err = s.concat(ctx, req.Dir, set.parts, output)
	if err != nil {
		return models.JoinResult{}, err
	}
	s.Reporter.Successf("Joined %s (%s)", output, sizes.Format(res.Size))

	if desc != nil && desc.Size != res.Size {
		s.Reporter.Warnf("Recorded size is %s, joined %s", sizes.Format(desc.Size), sizes.Format(res.Size))
	}
	if desc == nil || !desc.HasDigest() {
		s.Reporter.Warnf("No recorded digest, integrity was not verified")
		return res, nil
	}

	sum, err := s.Hash(output, desc.HashAlgorithm)
	if err != nil {
		log.Warn("output digest failed", "error", err)
		s.Reporter.Warnf("Could not hash %s, integrity check skipped: %v", output, err)
		res.Verification = models.VerifySkipped
		return res, nil
	}

	res.Digest = sum
	if sum != desc.Digest {
		res.Verification = models.VerifyMismatch
		log.Warn("digest mismatch", "want", desc.Digest, "got", sum)
		return res, fmt.Errorf("%w: %s: %s want %s, got %s", models.ErrIntegrity, output, desc.HashAlgorithm, desc.Digest, sum)
	}

	res.Verification = models.VerifyMatch
	s.Reporter.Successf("Integrity check passed (%s)", desc.HashAlgorithm)
	res.Cleaned = s.cleanup(req.Dir, output, req.Cleanup)

	return res, nil
}

func listPartsDir(dir string) ([]fs.DirEntry, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: parts directory %q", models.ErrNotFound, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: stat %q: %w", models.ErrIO, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %q is not a directory", models.ErrInvalidArgument, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read %q: %w", models.ErrIO, dir, err)
	}

	return entries, nil
}

// loadDescriptor ищет и читает дескриптор; нечитаемый дескриптор не мешает сборке.
// Файл с точным именем DescriptorName проверяется раньше прочих "!split_info*".
func (s *Splitter) loadDescriptor(dir string, entries []fs.DirEntry) *models.Descriptor {
	var candidates []string
	for _, e := range entries {
		if e.IsDir() || !partsproto.IsDescriptor(e.Name()) {
			continue
		}
		if e.Name() == partsproto.DescriptorName {
			candidates = append([]string{e.Name()}, candidates...)
			continue
		}
		candidates = append(candidates, e.Name())
	}

	for _, name := range candidates {
		d, err := s.Descriptors.Load(filepath.Join(dir, name))
		if err != nil {
			s.Logger.Warn("descriptor unreadable", "file", name, "error", err)
			s.Reporter.Warnf("Could not read %s: %v", name, err)
			continue
		}

		return &d
	}

	return nil
}

// resolveOutput: явное имя > имя из дескриптора > имя каталога без "_parts" > "restored_<каталог>".
// Выведенные имена кладутся рядом с каталогом частей.
func resolveOutput(dir, explicit string, desc *models.Descriptor) string {
	if explicit != "" {
		return explicit
	}

	parent := filepath.Dir(filepath.Clean(dir))
	if desc != nil && desc.FileName != "" {
		return filepath.Join(parent, filepath.Base(desc.FileName))
	}

	return filepath.Join(parent, partsproto.OutputNameForDir(dir))
}

// concat пишет части во временный файл рядом с output и переименовывает его после успешной записи.
func (s *Splitter) concat(ctx context.Context, dir string, parts []models.Part, output string) (int64, error) {
	if removed, err := sweepStaleTemps(output, staleTempTTL, s.Now()); err == nil && len(removed) > 0 {
		s.Logger.Info("removed stale temporary files", "files", removed)
	}

	tmp := tempPath(output)
	out, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("%w: create output: %w", models.ErrIO, err)
	}

	done := false
	defer func() {
		if !done {
			_ = out.Close()
			_ = os.Remove(tmp)
		}
	}()

	var expected int64
	for _, p := range parts {
		expected += p.Size
	}

	bar := s.Reporter.Progress("Joining "+filepath.Base(output), expected)
	var total int64
	for i, p := range parts {
		if err = ctx.Err(); err != nil {
			bar.Fail(err)
			return total, err
		}

		bar.Part(i+1, len(parts))

		n, err := appendPart(out, filepath.Join(dir, p.Name), bar)
		total += n
		if err != nil {
			bar.Fail(err)
			return total, fmt.Errorf("%w: append %s: %w", models.ErrIO, p.Name, err)
		}
		s.Logger.Debug("part appended", "part", p.Name, "size", n)
	}

	if err = out.Close(); err != nil {
		bar.Fail(err)
		return total, fmt.Errorf("%w: close output: %w", models.ErrIO, err)
	}
	if err = os.Rename(tmp, output); err != nil {
		bar.Fail(err)
		return total, fmt.Errorf("%w: rename output: %w", models.ErrIO, err)
	}
	done = true
	bar.Finish()

	return total, nil
}

func appendPart(out io.Writer, path string, bar io.Writer) (int64, error) {
	in, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	return io.Copy(io.MultiWriter(out, bar), in)
}

// cleanup удаляет каталог частей по политике. Вместе с каталогом удаляется и архивная копия исходника.
func (s *Splitter) cleanup(dir, output string, policy CleanupPolicy) bool {
	if within(dir, output) {
		s.Reporter.Warnf("Output is inside %s, the parts directory is kept", dir)
		return false
	}

	switch policy {
	case CleanupAlways:
	case CleanupAsk:
		if s.Confirmer == nil || !s.Confirmer.Confirm(fmt.Sprintf("Delete parts directory %s?", dir), true) {
			return false
		}
	default:
		return false
	}

	if err := os.RemoveAll(dir); err != nil {
		s.Logger.Warn("parts directory removal failed", "dir", dir, "error", err)
		s.Reporter.Warnf("Could not remove %s: %v", dir, err)
		return false
	}
	s.Reporter.Successf("Removed %s", dir)

	return true
}

func within(dir, path string) bool {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
