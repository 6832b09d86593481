package splitsvc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"

	"github.com/sir_venger/splitter/internal/models"
	"github.com/sir_venger/splitter/pkg/digest"
	"github.com/sir_venger/splitter/pkg/partsproto"
	"github.com/sir_venger/splitter/pkg/sizes"
)

// SplitByCount делит файл ровно на req.Parts частей.
func (s *Splitter) SplitByCount(ctx context.Context, req SplitRequest) (models.SplitResult, error) {
	if req.Parts <= 0 {
		return models.SplitResult{}, fmt.Errorf("%w: part count must be > 0, got %d", models.ErrInvalidArgument, req.Parts)
	}

	src, err := statSource(req.Path)
	if err != nil {
		return models.SplitResult{}, err
	}

	plan := planByCount(src.Size(), req.Parts)
	return s.split(ctx, req.Path, src, plan, models.ModeCount, req.Force)
}

// SplitBySize делит файл на части не больше размера из req.SizeSpec ("10MB", "500KB").
func (s *Splitter) SplitBySize(ctx context.Context, req SplitRequest) (models.SplitResult, error) {
	spec, err := sizes.Parse(req.SizeSpec)
	if err != nil {
		return models.SplitResult{}, fmt.Errorf("%w: %w", models.ErrInvalidArgument, err)
	}
	if spec.Bytes <= 0 {
		return models.SplitResult{}, fmt.Errorf("%w: part size must be > 0, got %q", models.ErrInvalidArgument, req.SizeSpec)
	}

	src, err := statSource(req.Path)
	if err != nil {
		return models.SplitResult{}, err
	}

	plan := planBySize(src.Size(), spec.Bytes)
	return s.split(ctx, req.Path, src, plan, models.ModeSize, req.Force)
}

func statSource(path string) (fs.FileInfo, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: source file %q", models.ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: stat %q: %w", models.ErrIO, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %q is a directory", models.ErrInvalidArgument, path)
	}

	return info, nil
}

// split выполняет общую часть обоих режимов: каталог, хеш, перенос исходника, части, дескриптор.
// При ошибке уже записанные файлы остаются на диске.
func (s *Splitter) split(ctx context.Context, path string, src fs.FileInfo, plan models.ChunkPlan, mode models.SplitMode, force bool) (models.SplitResult, error) {
	if !digest.Supported(s.HashAlgorithm) {
		return models.SplitResult{}, fmt.Errorf("%w: %w: %q", models.ErrInvalidArgument, digest.ErrUnknownAlgorithm, s.HashAlgorithm)
	}

	name := src.Name()
	if partsproto.IsDescriptor(name) {
		return models.SplitResult{}, fmt.Errorf("%w: %q clashes with the descriptor file name", models.ErrInvalidArgument, name)
	}
	dir := partsproto.DirFor(path)
	log := s.Logger.With("source", path, "dir", dir, "mode", mode)

	if err := s.prepareDir(dir, force); err != nil {
		return models.SplitResult{}, err
	}

	sum, err := s.Hash(path, s.HashAlgorithm)
	if err != nil {
		log.Warn("source digest failed", "algorithm", s.HashAlgorithm, "error", err)
		s.Reporter.Warnf("Could not hash %s, the descriptor will carry no digest: %v", name, err)
		sum = ""
	} else {
		s.Reporter.Infof("Source digest (%s): %s", s.HashAlgorithm, sum)
	}

	s.Reporter.Infof("Splitting %q (%s) into %d parts", name, sizes.Format(src.Size()), plan.Total)
	if mode == models.ModeSize {
		s.Reporter.Infof("Part size: %s", sizes.Format(plan.Size))
	}

	archive := filepath.Join(dir, name)
	if err = moveFile(path, archive); err != nil {
		return models.SplitResult{}, fmt.Errorf("%w: move %q into %q: %w", models.ErrIO, path, dir, err)
	}
	log.Info("source moved", "archive", archive)
	s.Reporter.Infof("Moved %s into %s", name, dir)

	parts, err := s.writeParts(ctx, archive, dir, name, plan)
	if err != nil {
		return models.SplitResult{}, err
	}

	d := models.Descriptor{
		Format:    partsproto.FormatVersion,
		ID:        uuid.NewString(),
		FileName:  name,
		SplitAt:   s.Now(),
		Size:      src.Size(),
		Mode:      mode,
		PartCount: plan.Total,
	}
	if mode == models.ModeSize {
		d.PartSize = plan.Size
	}
	if sum != "" {
		d.HashAlgorithm = s.HashAlgorithm
		d.Digest = sum
	}

	descPath, err := s.Descriptors.Save(dir, d)
	if err != nil {
		return models.SplitResult{}, err
	}
	log.Info("split complete", "parts", len(parts), "descriptor", descPath)
	s.Reporter.Successf("Done: %d parts written to %s", len(parts), dir)

	return models.SplitResult{
		Dir:        dir,
		Archive:    archive,
		Descriptor: d,
		Parts:      parts,
	}, nil
}

// prepareDir создаёт каталог частей. Непустой существующий каталог допускается только с force.
func (s *Splitter) prepareDir(dir string, force bool) error {
	entries, err := os.ReadDir(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create parts directory: %w", models.ErrIO, err)
		}
		s.Reporter.Infof("Created parts directory %s", dir)
	case err != nil:
		return fmt.Errorf("%w: read parts directory: %w", models.ErrIO, err)
	case len(entries) > 0 && !force:
		return fmt.Errorf("%w: %s", models.ErrPartsDirExists, dir)
	case len(entries) > 0:
		s.Logger.Warn("writing into non-empty parts directory", "dir", dir, "entries", len(entries))
		s.Reporter.Warnf("Directory %s already exists, parts will be written into it", dir)
	}

	return nil
}

// writeParts последовательно читает перенесённый исходник и пишет части по плану.
func (s *Splitter) writeParts(ctx context.Context, archive, dir, name string, plan models.ChunkPlan) ([]models.Part, error) {
	in, err := os.Open(archive)
	if err != nil {
		return nil, fmt.Errorf("%w: open %q: %w", models.ErrIO, archive, err)
	}
	defer in.Close()

	bar := s.Reporter.Progress("Splitting "+name, plan.Sum())
	parts := make([]models.Part, 0, plan.Total)
	for idx := 0; idx < plan.Total; idx++ {
		if err = ctx.Err(); err != nil {
			bar.Fail(err)
			return nil, err
		}

		part := models.Part{
			Index: idx + 1,
			Name:  partsproto.PartNameFor(name, idx+1),
			Size:  plan.PartSize(idx),
		}
		bar.Part(part.Index, plan.Total)
		if err = writePart(filepath.Join(dir, part.Name), in, part.Size, bar); err != nil {
			bar.Fail(err)
			return nil, fmt.Errorf("%w: write part %s: %w", models.ErrIO, part.Name, err)
		}
		s.Logger.Debug("part written", "part", part.Name, "size", part.Size)
		parts = append(parts, part)
	}
	bar.Finish()

	return parts, nil
}

func writePart(path string, in io.Reader, size int64, bar io.Writer) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}

	n, err := io.CopyN(io.MultiWriter(out, bar), in, size)
	if errors.Is(err, io.EOF) {
		err = fmt.Errorf("source ended after %d of %d bytes: %w", n, size, io.ErrUnexpectedEOF)
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}

	return err
}

// moveFile переносит файл; между файловыми системами копирует и удаляет исходник.
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}

	if err = copyFile(src, dst); err != nil {
		_ = os.Remove(dst)
		return err
	}

	return os.Remove(src)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	_, err = io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}

	return err
}
