package driver

import (
	"bytes"
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"typocheck/internal/diag"
	"typocheck/internal/source"
	"typocheck/internal/spell"
)

// listFiles возвращает отсортированный список всех файлов в директории.
// Hidden entries and skip-pattern matches are excluded.
func listFiles(dir string, skip []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if path != dir && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if matchesAny(skip, name) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

func matchesAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, err := filepath.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}

// binaryContent mirrors the usual text heuristic: a NUL byte means binary.
func binaryContent(content []byte) bool {
	return bytes.IndexByte(content, 0) >= 0
}

// CheckDir scans every non-hidden text file under dir in parallel. Files are
// preloaded into the FileSet sequentially; the scanning itself only reads
// shared state, so one goroutine per file is safe.
func CheckDir(ctx context.Context, dir string, checker *spell.Checker, opts CheckOptions, jobs int) (*source.FileSet, []FileResult, error) {
	files, err := listFiles(dir, opts.SkipPatterns)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Предзагружаем все файлы (FileSet не потокобезопасен для записи)
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))

	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	// Настраиваем параллелизм
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				bag := diag.NewBag(opts.maxDiagnostics())

				if loadErr, hadError := loadErrors[path]; hadError {
					bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{},
						"failed to load file: "+loadErr.Error()))
					results[i] = FileResult{Path: path, Bag: bag}
					return nil
				}

				fileID := fileIDs[path]
				if binaryContent(fileSet.Get(fileID).Content) {
					results[i] = FileResult{Path: path, FileID: fileID, Bag: bag, Skipped: true}
					return nil
				}

				if err := scanFile(gctx, fileSet, checker, fileID, bag, opts); err != nil {
					return err
				}
				results[i] = FileResult{Path: path, FileID: fileID, Bag: bag}
				return nil
			}
		}(i, path))
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
