package ttf2pcx

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/humbertodias/ttf2pcx/fonts"
	"golang.org/x/image/font/sfnt"
)

const numWorkers = 4

func (db *FontDB) findFontFiles(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || !fonts.HasValidExtension(file) {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (db *FontDB) parseWorker(ctx context.Context, in <-chan string) (<-chan fontRecord, <-chan error, error) {
	out := make(chan fontRecord)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for file := range in {
			b, err := os.ReadFile(file)
			if err != nil {
				errc <- err
				return
			}

			// A broken font shouldn't stop the rest being indexed
			f, err := sfnt.Parse(b)
			if err != nil {
				db.logger.Printf("Skipping \"%s\": %s\n", file, err)
				continue
			}
			family, style, err := fonts.Describe(f)
			if err != nil {
				db.logger.Printf("Skipping \"%s\": %s\n", file, err)
				continue
			}

			select {
			case out <- fontRecord{sha1: sha1Sum(b), path: file, family: family, style: style}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, errc, nil
}

func (db *FontDB) storeFonts(in <-chan fontRecord) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for r := range in {
			if _, err := db.addFont(r); err != nil {
				errc <- err
				return
			}
			db.logger.Printf("Indexed \"%s\" as %s %s\n", r.path, r.family, r.style)
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

func mergeRecords(ctx context.Context, cs ...<-chan fontRecord) <-chan fontRecord {
	var wg sync.WaitGroup
	out := make(chan fontRecord)
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan fontRecord) {
			defer wg.Done()
			for r := range c {
				select {
				case out <- r:
				case <-ctx.Done():
					return
				}
			}
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Index walks the directory tree at path and adds every font file found.
// Fonts are parsed concurrently but written to the database one at a time.
func (db *FontDB) Index(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := db.findFontFiles(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	var records []<-chan fontRecord
	for i := 0; i < numWorkers; i++ {
		out, errc, err := db.parseWorker(ctx, files)
		if err != nil {
			return err
		}
		records = append(records, out)
		errcList = append(errcList, errc)
	}

	errc, err = db.storeFonts(mergeRecords(ctx, records...))
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	return waitForPipeline(errcList...)
}
