package bmp24

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/bmp24/bitmap"
)

type job struct {
	src, dst string
}

func (c *Converter) findFiles(ctx context.Context, base, dest string) (<-chan job, <-chan error, error) {
	out := make(chan job)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if info.Mode().IsDir() {
				// Don't convert our own output
				if file == dest {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() {
				return nil
			}

			ext := filepath.Ext(file)
			if _, ok := Extensions[strings.ToLower(ext)]; !ok {
				return nil
			}

			rel, err := filepath.Rel(base, file)
			if err != nil {
				return err
			}

			select {
			case out <- job{src: file, dst: filepath.Join(dest, strings.TrimSuffix(rel, ext)+".bmp")}:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (c *Converter) convertJob(j job) error {
	m, sum, err := decodeFile(j.src)
	if err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) {
			return err
		}
		// Not an image we understand; carry on with the rest
		c.logger.Printf("Skipping \"%s\": %s\n", j.src, err)
		return nil
	}

	b := c.Convert(m)

	if err := os.MkdirAll(filepath.Dir(j.dst), 0777); err != nil {
		return err
	}
	if err := writeFile(j.dst, func(w io.Writer) error {
		return bitmap.Encode(w, b)
	}); err != nil {
		return err
	}
	c.logger.Printf("Converted \"%s\" to \"%s\"\n", j.src, j.dst)

	if c.db != nil {
		if _, err := c.db.Put(fmt.Sprintf("%X", sum), filepath.Base(j.src), b); err != nil {
			return err
		}
	}

	return nil
}

func (c *Converter) fileWorker(ctx context.Context, in <-chan job) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for j := range in {
			select {
			case <-ctx.Done():
				return
			default:
			}
			if err := c.convertJob(j); err != nil {
				errc <- err
				return
			}
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

// Scan converts every image found under path to a bitmap beneath dest,
// keeping the same relative layout. Files that cannot be decoded are logged
// and skipped.
func (c *Converter) Scan(path, dest string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	out, err := filepath.Abs(dest)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	jobs, errc, err := c.findFiles(ctx, dir, out)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	workers := c.Workers
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		errc, err := c.fileWorker(ctx, jobs)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
