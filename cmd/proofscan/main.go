// proofscan backfills OCR-detected amounts on proof-of-payment uploads
// whose records have no detection yet (OCR disabled at upload time, or the
// pass failed). With -watch it stays running and picks up files dropped
// into the uploads dir out-of-band.
//
//	go run ./cmd/proofscan [-dir uploads] [-watch] [-workers N] [-simulate] [-verbose]
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"kosman/models"
	"kosman/pkg/ocr"

	"github.com/fsnotify/fsnotify"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	db       *gorm.DB
	simulate bool
	verbose  bool
)

func main() {
	dirFlag := flag.String("dir", "uploads", "directory holding proof-of-payment files")
	watch := flag.Bool("watch", false, "watch directory for new files")
	workers := flag.Int("workers", 0, "worker pool size (default NumCPU)")
	flag.BoolVar(&simulate, "simulate", false, "run OCR but write nothing to the database")
	flag.BoolVar(&verbose, "verbose", false, "verbose per-file logging")
	flag.Parse()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN must be set in environment to run this tool")
	}
	var err error
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	n := *workers
	if n <= 0 {
		n = runtime.NumCPU()
	}

	var pending []models.ProofUpload
	if err := db.Where("detected_amount = 0 AND failed = ?", false).Find(&pending).Error; err != nil {
		log.Fatalf("failed to list pending uploads: %v", err)
	}
	log.Printf("proofscan: %d pending uploads (workers=%d)", len(pending), n)

	fileCh := make(chan string, 256)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range fileCh {
				processFile(*dirFlag, name)
			}
		}()
	}

	go func() {
		for _, up := range pending {
			fileCh <- up.FileName
		}
		if !*watch {
			close(fileCh)
		}
	}()

	if *watch {
		if err := watchDirectory(*dirFlag, fileCh); err != nil {
			log.Fatalf("watch failed: %v", err)
		}
	}
	wg.Wait()
}

func logV(format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}

func isImageExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return true
	}
	return false
}

// processFile OCRs one stored proof and records the outcome on its upload
// row. Files without a matching row (stray drops) are ignored.
func processFile(dir, name string) {
	if !isImageExt(name) {
		logV("SKIP non-image %s", name)
		return
	}
	var up models.ProofUpload
	if err := db.Where("file_name = ?", name).First(&up).Error; err != nil {
		logV("SKIP no upload record for %s", name)
		return
	}
	if up.DetectedAmount > 0 {
		logV("SKIP already detected %s", name)
		return
	}
	amt, conf, raw, err := ocr.ExtractAmountFromImage(filepath.Join(dir, name))
	if err != nil {
		if !simulate {
			db.Model(&up).Updates(map[string]interface{}{
				"failed":        true,
				"failed_reason": err.Error(),
			})
		}
		log.Printf("FAIL %s: %v", name, err)
		return
	}
	if conf <= 0.15 {
		logV("SKIP low confidence %s (%.2f)", name, conf)
		return
	}
	if simulate {
		log.Printf("SIM %s amount=%d conf=%.2f raw=%s", name, amt, conf, raw)
		return
	}
	if err := db.Model(&up).Update("detected_amount", amt).Error; err != nil {
		log.Printf("FAIL update %s: %v", name, err)
		return
	}
	log.Printf("OK %s amount=%d conf=%.2f raw=%s", name, amt, conf, raw)
}

// watchDirectory feeds debounced create events into fileCh. The debounce
// waits for the file to be stable so partially-written uploads aren't read.
func watchDirectory(dir string, fileCh chan<- string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}
	log.Printf("watching %s ...", dir)

	pending := map[string]time.Time{}
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				close(fileCh)
				return nil
			}
			if ev.Op&fsnotify.Create == fsnotify.Create {
				name := filepath.Base(ev.Name)
				if isImageExt(name) {
					pending[name] = time.Now()
				}
			}
		case <-ticker.C:
			now := time.Now()
			for name, t := range pending {
				if now.Sub(t) > 300*time.Millisecond { // stable
					fileCh <- name
					delete(pending, name)
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				close(fileCh)
				return nil
			}
			log.Printf("watch error: %v", err)
		}
	}
}
